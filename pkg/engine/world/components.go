package world

import (
	"github.com/zyedidia/generic/queue"
)

// Components labels the walkable cells into 4-connected components. Components
// are ordered by their first cell in row-major order and each lists its cells
// in flood-fill order.
func Components(m *Mask) [][]Point {
	label := make([]int, m.width*m.height)
	for i := range label {
		label[i] = -1
	}
	var comps [][]Point
	q := queue.New[Point]()
	m.ForEachCell(func(x, y int, walkable bool) {
		if !walkable || label[m.Index(x, y)] >= 0 {
			return
		}
		id := len(comps)
		var cells []Point
		label[m.Index(x, y)] = id
		q.Enqueue(Point{X: x, Y: y})
		for !q.Empty() {
			current := q.Dequeue()
			cells = append(cells, current)
			for _, dir := range AllDirections() {
				next := current.Step(dir)
				if !m.WalkableAt(next) || label[m.Index(next.X, next.Y)] >= 0 {
					continue
				}
				label[m.Index(next.X, next.Y)] = id
				q.Enqueue(next)
			}
		}
		comps = append(comps, cells)
	})
	return comps
}

// LargestComponent returns the index of the biggest component; ties go to
// the earliest one. Returns -1 for an empty list.
func LargestComponent(comps [][]Point) int {
	best := -1
	for i, c := range comps {
		if best < 0 || len(c) > len(comps[best]) {
			best = i
		}
	}
	return best
}

// ConnectComponents joins every walkable component to the largest one with
// L-shaped corridors (horizontal leg first). Each stray component is linked
// from its cell nearest to the main component. Returns how many corridors were
// carved.
func ConnectComponents(m *Mask, width int) int {
	interior := func(p Point) bool { return m.IsInterior(p.X, p.Y) }
	carved := 0
	comps := Components(m)
	for attempts := len(comps); attempts > 0 && len(comps) > 1; attempts-- {
		mainIdx := LargestComponent(comps)
		stray := 0
		if stray == mainIdx {
			stray = 1
		}
		main := NewPointSet(comps[mainIdx]...)

		// Open interior is a plain rectangle, so BFS distance equals Manhattan distance.
		field := BFS(m, comps[stray], interior, nil)
		var target Point
		found := false
		for _, p := range field.Order() {
			if main.Has(p) {
				target, found = p, true
				break
			}
		}
		if !found {
			break
		}
		path := field.PathTo(target)
		CarveL(m, path[0], target, true, width)
		carved++
		comps = Components(m)
	}
	return carved
}
