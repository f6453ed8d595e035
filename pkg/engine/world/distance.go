package world

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Unreachable is the distance reported for cells a flood fill never reached
const Unreachable = -1

// PointSet is a set of grid positions
type PointSet = mapset.Set[Point]

// NewPointSet creates a set holding the given points
func NewPointSet(pts ...Point) PointSet {
	s := mapset.New[Point]()
	for _, p := range pts {
		s.Put(p)
	}
	return s
}

// DistanceField holds breadth-first distances from a set of source cells
type DistanceField struct {
	width  int
	height int
	dist   []int
	parent []int
	order  []Point
}

// BFS computes 4-directional path distances from sources. A cell is entered if
// passable reports true and it is not in exclude; a nil passable means "walkable
// in m" and a nil exclude excludes nothing. Sources that are not enterable are
// ignored. Neighbours are visited in AllDirections order.
func BFS(m *Mask, sources []Point, passable func(Point) bool, exclude *PointSet) *DistanceField {
	if passable == nil {
		passable = m.WalkableAt
	}
	enterable := func(p Point) bool {
		if !m.IsValidPosition(p.X, p.Y) {
			return false
		}
		if exclude != nil && exclude.Has(p) {
			return false
		}
		return passable(p)
	}

	n := m.width * m.height
	f := &DistanceField{
		width:  m.width,
		height: m.height,
		dist:   make([]int, n),
		parent: make([]int, n),
	}
	for i := range f.dist {
		f.dist[i] = Unreachable
		f.parent[i] = -1
	}

	q := queue.New[Point]()
	for _, s := range sources {
		if !enterable(s) || f.dist[m.Index(s.X, s.Y)] != Unreachable {
			continue
		}
		f.dist[m.Index(s.X, s.Y)] = 0
		q.Enqueue(s)
	}

	for !q.Empty() {
		current := q.Dequeue()
		f.order = append(f.order, current)
		ci := m.Index(current.X, current.Y)
		for _, dir := range AllDirections() {
			next := current.Step(dir)
			if !enterable(next) {
				continue
			}
			ni := m.Index(next.X, next.Y)
			if f.dist[ni] != Unreachable {
				continue
			}
			f.dist[ni] = f.dist[ci] + 1
			f.parent[ni] = ci
			q.Enqueue(next)
		}
	}

	return f
}

// At returns the distance of p, or Unreachable
func (f *DistanceField) At(p Point) int {
	if p.X < 0 || p.X >= f.width || p.Y < 0 || p.Y >= f.height {
		return Unreachable
	}
	return f.dist[p.Y*f.width+p.X]
}

// Reachable reports whether p was reached from any source
func (f *DistanceField) Reachable(p Point) bool {
	return f.At(p) != Unreachable
}

// Order returns reached cells in visiting order (sources first)
func (f *DistanceField) Order() []Point {
	return f.order
}

// Count returns how many cells were reached
func (f *DistanceField) Count() int {
	return len(f.order)
}

// Farthest returns the reached cell with the largest distance. Ties go to the
// first cell in row-major order. ok is false when nothing was reached.
func (f *DistanceField) Farthest() (p Point, dist int, ok bool) {
	best := -1
	for i, d := range f.dist {
		if d > best {
			best = d
			p = Point{X: i % f.width, Y: i / f.width}
		}
	}
	if best < 0 {
		return Point{}, Unreachable, false
	}
	return p, best, true
}

// PathTo returns the cells from the originating source to p, inclusive.
// Returns nil if p was not reached.
func (f *DistanceField) PathTo(p Point) []Point {
	if !f.Reachable(p) {
		return nil
	}
	var rev []Point
	for idx := p.Y*f.width + p.X; idx >= 0; idx = f.parent[idx] {
		rev = append(rev, Point{X: idx % f.width, Y: idx / f.width})
	}
	path := make([]Point, len(rev))
	for i, q := range rev {
		path[len(rev)-1-i] = q
	}
	return path
}
