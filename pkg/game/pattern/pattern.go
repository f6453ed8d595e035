// Package pattern carves periodic wall lines (grid, diagonal, concentric
// rings) into a mask while keeping rooms passable.
package pattern

import (
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/generator"
	"gridforge/pkg/game/request"
)

// Stats counts what the overlay did to cells lying on a pattern line
type Stats struct {
	Walled int // walkable cells turned into walls
	Edge   int // room cells kept because they are within the inset
	Gaps   int // room cells kept as periodic gaps
}

// Apply carves the pattern described by p into m. Only walkable cells are
// considered; blocked cells stay blocked. No randomness is involved.
func Apply(m *world.Mask, rooms []generator.Room, p request.ShapeParams) Stats {
	var stats Stats
	if p.Pattern == request.PatternNone || p.Pattern == "" {
		return stats
	}
	line := lineFunc(m, p)
	if line == nil {
		return stats
	}

	gapEvery := max(p.PatternGapEvery, 1)
	owner := roomIndex(m, rooms)
	m.ForEachCell(func(x, y int, walkable bool) {
		if !walkable {
			return
		}
		hit, along := line(x, y)
		if !hit {
			return
		}
		if id := owner[m.Index(x, y)]; id >= 0 {
			d := rooms[id].EdgeDistance(world.Point{X: x, Y: y})
			if d == 0 || d <= p.PatternInset {
				stats.Edge++
				return
			}
			if along%gapEvery == 0 {
				stats.Gaps++
				return
			}
		}
		m.Set(x, y, false)
		stats.Walled++
	})
	return stats
}

// lineFunc returns a test reporting whether a cell lies on a pattern line and
// its coordinate along that line's dominant axis
func lineFunc(m *world.Mask, p request.ShapeParams) func(x, y int) (bool, int) {
	s, lw := max(p.PatternSpacing, 2), max(p.PatternLineWidth, 1)
	switch p.Pattern {
	case request.PatternGrid:
		return func(x, y int) (bool, int) {
			if x%s < lw {
				return true, y // vertical line runs along y
			}
			if y%s < lw {
				return true, x
			}
			return false, 0
		}
	case request.PatternDiagonal:
		return func(x, y int) (bool, int) {
			if (x+y)%s < lw || mod(x-y, s) < lw {
				return true, x
			}
			return false, 0
		}
	case request.PatternConcentric:
		cx, cy := m.CenterPosition()
		return func(x, y int) (bool, int) {
			dx, dy := x-cx, y-cy
			r := isqrt(dx*dx + dy*dy)
			if r == 0 || r%s >= lw {
				return false, 0
			}
			// Rings run vertically where |dx| dominates
			if abs(dx) > abs(dy) {
				return true, y
			}
			return true, x
		}
	}
	return nil
}

// roomIndex maps every cell to the index of the room containing it, or -1
func roomIndex(m *world.Mask, rooms []generator.Room) []int {
	owner := make([]int, m.Width()*m.Height())
	for i := range owner {
		owner[i] = -1
	}
	for i, r := range rooms {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if m.IsValidPosition(x, y) && owner[m.Index(x, y)] < 0 {
					owner[m.Index(x, y)] = i
				}
			}
		}
	}
	return owner
}

// mod returns the non-negative remainder of a/b
func mod(a, b int) int {
	return ((a % b) + b) % b
}

// isqrt returns floor(sqrt(n)) for n >= 0
func isqrt(n int) int {
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
