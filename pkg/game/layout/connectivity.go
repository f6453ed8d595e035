package layout

import (
	"github.com/spakin/disjoint"

	"gridforge/pkg/engine/world"
)

// components is a union-find partition of the walkable cells of a layout
type components struct {
	width int
	cells []*disjoint.Element // nil for blocked cells
}

// partition unions every walkable cell with its walkable east and south
// neighbours
func partition(l *GridLayout) *components {
	c := &components{width: l.Width, cells: make([]*disjoint.Element, l.Width*l.Height)}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Walkable(world.Point{X: x, Y: y}) {
				c.cells[y*l.Width+x] = disjoint.NewElement()
			}
		}
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			e := c.at(world.Point{X: x, Y: y})
			if e == nil {
				continue
			}
			if east := c.at(world.Point{X: x + 1, Y: y}); east != nil {
				disjoint.Union(e, east)
			}
			if south := c.at(world.Point{X: x, Y: y + 1}); south != nil {
				disjoint.Union(e, south)
			}
		}
	}
	return c
}

func (c *components) at(p world.Point) *disjoint.Element {
	i := p.Y*c.width + p.X
	if p.X < 0 || p.X >= c.width || i < 0 || i >= len(c.cells) {
		return nil
	}
	return c.cells[i]
}

// root returns the representative of p's component, or nil if p is blocked
func (c *components) root(p world.Point) *disjoint.Element {
	if e := c.at(p); e != nil {
		return e.Find()
	}
	return nil
}

// sizes counts cells per component root
func (c *components) sizes() map[*disjoint.Element]int {
	sizes := make(map[*disjoint.Element]int)
	for _, e := range c.cells {
		if e != nil {
			sizes[e.Find()]++
		}
	}
	return sizes
}

// largest returns the root of the biggest component; ties go to the one
// whose first cell comes first in scan order
func (c *components) largest() *disjoint.Element {
	sizes := c.sizes()
	var best *disjoint.Element
	for _, e := range c.cells {
		if e == nil {
			continue
		}
		r := e.Find()
		if best == nil || sizes[r] > sizes[best] {
			best = r
		}
	}
	return best
}

// Summarize computes the connectivity block of a layout from its kinds grid
func Summarize(l *GridLayout) Connectivity {
	c := partition(l)
	spawn := c.root(l.Spawn)
	s := Connectivity{
		Rooms:          len(l.Rooms),
		Components:     len(c.sizes()),
		SpawnReachable: spawn != nil && spawn == c.largest(),
		ExitReachable:  spawn != nil && c.root(l.Exit) == spawn,
	}
	if spawn == nil {
		return s
	}
	for _, r := range l.Rooms {
	cells:
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				if c.root(world.Point{X: x, Y: y}) == spawn {
					s.ConnectedRooms++
					break cells
				}
			}
		}
	}
	return s
}
