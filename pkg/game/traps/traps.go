// Package traps places requested hazards onto a finished mask.
package traps

import (
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// Placement records where traps ended up
type Placement struct {
	Traps    []request.Trap // in-bounds, first occurrence of each cell, request order
	Hazards  world.PointSet // non-blocking traps on walkable cells
	Barriers world.PointSet // blocking traps; their cells are walls
	Inert    int            // non-blocking traps that landed on a wall
	Dropped  int            // out-of-bounds or duplicate entries
}

// Place validates and de-duplicates traps, clears the cell of every blocking
// trap and tags non-blocking traps on walkable cells as hazards
func Place(m *world.Mask, traps []request.Trap) Placement {
	pl := Placement{
		Traps:    make([]request.Trap, 0, len(traps)),
		Hazards:  world.NewPointSet(),
		Barriers: world.NewPointSet(),
	}
	seen := world.NewPointSet()
	for _, t := range traps {
		p := world.Point{X: t.X, Y: t.Y}
		if !m.IsInterior(p.X, p.Y) || seen.Has(p) {
			pl.Dropped++
			continue
		}
		seen.Put(p)
		pl.Traps = append(pl.Traps, t)

		switch {
		case t.Blocking:
			m.SetAt(p, false)
			pl.Barriers.Put(p)
		case m.WalkableAt(p):
			pl.Hazards.Put(p)
		default:
			pl.Inert++
		}
	}
	return pl
}

// Forbidden returns the in-bounds cells of blocking traps, which must stay
// blocked through tile-count reconciliation
func Forbidden(m *world.Mask, traps []request.Trap) world.PointSet {
	cells := world.NewPointSet()
	for _, t := range traps {
		if t.Blocking && m.IsInterior(t.X, t.Y) {
			cells.Put(world.Point{X: t.X, Y: t.Y})
		}
	}
	return cells
}
