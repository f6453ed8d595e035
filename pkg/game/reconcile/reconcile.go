// Package reconcile adjusts a mask until it holds an exact number of
// walkable cells.
//
// With Connected set the result is a single component grown breadth-first
// from an anchor. Otherwise cells are added or removed greedily in rounds,
// ranked by neighbour-count tier, distance from the grid centre and scan
// order. Within a round no cell adjacent to an already changed cell is
// touched, so every ranking stays exact for the whole round.
package reconcile

import (
	"sort"

	"gridforge/pkg/engine/world"
)

// Mode names reported in Stats
const (
	ModeNone          = "none"
	ModeConnected     = "connected"
	ModeUnconstrained = "unconstrained"
)

// Options configures a reconciliation
type Options struct {
	Target    int
	Connected bool
	// Anchor seeds the connected selection and the protected backbone.
	// nil, blocked or forbidden anchors fall back to the first usable cell.
	Anchor *world.Point
	// Forbidden cells are cleared first and never opened again.
	Forbidden *world.PointSet
}

// Stats describes what a reconciliation did
type Stats struct {
	Mode             string
	Before           int
	After            int
	Added            int
	Removed          int
	Rounds           int
	ProtectedRemoved int
	Fallback         bool
}

type reconciler struct {
	m         *world.Mask
	forbidden *world.PointSet
	anchor    world.Point
	hasAnchor bool
	stats     Stats
}

// Reconcile changes m in place so that m.Count() equals opts.Target, as far
// as the interior (minus forbidden cells) allows. At least one cell is always
// left walkable.
func Reconcile(m *world.Mask, opts Options) Stats {
	r := &reconciler{m: m, forbidden: opts.Forbidden}
	r.stats.Mode = ModeNone

	if r.forbidden != nil {
		r.forbidden.Each(func(p world.Point) {
			m.SetAt(p, false)
		})
	}
	r.stats.Before = m.Count()

	target := max(1, min(opts.Target, r.usableCapacity()))
	r.resolveAnchor(opts.Anchor)

	switch {
	case opts.Connected:
		r.stats.Mode = ModeConnected
		r.connected(target)
	case m.Count() < target:
		r.stats.Mode = ModeUnconstrained
		r.add(target)
	case m.Count() > target:
		r.stats.Mode = ModeUnconstrained
		r.remove(target)
	}

	r.fallback()
	r.stats.After = m.Count()
	return r.stats
}

func (r *reconciler) isForbidden(p world.Point) bool {
	return r.forbidden != nil && r.forbidden.Has(p)
}

// usable reports whether p may be walkable after reconciliation
func (r *reconciler) usable(p world.Point) bool {
	return r.m.IsInterior(p.X, p.Y) && !r.isForbidden(p)
}

func (r *reconciler) usableCapacity() int {
	n := 0
	r.eachInterior(func(p world.Point) {
		if !r.isForbidden(p) {
			n++
		}
	})
	return n
}

// eachInterior visits interior cells row-major
func (r *reconciler) eachInterior(fn func(p world.Point)) {
	x0, y0, x1, y1 := r.m.InteriorBounds()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			fn(world.Point{X: x, Y: y})
		}
	}
}

// resolveAnchor picks the requested anchor if walkable, else the first
// walkable cell, else the first usable cell (which then gets opened)
func (r *reconciler) resolveAnchor(requested *world.Point) {
	if requested != nil && r.m.WalkableAt(*requested) && !r.isForbidden(*requested) {
		r.anchor, r.hasAnchor = *requested, true
		return
	}
	if p, ok := r.m.FirstWalkable(); ok {
		r.anchor, r.hasAnchor = p, true
		return
	}
	if requested != nil && r.usable(*requested) {
		r.anchor, r.hasAnchor = *requested, true
		return
	}
	r.eachInterior(func(p world.Point) {
		if !r.hasAnchor && !r.isForbidden(p) {
			r.anchor, r.hasAnchor = p, true
		}
	})
}

// connected keeps the target-sized breadth-first prefix of the anchor's
// component, growing into blocked interior cells when it is too small
func (r *reconciler) connected(target int) {
	if !r.hasAnchor {
		return
	}
	r.m.SetAt(r.anchor, true)
	before := r.m.Clone()

	field := world.BFS(r.m, []world.Point{r.anchor}, nil, r.forbidden)
	selected := field.Order()
	if len(selected) > target {
		selected = selected[:target]
	}

	r.m.Clear()
	for _, p := range selected {
		r.m.SetAt(p, true)
	}

	if len(selected) < target {
		grow := world.BFS(r.m, selected, r.usable, r.forbidden)
		count := len(selected)
		for _, p := range grow.Order() {
			if count >= target {
				break
			}
			if !r.m.WalkableAt(p) {
				r.m.SetAt(p, true)
				count++
			}
		}
	}

	r.m.ForEachCell(func(x, y int, walkable bool) {
		was := before.Walkable(x, y)
		switch {
		case walkable && !was:
			r.stats.Added++
		case !walkable && was:
			r.stats.Removed++
		}
	})
	r.stats.Rounds = 1
}

type candidate struct {
	p    world.Point
	tier int
	dist int
	idx  int
}

// addTier ranks blocked cells: 1-2 open neighbours first, isolated cells last
func addTier(n int) int {
	switch n {
	case 1, 2:
		return 0
	case 3:
		return 1
	case 4:
		return 2
	}
	return 3
}

// removeTier ranks walkable cells: fully surrounded cells first, thin
// corridor cells last
func removeTier(n int) int {
	switch n {
	case 4:
		return 0
	case 3:
		return 1
	case 0:
		return 2
	case 1:
		return 3
	}
	return 4
}

func (r *reconciler) add(target int) {
	cx, cy := r.m.CenterPosition()
	center := world.Point{X: cx, Y: cy}
	for r.m.Count() < target {
		var cands []candidate
		r.eachInterior(func(p world.Point) {
			if r.m.WalkableAt(p) || r.isForbidden(p) {
				return
			}
			cands = append(cands, candidate{
				p:    p,
				tier: addTier(r.m.WalkableNeighbors(p.X, p.Y)),
				dist: world.ManhattanDistance(p, center),
				idx:  r.m.Index(p.X, p.Y),
			})
		})
		sort.Slice(cands, func(i, j int) bool {
			a, b := cands[i], cands[j]
			if a.tier != b.tier {
				return a.tier < b.tier
			}
			if a.dist != b.dist {
				return a.dist > b.dist // farther from the core first
			}
			return a.idx < b.idx
		})

		changed := r.applyRound(cands, true, target)
		if changed == 0 {
			return
		}
		r.stats.Added += changed
	}
}

func (r *reconciler) remove(target int) {
	cx, cy := r.m.CenterPosition()
	center := world.Point{X: cx, Y: cy}
	for r.m.Count() > target {
		protected := r.topology()
		var cands []candidate
		r.eachInterior(func(p world.Point) {
			if !r.m.WalkableAt(p) || protected.Has(p) {
				return
			}
			cands = append(cands, candidate{
				p:    p,
				tier: removeTier(r.m.WalkableNeighbors(p.X, p.Y)),
				dist: world.ManhattanDistance(p, center),
				idx:  r.m.Index(p.X, p.Y),
			})
		})
		sort.Slice(cands, func(i, j int) bool {
			a, b := cands[i], cands[j]
			if a.tier != b.tier {
				return a.tier < b.tier
			}
			if a.dist != b.dist {
				return a.dist < b.dist // hollow out the core first
			}
			return a.idx < b.idx
		})

		changed := r.applyRound(cands, false, target)
		if changed == 0 && !r.removeProtected() {
			return
		}
		r.stats.Removed += changed
	}
}

// applyRound flips candidates in rank order, skipping any cell adjacent to
// one already flipped this round. Returns how many cells changed.
func (r *reconciler) applyRound(cands []candidate, walkable bool, target int) int {
	r.stats.Rounds++
	touched := make([]bool, r.m.Width()*r.m.Height())
	count := r.m.Count()
	changed := 0
	for _, c := range cands {
		if count == target {
			break
		}
		if touched[c.idx] {
			continue
		}
		r.m.SetAt(c.p, walkable)
		changed++
		if walkable {
			count++
		} else {
			count--
		}
		touched[c.idx] = true
		for _, dir := range world.AllDirections() {
			n := c.p.Step(dir)
			if r.m.IsValidPosition(n.X, n.Y) {
				touched[r.m.Index(n.X, n.Y)] = true
			}
		}
	}
	return changed
}

// topology returns the cells that hold the layout's shape together: the
// backbone from the anchor to the farthest reachable cell, and every cell
// with exactly two open neighbours that turn a corner
func (r *reconciler) topology() world.PointSet {
	protected := world.NewPointSet()
	if r.hasAnchor && r.m.WalkableAt(r.anchor) {
		field := world.BFS(r.m, []world.Point{r.anchor}, nil, nil)
		if far, _, ok := field.Farthest(); ok {
			for _, p := range field.PathTo(far) {
				protected.Put(p)
			}
		}
	}
	r.eachInterior(func(p world.Point) {
		if r.m.WalkableAt(p) && isTurn(r.m, p) {
			protected.Put(p)
		}
	})
	return protected
}

// isTurn reports whether p has exactly two walkable neighbours that are not
// opposite each other
func isTurn(m *world.Mask, p world.Point) bool {
	var open []world.Direction
	for _, dir := range world.AllDirections() {
		if m.WalkableAt(p.Step(dir)) {
			open = append(open, dir)
		}
	}
	return len(open) == 2 && open[0].Opposite() != open[1]
}

// removeProtected removes one protected cell as a last resort: the one
// farthest from the anchor, ties in scan order. The anchor itself goes last.
func (r *reconciler) removeProtected() bool {
	var field *world.DistanceField
	if r.hasAnchor {
		field = world.BFS(r.m, []world.Point{r.anchor}, nil, nil)
	}
	var best world.Point
	bestDist, found := -2, false
	r.eachInterior(func(p world.Point) {
		if !r.m.WalkableAt(p) || (r.hasAnchor && p == r.anchor) {
			return
		}
		d := int(^uint(0) >> 1) // unreachable cells go first
		if field != nil && field.Reachable(p) {
			d = field.At(p)
		}
		if !found || d > bestDist {
			best, bestDist, found = p, d, true
		}
	})
	if !found {
		return false
	}
	r.m.SetAt(best, false)
	r.stats.Removed++
	r.stats.ProtectedRemoved++
	return true
}

// fallback guarantees one walkable cell
func (r *reconciler) fallback() {
	if r.m.Count() > 0 {
		return
	}
	r.stats.Fallback = true
	if r.hasAnchor && r.m.SetAt(r.anchor, true) {
		return
	}
	r.m.EnsureWalkable()
}
