package generator

import (
	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// SparseIslandsGenerator scatters small diamond-shaped islands with clear
// water between them
type SparseIslandsGenerator struct{}

// Name returns the name of this generator
func (g *SparseIslandsGenerator) Name() string {
	return "Sparse Islands"
}

const (
	islandClearance   = 2  // Blocked cells kept between islands
	cellsPerIsland    = 30 // Interior cells budgeted per island
	islandAttempts    = 20 // Placement attempts per island
	clusterFillRatio  = 0.35
	clusterBranchProb = 0.25
)

// Generate creates a mask of scattered islands
func (g *SparseIslandsGenerator) Generate(req *request.Request, src *rng.Source) *Result {
	m := world.NewMask(req.Width, req.Height)
	x0, y0, x1, y1 := m.InteriorBounds()

	count := max(2, m.InteriorCapacity()/cellsPerIsland)
	placed := 0
	for a := 0; a < count*islandAttempts && placed < count; a++ {
		radius := src.Range(1, 2)
		c := world.Point{X: src.Range(x0, x1), Y: src.Range(y0, y1)}
		if !diamondClear(m, c, radius+islandClearance) {
			continue
		}
		stampDiamond(m, c, radius)
		placed++
	}
	return &Result{Mask: m}
}

// diamondClear reports whether no walkable cell lies within Manhattan radius r of c
func diamondClear(m *world.Mask, c world.Point, r int) bool {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if abs(dx)+abs(dy) <= r && m.Walkable(c.X+dx, c.Y+dy) {
				return false
			}
		}
	}
	return true
}

// stampDiamond opens every interior cell within Manhattan radius r of c
func stampDiamond(m *world.Mask, c world.Point, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if abs(dx)+abs(dy) <= r {
				m.Set(c.X+dx, c.Y+dy, true)
			}
		}
	}
}

// ClusteredIslandsGenerator grows a few dense clusters by walking lines in
// random directions with branching
type ClusteredIslandsGenerator struct{}

// Name returns the name of this generator
func (g *ClusteredIslandsGenerator) Name() string {
	return "Clustered Islands"
}

// Generate creates a mask of 2-4 walked clusters covering about 35% of the
// interior, or the requested target when one is set
func (g *ClusteredIslandsGenerator) Generate(req *request.Request, src *rng.Source) *Result {
	m := world.NewMask(req.Width, req.Height)
	x0, y0, x1, y1 := m.InteriorBounds()
	capacity := m.InteriorCapacity()

	quota := int(float64(capacity) * clusterFillRatio)
	if target, ok := req.Target(); ok {
		quota = target
	}
	quota = max(1, min(quota, capacity))

	clusters := src.Range(2, 4)
	perCluster := max(1, quota/clusters)
	for c := 0; c < clusters && m.Count() < quota; c++ {
		seed := world.Point{X: src.Range(x0, x1), Y: src.Range(y0, y1)}
		g.walkCluster(m, seed, min(perCluster, quota-m.Count()), src)
	}
	return &Result{Mask: m}
}

// walkCluster opens up to size new cells by walking short lines from seed.
// With clusterBranchProb the walk restarts from a random cell it already
// opened. The step budget keeps crowded interiors from spinning.
func (g *ClusteredIslandsGenerator) walkCluster(m *world.Mask, seed world.Point, size int, src *rng.Source) int {
	cells := []world.Point{seed}
	opened := 0
	if !m.WalkableAt(seed) && m.SetAt(seed, true) {
		opened++
	}

	pos := seed
	for steps := 0; opened < size && steps < size*8; steps++ {
		dir := world.Direction(src.Intn(4))
		length := src.Range(1, 3)
		for i := 0; i < length && opened < size; i++ {
			next := pos.Step(dir)
			if !m.IsInterior(next.X, next.Y) {
				break
			}
			pos = next
			if !m.WalkableAt(pos) {
				m.SetAt(pos, true)
				cells = append(cells, pos)
				opened++
			}
		}
		if src.Chance(clusterBranchProb) {
			pos = cells[src.Intn(len(cells))]
		}
	}
	return opened
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
