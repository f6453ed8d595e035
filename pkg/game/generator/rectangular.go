package generator

import (
	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// RectangularGenerator fills the interior and roughens its outline
type RectangularGenerator struct{}

// Name returns the name of this generator
func (g *RectangularGenerator) Name() string {
	return "Rectangular"
}

// Edge perturbation tuning
const (
	edgeRemoveChance = 0.35 // Removal probability on the outermost interior ring
	edgeRegrowDamp   = 0.5  // How strongly edge proximity suppresses regrowth
	minPerturbSide   = 3    // Interiors thinner than this stay solid
)

// Generate creates a filled mask with an organic boundary
func (g *RectangularGenerator) Generate(req *request.Request, src *rng.Source) *Result {
	m := world.NewMask(req.Width, req.Height)
	m.FillInterior()

	x0, y0, x1, y1 := m.InteriorBounds()
	if x1-x0+1 >= minPerturbSide && y1-y0+1 >= minPerturbSide {
		perturbEdges(m, src)
	}
	return &Result{Mask: m}
}

// perturbEdges removes near-boundary cells at random (likelier closer to the
// edge) and then runs one smoothing pass over a snapshot
func perturbEdges(m *world.Mask, src *rng.Source) {
	x0, y0, x1, y1 := m.InteriorBounds()
	band := max(1, min(x1-x0+1, y1-y0+1)/6)
	weight := func(d int) float64 {
		return float64(band-d) / float64(band)
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := m.EdgeDistance(x, y)
			if d < band && src.Chance(edgeRemoveChance*weight(d)) {
				m.Set(x, y, false)
			}
		}
	}

	snapshot := m.Clone()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			n := snapshot.WalkableNeighbors(x, y)
			if snapshot.Walkable(x, y) {
				if n < 2 {
					m.Set(x, y, false)
				}
				continue
			}
			d := m.EdgeDistance(x, y)
			if d < band && n >= 3 && src.Chance(1-edgeRegrowDamp*weight(d)) {
				m.Set(x, y, true)
			}
		}
	}
}
