// Package renderer projects a finished mask, spawn, exit and traps onto the
// external tile, kind, legend and palette representation.
package renderer

import (
	"strings"

	"gridforge/pkg/engine/world"
)

// Input is everything the renderer projects
type Input struct {
	Mask     *world.Mask
	Spawn    world.Point
	Exit     world.Point
	Hazards  *world.PointSet
	Barriers *world.PointSet
	Catalog  *Catalog // nil uses the embedded English catalogue
}

// Output is the external representation of a layout
type Output struct {
	Tiles   []string          `json:"tiles"`
	Kinds   [][]int           `json:"kinds"`
	Legend  map[string]string `json:"legend"`
	Palette map[string]string `json:"renderPalette"`
}

// TileAt resolves the tile for one cell. Spawn and exit win over everything,
// then barriers, then hazards.
func (in *Input) TileAt(p world.Point) Tile {
	switch {
	case p == in.Spawn:
		return TileSpawn
	case p == in.Exit:
		return TileExit
	case in.Barriers != nil && in.Barriers.Has(p):
		return TileBarrier
	case !in.Mask.WalkableAt(p):
		return TileWall
	case in.Hazards != nil && in.Hazards.Has(p):
		return TileHazard
	}
	return TileFloor
}

// Render builds tiles and kinds row by row. It makes no decisions and is
// idempotent for identical input.
func Render(in Input) Output {
	w, h := in.Mask.Width(), in.Mask.Height()
	out := Output{
		Tiles: make([]string, h),
		Kinds: make([][]int, h),
	}

	var row strings.Builder
	for y := 0; y < h; y++ {
		row.Reset()
		kinds := make([]int, w)
		for x := 0; x < w; x++ {
			tile := in.TileAt(world.Point{X: x, Y: y})
			row.WriteRune(tile.Char)
			kinds[x] = tile.Kind.Code()
		}
		out.Tiles[y] = row.String()
		out.Kinds[y] = kinds
	}

	catalog := in.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	out.Legend = catalog.Legend()
	out.Palette = Palette()
	return out
}
