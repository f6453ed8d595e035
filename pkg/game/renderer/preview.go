package renderer

import (
	"strings"

	"github.com/gookit/color"
)

// Palette keys
const (
	PaletteWall    = "wall"
	PaletteFloor   = "floor"
	PaletteHazard  = "hazard"
	PaletteSpawn   = "spawn"
	PaletteExit    = "exit"
	PaletteBarrier = "barrier"
)

var palette = map[string]string{
	PaletteWall:    "#3a3a46",
	PaletteFloor:   "#c8c2b0",
	PaletteHazard:  "#d9822b",
	PaletteSpawn:   "#3fbf5f",
	PaletteExit:    "#4a90e2",
	PaletteBarrier: "#b03a2e",
}

// Palette returns a copy of the fixed render palette
func Palette() map[string]string {
	p := make(map[string]string, len(palette))
	for k, v := range palette {
		p[k] = v
	}
	return p
}

// paletteKey picks the palette entry for a tile character and kind
func paletteKey(ch rune, kind TileKind) string {
	switch {
	case ch == CharSpawn:
		return PaletteSpawn
	case ch == CharExit:
		return PaletteExit
	case ch == CharBarrier:
		return PaletteBarrier
	case kind == KindHazard:
		return PaletteHazard
	case ch == CharFloor:
		return PaletteFloor
	}
	return PaletteWall
}

// Preview renders tiles as coloured terminal text. Spawn and exit are bold.
// When colour is disabled the plain rows are returned.
func Preview(out Output, enabled bool) string {
	if !enabled {
		return strings.Join(out.Tiles, "\n")
	}

	styles := make(map[string]color.RGBColor, len(palette))
	for k, hex := range palette {
		styles[k] = color.HEX(hex)
	}
	bold := color.Style{color.OpBold}

	var b strings.Builder
	for y, row := range out.Tiles {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, ch := range []rune(row) {
			kind := KindOpen
			if y < len(out.Kinds) && x < len(out.Kinds[y]) {
				kind = TileKind(out.Kinds[y][x])
			}
			s := styles[paletteKey(ch, kind)].Sprint(string(ch))
			if ch == CharSpawn || ch == CharExit {
				s = bold.Sprint(s)
			}
			b.WriteString(s)
		}
	}
	return b.String()
}
