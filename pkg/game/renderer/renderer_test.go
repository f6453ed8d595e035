package renderer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gookit/color"

	"gridforge/pkg/engine/world"
)

func sampleInput() Input {
	m := world.NewMask(6, 5)
	m.FillInterior()
	m.Set(4, 3, false)
	hazards := world.NewPointSet(world.Point{X: 2, Y: 2})
	barriers := world.NewPointSet(world.Point{X: 3, Y: 1})
	return Input{
		Mask:     m,
		Spawn:    world.Point{X: 1, Y: 1},
		Exit:     world.Point{X: 4, Y: 2},
		Hazards:  &hazards,
		Barriers: &barriers,
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleInput())
	wantTiles := []string{
		"######",
		"#S.B.#",
		"#...E#",
		"#...##",
		"######",
	}
	if !reflect.DeepEqual(out.Tiles, wantTiles) {
		t.Errorf("Tiles = %q, want %q", out.Tiles, wantTiles)
	}
	wantKinds := [][]int{
		{1, 1, 1, 1, 1, 1},
		{1, 0, 0, 1, 0, 1},
		{1, 0, 2, 0, 0, 1},
		{1, 0, 0, 0, 1, 1},
		{1, 1, 1, 1, 1, 1},
	}
	if !reflect.DeepEqual(out.Kinds, wantKinds) {
		t.Errorf("Kinds = %v, want %v", out.Kinds, wantKinds)
	}
}

func TestRenderIdempotent(t *testing.T) {
	in := sampleInput()
	a, b := Render(in), Render(in)
	if !reflect.DeepEqual(a, b) {
		t.Error("two renders of the same input differ")
	}
}

func TestLegend(t *testing.T) {
	out := Render(sampleInput())
	want := map[string]string{
		"#": "wall",
		".": "floor",
		"S": "spawn",
		"E": "exit",
		"B": "barrier",
	}
	if !reflect.DeepEqual(out.Legend, want) {
		t.Errorf("Legend = %v, want %v", out.Legend, want)
	}
	kinds := DefaultCatalog().KindLegend()
	if kinds["0"] != "open" || kinds["1"] != "blocked" || kinds["2"] != "hazard" {
		t.Errorf("KindLegend() = %v", kinds)
	}
}

func TestCustomCatalog(t *testing.T) {
	po := []byte(`msgid ""
msgstr ""
"Language: de\n"

msgid "LEGEND_WALL"
msgstr "Wand"
`)
	legend := NewCatalog(po).Legend()
	if legend["#"] != "Wand" {
		t.Errorf(`Legend()["#"] = %q, want "Wand"`, legend["#"])
	}
	if legend["S"] != "LEGEND_SPAWN" {
		t.Errorf(`Legend()["S"] = %q, want the untranslated key`, legend["S"])
	}
}

func TestKindFromCode(t *testing.T) {
	for _, k := range []TileKind{KindOpen, KindBlocked, KindHazard} {
		got, err := KindFromCode(k.Code())
		if err != nil || got != k {
			t.Errorf("KindFromCode(%d) = %v, %v, want %v", k.Code(), got, err, k)
		}
	}
	if _, err := KindFromCode(7); err == nil {
		t.Error("KindFromCode(7) error = nil, want error")
	}
	if !KindHazard.IsWalkable() || KindBlocked.IsWalkable() {
		t.Error("IsWalkable() wrong for hazard or blocked")
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	for _, key := range []string{PaletteWall, PaletteFloor, PaletteHazard, PaletteSpawn, PaletteExit, PaletteBarrier} {
		if !strings.HasPrefix(p[key], "#") || len(p[key]) != 7 {
			t.Errorf("Palette()[%q] = %q, want #rrggbb", key, p[key])
		}
	}
	p[PaletteWall] = "#000000"
	if Palette()[PaletteWall] == "#000000" {
		t.Error("Palette() returned the shared map")
	}
}

func TestPreview(t *testing.T) {
	out := Render(sampleInput())
	plain := strings.Join(out.Tiles, "\n")
	if got := Preview(out, false); got != plain {
		t.Errorf("Preview(disabled) = %q, want %q", got, plain)
	}
	if got := color.ClearCode(Preview(out, true)); got != plain {
		t.Errorf("Preview(enabled) without codes = %q, want %q", got, plain)
	}
}
