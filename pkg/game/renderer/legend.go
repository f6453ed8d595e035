package renderer

import (
	_ "embed"
	"strconv"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/en.po
var defaultCatalog []byte

var legendKeys = []struct {
	char rune
	key  string
}{
	{CharWall, "LEGEND_WALL"},
	{CharFloor, "LEGEND_FLOOR"},
	{CharSpawn, "LEGEND_SPAWN"},
	{CharExit, "LEGEND_EXIT"},
	{CharBarrier, "LEGEND_BARRIER"},
}

var kindKeys = map[TileKind]string{
	KindOpen:    "KIND_OPEN",
	KindBlocked: "KIND_BLOCKED",
	KindHazard:  "KIND_HAZARD",
}

// Catalog translates legend labels
type Catalog struct {
	po *gotext.Po
}

// NewCatalog parses a PO catalogue. A nil or empty catalogue falls back to
// the embedded English one.
func NewCatalog(data []byte) *Catalog {
	if len(data) == 0 {
		data = defaultCatalog
	}
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{po: po}
}

// DefaultCatalog returns the embedded English catalogue
func DefaultCatalog() *Catalog {
	return NewCatalog(nil)
}

// get looks a key up; untranslated keys come back unchanged
func (c *Catalog) get(key string) string {
	return c.po.Get(key)
}

// Legend maps every tile character to its label
func (c *Catalog) Legend() map[string]string {
	legend := make(map[string]string, len(legendKeys))
	for _, l := range legendKeys {
		legend[string(l.char)] = c.get(l.key)
	}
	return legend
}

// KindLegend maps every kind code to its label
func (c *Catalog) KindLegend() map[string]string {
	legend := make(map[string]string, len(kindKeys))
	for k, key := range kindKeys {
		legend[strconv.Itoa(k.Code())] = c.get(key)
	}
	return legend
}
