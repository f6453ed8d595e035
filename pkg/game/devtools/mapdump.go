// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gridforge/pkg/game/layout"
	"gridforge/pkg/game/renderer"
	"gridforge/pkg/game/request"
)

// DumpLayout writes a full debug dump of a generation result: metadata,
// legend, the map with a coordinate ruler, rooms, traps and issues.
// Format is human- and LLM-readable (sections, key: value, consistent structure).
func DumpLayout(w io.Writer, res layout.Result) error {
	d := &dumper{w: w}

	d.line("=== LAYOUT DUMP DEBUG (mask, rooms, spawn/exit, traps) ===")
	d.line("")
	d.line("--- Metadata ---")
	d.printf("ok: %v\n", res.OK)
	l := res.Layout
	if l != nil {
		d.printf("seed: %d\n", l.Seed)
		d.printf("grid_width: %d\n", l.Width)
		d.printf("grid_height: %d\n", l.Height)
		d.printf("coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
		d.printf("spawn: %d,%d\n", l.Spawn.X, l.Spawn.Y)
		d.printf("exit: %d,%d\n", l.Exit.X, l.Exit.Y)
		d.printf("entry_room: %s\n", optionalID(l.EntryRoomID))
		d.printf("exit_room: %s\n", optionalID(l.ExitRoomID))
		d.printf("walkable_tiles: %d\n", l.Stats.WalkableTiles)
		d.printf("hallway_tiles: %d\n", l.Stats.HallwayTiles)
		d.printf("hazard_tiles: %d\n", l.Stats.HazardTiles)
		d.printf("barrier_tiles: %d\n", l.Stats.BarrierTiles)
		d.printf("path_length: %d\n", l.Stats.PathLength)
		c := l.Connectivity
		d.printf("connectivity: rooms=%d connected_rooms=%d components=%d spawn_reachable=%v exit_reachable=%v\n",
			c.Rooms, c.ConnectedRooms, c.Components, c.SpawnReachable, c.ExitReachable)
	}
	d.line("")

	if l != nil {
		d.line("--- Legend (tile symbols) ---")
		keys := make([]string, 0, len(l.Legend))
		for k := range l.Legend {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s = %s", k, l.Legend[k]))
		}
		d.line(strings.Join(parts, "  ") + "  (hazards render as . with kind 2)")
		d.line("")

		d.line("--- Map ---")
		d.writeMap(l)
		d.line("")

		d.printf("--- Kinds (%s) ---\n", kindHeader())
		for _, row := range l.Kinds {
			var b strings.Builder
			for _, k := range row {
				fmt.Fprintf(&b, "%d", k)
			}
			d.line(b.String())
		}
		d.line("")

		d.line("--- Rooms ---")
		if len(l.Rooms) == 0 {
			d.line("(none)")
		}
		for _, r := range l.Rooms {
			c := r.Center()
			d.printf("room %d: x=%d y=%d width=%d height=%d center=%d,%d\n", r.ID, r.X, r.Y, r.Width, r.Height, c.X, c.Y)
		}
		d.line("")

		d.line("--- Traps ---")
		if len(l.Traps) == 0 {
			d.line("(none)")
		}
		for _, t := range l.Traps {
			d.printf("trap %d,%d: blocking=%v tile=%c kind=%d", t.X, t.Y, t.Blocking, l.Tiles[t.Y][t.X], l.Kinds[t.Y][t.X])
			if t.AffinityTag != "" {
				d.printf(" affinity=%s", t.AffinityTag)
			}
			if len(t.VitalsModifiers) > 0 {
				d.printf(" vitals=%s", formatVitals(t.VitalsModifiers))
			}
			d.line("")
		}
		d.line("")
	}

	d.writeIssues("Errors", res.Errors)
	d.writeIssues("Warnings", res.Warnings)
	return d.err
}

// DumpLayoutToFile writes DumpLayout output to path and returns the absolute path
func DumpLayoutToFile(path string, res layout.Result) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(absPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create dump directory: %w", err)
		}
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpLayout(f, res); err != nil {
		return "", fmt.Errorf("write layout dump: %w", err)
	}
	return absPath, nil
}

// dumper remembers the first write error so the dump code stays linear
type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(format string, a ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, a...)
}

func (d *dumper) line(s string) {
	d.printf("%s\n", s)
}

// writeMap writes the tile rows with x ruler on top and y labels on the left
func (d *dumper) writeMap(l *layout.GridLayout) {
	var ruler strings.Builder
	ruler.WriteString("    ")
	for x := 0; x < l.Width; x++ {
		fmt.Fprintf(&ruler, "%d", x%10)
	}
	d.line(ruler.String())
	for y, row := range l.Tiles {
		d.printf("%3d %s\n", y, row)
	}
}

func (d *dumper) writeIssues(title string, issues []request.Issue) {
	if len(issues) == 0 {
		return
	}
	d.printf("--- %s ---\n", title)
	for _, i := range issues {
		d.line(i.String())
	}
	d.line("")
}

// kindHeader lists kind codes with their labels, e.g. "0 open, 1 blocked"
func kindHeader() string {
	labels := renderer.DefaultCatalog().KindLegend()
	codes := make([]string, 0, len(labels))
	for code := range labels {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, code+" "+labels[code])
	}
	return strings.Join(parts, ", ")
}

func optionalID(id *int) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}

func formatVitals(mods map[string]float64) string {
	names := make([]string, 0, len(mods))
	for name := range mods {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%g", name, mods[name]))
	}
	return strings.Join(parts, ",")
}
