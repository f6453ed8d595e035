package layout

import (
	"errors"

	"gridforge/pkg/engine/logger"
	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/generator"
	"gridforge/pkg/game/pattern"
	"gridforge/pkg/game/placement"
	"gridforge/pkg/game/reconcile"
	"gridforge/pkg/game/renderer"
	"gridforge/pkg/game/request"
	"gridforge/pkg/game/traps"
)

// Generate normalizes raw and builds a layout with the given seed. The seed
// argument always overrides raw.Seed.
func Generate(raw request.Raw, seed int64) Result {
	raw.Seed = seed
	return GenerateRaw(raw)
}

// GenerateRaw normalizes raw and builds a layout with raw.Seed
func GenerateRaw(raw request.Raw) Result {
	norm := request.Normalize(raw)
	for _, w := range norm.Warnings {
		logger.Debug("request adjusted", "issue", w.String())
	}
	if !norm.OK() {
		logger.Debug("request rejected", "errors", len(norm.Errors))
		return failed(norm.Errors, norm.Warnings)
	}
	return Build(&norm.Request, norm.Warnings)
}

// Build runs every generation stage over an already normalized request.
// Warnings are passed through to the result.
func Build(req *request.Request, warnings []request.Issue) Result {
	src := rng.New(req.Seed)
	p := req.ShapeParams

	base := generator.Generate(req, src)
	m, rooms := base.Mask, base.Rooms
	logger.Debug("mask generated",
		"generator", generator.For(req.ShapeProfile).Name(),
		"walkable", m.Count(), "rooms", len(rooms), "rngCalls", src.Calls())

	overlay := pattern.Apply(m, rooms, p)
	if req.RequireConnectedPath {
		generator.RepairReachability(m, rooms, p.CorridorWidth)
		world.ConnectComponents(m, p.CorridorWidth)
	}
	m.EnsureWalkable()
	logger.Debug("pattern applied",
		"pattern", p.Pattern, "walled", overlay.Walled, "gaps", overlay.Gaps,
		"walkable", m.Count(), "rngCalls", src.Calls())

	if target, ok := req.Target(); ok {
		forbidden := traps.Forbidden(m, req.Traps)
		anchor := anchorCell(m, rooms)
		stats := reconcile.Reconcile(m, reconcile.Options{
			Target:    target,
			Connected: req.RequireConnectedPath,
			Anchor:    anchor,
			Forbidden: &forbidden,
		})
		logger.Debug("tile count reconciled",
			"mode", stats.Mode, "before", stats.Before, "after", stats.After,
			"added", stats.Added, "removed", stats.Removed, "rngCalls", src.Calls())
	}

	placed := traps.Place(m, req.Traps)
	logger.Debug("traps placed",
		"hazards", placed.Hazards.Size(), "barriers", placed.Barriers.Size(),
		"inert", placed.Inert, "walkable", m.Count())

	sel, err := placement.Select(m, rooms, &placed.Hazards, src, placement.Options{
		Spawn:     req.SpawnPolicy,
		Exit:      req.ExitPolicy,
		Connected: req.RequireConnectedPath,
	})
	if err != nil {
		code := request.CodeInsufficientWalkableTiles
		if errors.Is(err, placement.ErrUnreachable) {
			code = request.CodePathUnreachable
		}
		logger.Debug("spawn/exit selection failed", "error", err)
		return failed([]request.Issue{{Field: "layout", Code: code, Detail: err.Error()}}, warnings)
	}
	logger.Debug("spawn and exit selected",
		"mode", sel.Mode, "spawn", sel.Spawn, "exit", sel.Exit,
		"distance", sel.Distance, "rngCalls", src.Calls())

	out := renderer.Render(renderer.Input{
		Mask:     m,
		Spawn:    sel.Spawn,
		Exit:     sel.Exit,
		Hazards:  &placed.Hazards,
		Barriers: &placed.Barriers,
	})

	if rooms == nil {
		rooms = []generator.Room{}
	}
	l := &GridLayout{
		Width:         req.Width,
		Height:        req.Height,
		Tiles:         out.Tiles,
		Kinds:         out.Kinds,
		Legend:        out.Legend,
		RenderPalette: out.Palette,
		Spawn:         sel.Spawn,
		Exit:          sel.Exit,
		Rooms:         rooms,
		EntryRoomID:   sel.EntryRoom,
		ExitRoomID:    sel.ExitRoom,
		Traps:         placed.Traps,
		Seed:          req.Seed,
	}
	l.Connectivity = Summarize(l)
	l.Stats = tileStats(l, sel.Distance)

	if errs := Verify(req, l); len(errs) > 0 {
		logger.Debug("layout failed verification", "errors", len(errs))
		return failed(errs, warnings)
	}
	logger.Debug("layout generated",
		"width", l.Width, "height", l.Height, "walkable", l.Stats.WalkableTiles,
		"rngCalls", src.Calls())
	return Result{OK: true, Layout: l, Warnings: warnings}
}

// anchorCell is the reconciliation anchor: the first room's anchor cell, or
// nil to let the reconciler use the first walkable cell
func anchorCell(m *world.Mask, rooms []generator.Room) *world.Point {
	for _, r := range rooms {
		if p, ok := r.Anchor(m); ok {
			return &p
		}
	}
	return nil
}

// tileStats counts tiles by class for budget consumers
func tileStats(l *GridLayout, pathLength int) Stats {
	s := Stats{PathLength: pathLength}
	for y, row := range l.Tiles {
		for x, ch := range []rune(row) {
			p := world.Point{X: x, Y: y}
			switch {
			case ch == renderer.CharBarrier:
				s.BarrierTiles++
			case l.Kinds[y][x] == int(renderer.KindHazard):
				s.HazardTiles++
				s.WalkableTiles++
			case l.Kinds[y][x] == int(renderer.KindOpen):
				s.WalkableTiles++
			default:
				continue
			}
			if ch != renderer.CharBarrier && !inRoom(l.Rooms, p) {
				s.HallwayTiles++
			}
		}
	}
	return s
}

func inRoom(rooms []generator.Room, p world.Point) bool {
	for _, r := range rooms {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
