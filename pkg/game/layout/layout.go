// Package layout runs the generation pipeline and assembles the GridLayout
// handed to downstream consumers.
package layout

import (
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/generator"
	"gridforge/pkg/game/renderer"
	"gridforge/pkg/game/request"
)

// Connectivity summarises which parts of the layout the spawn can reach
type Connectivity struct {
	Rooms          int  `json:"rooms"`
	ConnectedRooms int  `json:"connectedRooms"`
	SpawnReachable bool `json:"spawnReachable"`
	ExitReachable  bool `json:"exitReachable"`
	Components     int  `json:"components"`
}

// Stats are tile counts used to price a layout
type Stats struct {
	WalkableTiles int `json:"walkableTiles"`
	HallwayTiles  int `json:"hallwayTiles"`
	HazardTiles   int `json:"hazardTiles"`
	BarrierTiles  int `json:"barrierTiles"`
	PathLength    int `json:"pathLength"`
}

// GridLayout is a finished, immutable level layout
type GridLayout struct {
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Tiles         []string          `json:"tiles"`
	Kinds         [][]int           `json:"kinds"`
	Legend        map[string]string `json:"legend"`
	RenderPalette map[string]string `json:"renderPalette"`
	Spawn         world.Point       `json:"spawn"`
	Exit          world.Point       `json:"exit"`
	Rooms         []generator.Room  `json:"rooms"`
	EntryRoomID   *int              `json:"entryRoomId"`
	ExitRoomID    *int              `json:"exitRoomId"`
	Connectivity  Connectivity      `json:"connectivity"`
	Traps         []request.Trap    `json:"traps"`
	Seed          int64             `json:"seed"`
	Stats         Stats             `json:"stats"`
}

// WalkableCount counts cells whose kind is walkable
func (l *GridLayout) WalkableCount() int {
	n := 0
	for _, row := range l.Kinds {
		for _, k := range row {
			if walkableKind(k) {
				n++
			}
		}
	}
	return n
}

// Walkable reports whether the cell at p is walkable in the kinds grid
func (l *GridLayout) Walkable(p world.Point) bool {
	if p.Y < 0 || p.Y >= len(l.Kinds) || p.X < 0 || p.X >= len(l.Kinds[p.Y]) {
		return false
	}
	return walkableKind(l.Kinds[p.Y][p.X])
}

// walkableKind decodes a kinds-grid code; unknown codes are not walkable
func walkableKind(code int) bool {
	k, err := renderer.KindFromCode(code)
	return err == nil && k.IsWalkable()
}

// Result is the outcome of a generation call. Layout is nil whenever OK is
// false; no partial layout is ever returned.
type Result struct {
	OK       bool            `json:"ok"`
	Layout   *GridLayout     `json:"layout,omitempty"`
	Errors   []request.Issue `json:"errors,omitempty"`
	Warnings []request.Issue `json:"warnings,omitempty"`
}

func failed(errs, warnings []request.Issue) Result {
	return Result{OK: false, Errors: errs, Warnings: warnings}
}
