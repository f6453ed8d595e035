package layout

import (
	"fmt"

	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// Verify checks a finished layout against the request. Any returned issue
// means the layout must not be used.
func Verify(req *request.Request, l *GridLayout) []request.Issue {
	var errs []request.Issue
	walkable := l.WalkableCount()

	if walkable == 0 {
		errs = append(errs, request.Issue{Field: "layout", Code: request.CodeNoWalkableTiles})
	}
	if target, ok := req.Target(); ok && walkable != target {
		errs = append(errs, request.Issue{
			Field:  "walkableTilesTarget",
			Code:   request.CodeTargetMismatch,
			Detail: fmt.Sprintf("want %d, got %d", target, walkable),
		})
	}

	if l.Spawn == l.Exit || !l.Walkable(l.Spawn) || !l.Walkable(l.Exit) {
		errs = append(errs, request.Issue{
			Field:  "layout",
			Code:   request.CodeInsufficientWalkableTiles,
			Detail: "spawn and exit need two distinct walkable cells",
		})
	}

	// Actors need free floor beyond spawn, exit and hazards
	if req.ActorCount > 0 {
		free := walkable - 2 - l.Stats.HazardTiles
		if free < req.ActorCount {
			errs = append(errs, request.Issue{
				Field:  "actorCount",
				Code:   request.CodeInsufficientWalkableTiles,
				Detail: fmt.Sprintf("%d free tiles for %d actors", max(free, 0), req.ActorCount),
			})
		}
	}

	if req.RequireConnectedPath && !pathExists(l, l.Spawn, l.Exit) {
		errs = append(errs, request.Issue{
			Field:  "requireConnectedPath",
			Code:   request.CodePathUnreachable,
			Detail: fmt.Sprintf("exit (%d,%d) not reachable from spawn (%d,%d)", l.Exit.X, l.Exit.Y, l.Spawn.X, l.Spawn.Y),
		})
	}
	return errs
}

// pathExists runs a breadth-first search over the kinds grid
func pathExists(l *GridLayout, from, to world.Point) bool {
	if !l.Walkable(from) || !l.Walkable(to) {
		return false
	}
	m := world.NewMask(l.Width, l.Height)
	field := world.BFS(m, []world.Point{from}, l.Walkable, nil)
	return field.Reachable(to)
}
