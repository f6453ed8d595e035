// Package placement chooses spawn and exit cells on a finished mask.
package placement

import (
	"errors"
	"sort"

	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/generator"
	"gridforge/pkg/game/request"
)

var (
	// ErrInsufficientWalkable is returned when fewer than two candidate cells exist
	ErrInsufficientWalkable = errors.New("fewer than two walkable non-hazard cells")
	// ErrUnreachable is returned when a connected path is required but no
	// spawn candidate reaches any other candidate
	ErrUnreachable = errors.New("no exit reachable from any spawn candidate")
)

// Selection modes
const (
	ModeRooms = "rooms"
	ModeFree  = "free"
)

// Options carries the policies that constrain the choice
type Options struct {
	Spawn     request.Policy
	Exit      request.Policy
	Connected bool
}

// Selection is the chosen spawn and exit
type Selection struct {
	Spawn     world.Point
	Exit      world.Point
	EntryRoom *int
	ExitRoom  *int
	Distance  int // path distance, world.Unreachable if none
	Mode      string
}

type selector struct {
	m          *world.Mask
	rooms      []generator.Room
	hazards    *world.PointSet
	opts       Options
	candidates []world.Point
}

// Select picks spawn and exit. With two or more rooms holding candidate cells
// the pair of rooms farthest apart is used; otherwise cells are drawn from
// src with edge bias. Hazard cells are never chosen and exit never equals
// spawn.
func Select(m *world.Mask, rooms []generator.Room, hazards *world.PointSet, src *rng.Source, opts Options) (Selection, error) {
	s := &selector{m: m, rooms: rooms, hazards: hazards, opts: opts}
	for _, p := range m.WalkablePoints() {
		if hazards == nil || !hazards.Has(p) {
			s.candidates = append(s.candidates, p)
		}
	}
	if len(s.candidates) < 2 {
		return Selection{Distance: world.Unreachable}, ErrInsufficientWalkable
	}

	if sel, ok := s.roomPairs(); ok {
		return sel, nil
	}
	return s.free(src)
}

// roomCandidates returns the candidate cells inside room r
func (s *selector) roomCandidates(r generator.Room) []world.Point {
	var pts []world.Point
	for _, p := range s.candidates {
		if r.Contains(p) {
			pts = append(pts, p)
		}
	}
	return pts
}

type roomPair struct {
	i, j    int
	dist    int
	minAxis int
}

func (s *selector) roomPairs() (Selection, bool) {
	var usable []int
	cells := make(map[int][]world.Point)
	for i, r := range s.rooms {
		if pts := s.roomCandidates(r); len(pts) > 0 {
			usable = append(usable, i)
			cells[i] = pts
		}
	}
	if len(usable) < 2 {
		return Selection{}, false
	}

	var pairs []roomPair
	for a := 0; a < len(usable); a++ {
		for b := a + 1; b < len(usable); b++ {
			i, j := usable[a], usable[b]
			ci, cj := s.rooms[i].Center(), s.rooms[j].Center()
			pairs = append(pairs, roomPair{
				i:       i,
				j:       j,
				dist:    world.ManhattanDistance(ci, cj),
				minAxis: min(abs(ci.X-cj.X), abs(ci.Y-cj.Y)),
			})
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		pa, pb := pairs[a], pairs[b]
		if pa.dist != pb.dist {
			return pa.dist > pb.dist
		}
		if pa.minAxis != pb.minAxis {
			return pa.minAxis > pb.minAxis
		}
		if pa.i != pb.i {
			return pa.i < pb.i
		}
		return pa.j < pb.j
	})

	// First honour the minimum separation, then accept any
	for _, strict := range []bool{true, false} {
		for _, pr := range pairs {
			entry, exit := pr.i, pr.j
			if s.opts.Spawn.EdgeBias && s.edgeDistance(s.rooms[exit].Center()) < s.edgeDistance(s.rooms[entry].Center()) {
				entry, exit = exit, entry
			}
			spawn := nearestTo(cells[entry], s.rooms[entry].Center())
			field := world.BFS(s.m, []world.Point{spawn}, nil, nil)
			exitCells := s.edgeFilter(cells[exit], s.opts.Exit.EdgeBias)
			cell, ok := s.farthestExit(spawn, exitCells, field, strict)
			if !ok {
				continue
			}
			entryID, exitID := s.rooms[entry].ID, s.rooms[exit].ID
			return Selection{
				Spawn:     spawn,
				Exit:      cell,
				EntryRoom: &entryID,
				ExitRoom:  &exitID,
				Distance:  field.At(cell),
				Mode:      ModeRooms,
			}, true
		}
	}
	return Selection{}, false
}

// farthestExit returns the cell maximising path distance from spawn. Without
// a connectivity requirement and no reachable cell, straight-line distance
// is used instead. With strict set, cells closer than minSeparation are skipped.
func (s *selector) farthestExit(spawn world.Point, cells []world.Point, field *world.DistanceField, strict bool) (world.Point, bool) {
	var best world.Point
	bestDist, found := -1, false
	minDist := s.minSeparation()
	consider := func(p world.Point, d int) {
		if p == spawn || (strict && d < minDist) {
			return
		}
		if d > bestDist {
			best, bestDist, found = p, d, true
		}
	}
	for _, p := range cells {
		if field.Reachable(p) {
			consider(p, field.At(p))
		}
	}
	if !found && !s.opts.Connected {
		for _, p := range cells {
			consider(p, world.ManhattanDistance(spawn, p))
		}
	}
	return best, found
}

// free draws spawn and exit from the candidate set with edge bias. Spawn
// candidates are tried in a cycle from a seeded start; the first pass only
// accepts a spawn with an exit at least minSeparation away.
func (s *selector) free(src *rng.Source) (Selection, error) {
	spawnCands := s.edgeFilter(s.candidates, s.opts.Spawn.EdgeBias)
	start := src.Intn(len(spawnCands))

	for _, strict := range []bool{true, false} {
		for k := 0; k < len(spawnCands); k++ {
			spawn := spawnCands[(start+k)%len(spawnCands)]
			field := world.BFS(s.m, []world.Point{spawn}, nil, nil)

			exitCands := s.exitCandidates(spawn, field, strict)
			if len(exitCands) == 0 {
				continue
			}
			exit := exitCands[src.Intn(len(exitCands))]
			return Selection{
				Spawn:     spawn,
				Exit:      exit,
				EntryRoom: s.roomAt(spawn),
				ExitRoom:  s.roomAt(exit),
				Distance:  field.At(exit),
				Mode:      ModeFree,
			}, nil
		}
	}
	return Selection{Distance: world.Unreachable}, ErrUnreachable
}

// exitCandidates lists cells other than spawn that satisfy the exit policy.
// With strict set only cells at least minSeparation away qualify; otherwise
// the whole edge-filtered pool is returned.
func (s *selector) exitCandidates(spawn world.Point, field *world.DistanceField, strict bool) []world.Point {
	distance := func(p world.Point) int {
		if s.opts.Connected {
			return field.At(p)
		}
		return world.ManhattanDistance(spawn, p)
	}

	var pool []world.Point
	for _, p := range s.candidates {
		if p == spawn || (s.opts.Connected && !field.Reachable(p)) {
			continue
		}
		pool = append(pool, p)
	}
	pool = s.edgeFilter(pool, s.opts.Exit.EdgeBias)
	if !strict {
		return pool
	}

	minDist := s.minSeparation()
	var far []world.Point
	for _, p := range pool {
		if distance(p) >= minDist {
			far = append(far, p)
		}
	}
	return far
}

// minSeparation is the spawn to exit distance both policies ask for
func (s *selector) minSeparation() int {
	return max(s.opts.Spawn.MinDistance, s.opts.Exit.MinDistance)
}

// edgeFilter keeps cells within the edge band when bias is set, falling back
// to all cells if none qualify
func (s *selector) edgeFilter(cells []world.Point, bias bool) []world.Point {
	if !bias {
		return cells
	}
	x0, y0, x1, y1 := s.m.InteriorBounds()
	band := max(1, min(x1-x0+1, y1-y0+1)/4)
	var near []world.Point
	for _, p := range cells {
		if s.edgeDistance(p) < band {
			near = append(near, p)
		}
	}
	if len(near) == 0 {
		return cells
	}
	return near
}

func (s *selector) edgeDistance(p world.Point) int {
	return s.m.EdgeDistance(p.X, p.Y)
}

// roomAt returns the ID of the first room containing p, or nil
func (s *selector) roomAt(p world.Point) *int {
	for _, r := range s.rooms {
		if r.Contains(p) {
			id := r.ID
			return &id
		}
	}
	return nil
}

// nearestTo returns the cell closest to target, ties in scan order
func nearestTo(cells []world.Point, target world.Point) world.Point {
	best := cells[0]
	bestDist := world.ManhattanDistance(best, target)
	for _, p := range cells[1:] {
		if d := world.ManhattanDistance(p, target); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
