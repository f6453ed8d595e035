package generator

import (
	"sort"

	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// RoomsGenerator places non-overlapping rectangular rooms and joins them
// with L-shaped corridors
type RoomsGenerator struct{}

// Name returns the name of this generator
func (g *RoomsGenerator) Name() string {
	return "Rooms"
}

// Constants for room placement
const (
	attemptsPerRoom = 40 // Sampling attempts budgeted per requested room
	roomPadding     = 1  // Blocked margin kept around every room
)

// Generate creates a new mask of rooms and corridors
func (g *RoomsGenerator) Generate(req *request.Request, src *rng.Source) *Result {
	m := world.NewMask(req.Width, req.Height)
	p := req.ShapeParams

	rooms := placeRooms(m, p, src)
	if len(rooms) < p.RoomCount {
		rooms = sweepRooms(m, rooms, p)
	}
	if len(rooms) == 0 {
		// Interior too small for a padded room; fall back to an open floor
		m.FillInterior()
		return &Result{Mask: m}
	}

	// Connect in ascending centre order so corridors run left to right
	sort.SliceStable(rooms, func(i, j int) bool {
		a, b := rooms[i].Center(), rooms[j].Center()
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	for i := range rooms {
		rooms[i].ID = i
	}

	connectRooms(m, rooms, p.CorridorWidth, src)
	RepairReachability(m, rooms, p.CorridorWidth)

	return &Result{Mask: m, Rooms: rooms}
}

// placeRooms samples random rectangles until enough rooms are accepted or
// the attempt budget runs out. Each attempt draws width, height, x, y.
func placeRooms(m *world.Mask, p request.ShapeParams, src *rng.Source) []Room {
	x0, y0, x1, y1 := m.InteriorBounds()
	attempts := max(p.RoomCount*attemptsPerRoom, attemptsPerRoom)

	var rooms []Room
	for a := 0; a < attempts && len(rooms) < p.RoomCount; a++ {
		w := src.Range(p.RoomMinSize, p.RoomMaxSize)
		h := src.Range(p.RoomMinSize, p.RoomMaxSize)
		x := src.Range(x0+roomPadding, x1-roomPadding-w+1)
		y := src.Range(y0+roomPadding, y1-roomPadding-h+1)

		room := Room{X: x, Y: y, Width: w, Height: h}
		if !roomFits(m, room) {
			continue
		}
		carveRoom(m, room)
		rooms = append(rooms, room)
	}
	return rooms
}

// sweepRooms fills the remaining slots with minimum-size squares, scanning
// top-left corners left to right, top to bottom
func sweepRooms(m *world.Mask, rooms []Room, p request.ShapeParams) []Room {
	x0, y0, x1, y1 := m.InteriorBounds()
	size := p.RoomMinSize
	for y := y0 + roomPadding; y+size-1 <= y1-roomPadding; y++ {
		for x := x0 + roomPadding; x+size-1 <= x1-roomPadding; x++ {
			if len(rooms) >= p.RoomCount {
				return rooms
			}
			room := Room{X: x, Y: y, Width: size, Height: size}
			if roomFits(m, room) {
				carveRoom(m, room)
				rooms = append(rooms, room)
			}
		}
	}
	return rooms
}

// roomFits checks that the room plus its padding lies in the interior and
// touches no walkable cell
func roomFits(m *world.Mask, r Room) bool {
	for y := r.Y - roomPadding; y < r.Y+r.Height+roomPadding; y++ {
		for x := r.X - roomPadding; x < r.X+r.Width+roomPadding; x++ {
			if !m.IsInterior(x, y) || m.Walkable(x, y) {
				return false
			}
		}
	}
	return true
}

// carveRoom marks room cells as walkable in the mask
func carveRoom(m *world.Mask, r Room) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			m.Set(x, y, true)
		}
	}
}

// connectRooms joins consecutive rooms with L-shaped corridors
func connectRooms(m *world.Mask, rooms []Room, width int, src *rng.Source) {
	for i := 1; i < len(rooms); i++ {
		from, to := rooms[i-1].Center(), rooms[i].Center()
		// Horizontal first, then vertical, on a 0
		horizontalFirst := src.CoinFlip()
		world.CarveL(m, from, to, horizontalFirst, width)
	}
}

// RepairReachability links every room not reachable from the first room's
// centre to its nearest reachable room (Manhattan distance between centres,
// ties to the lower index). Gives up after 2*len(rooms) corridors. Returns
// how many corridors were carved.
func RepairReachability(m *world.Mask, rooms []Room, width int) int {
	if len(rooms) < 2 {
		return 0
	}
	anchor, ok := rooms[0].Anchor(m)
	if !ok {
		return 0
	}
	carved := 0
	for attempt := 0; attempt < 2*len(rooms); attempt++ {
		field := world.BFS(m, []world.Point{anchor}, nil, nil)

		stray := -1
		for i, r := range rooms {
			if !roomReachable(field, r) {
				stray = i
				break
			}
		}
		if stray < 0 {
			break
		}

		from := rooms[stray].Center()
		nearest, best := -1, 0
		for i, r := range rooms {
			if i == stray || !roomReachable(field, r) {
				continue
			}
			if d := world.ManhattanDistance(from, r.Center()); nearest < 0 || d < best {
				nearest, best = i, d
			}
		}
		if nearest < 0 {
			break
		}
		world.CarveL(m, from, rooms[nearest].Center(), true, width)
		carved++
	}
	return carved
}

// roomReachable reports whether any cell of the room was reached
func roomReachable(field *world.DistanceField, r Room) bool {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if field.Reachable(world.Point{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}
