package generator

import (
	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// Room is an axis-aligned rectangle carved fully inside the interior
type Room struct {
	ID     int `json:"id"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the integer centre cell of the room
func (r Room) Center() world.Point {
	return world.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Anchor returns the room's centre if walkable, otherwise its first walkable
// cell in row-major order
func (r Room) Anchor(m *world.Mask) (world.Point, bool) {
	if c := r.Center(); m.WalkableAt(c) {
		return c, true
	}
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			if m.Walkable(x, y) {
				return world.Point{X: x, Y: y}, true
			}
		}
	}
	return world.Point{}, false
}

// Contains reports whether p lies inside the room
func (r Room) Contains(p world.Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// EdgeDistance returns how far p is from the nearest room edge (0 on the
// room's outer ring). Only meaningful when Contains(p).
func (r Room) EdgeDistance(p world.Point) int {
	return min(p.X-r.X, p.Y-r.Y, r.X+r.Width-1-p.X, r.Y+r.Height-1-p.Y)
}

// Result is the base mask a generator produced plus any rooms it carved
type Result struct {
	Mask  *world.Mask
	Rooms []Room
}

// MaskGenerator is an interface for base mask algorithms
type MaskGenerator interface {
	Generate(req *request.Request, src *rng.Source) *Result
	Name() string
}

// Available generators
var (
	Rectangular      = &RectangularGenerator{}
	Rooms            = &RoomsGenerator{}
	SparseIslands    = &SparseIslandsGenerator{}
	ClusteredIslands = &ClusteredIslandsGenerator{}
)

// DefaultGenerator is used for profiles without a dedicated generator
var DefaultGenerator MaskGenerator = Rectangular

// For returns the generator registered for a shape profile
func For(profile request.Profile) MaskGenerator {
	switch profile {
	case request.ProfileRooms:
		return Rooms
	case request.ProfileSparseIslands:
		return SparseIslands
	case request.ProfileClusteredIslands:
		return ClusteredIslands
	}
	return DefaultGenerator
}

// Generate runs the profile's generator, applies global connectivity repair
// when required and guarantees at least one walkable cell.
func Generate(req *request.Request, src *rng.Source) *Result {
	res := For(req.ShapeProfile).Generate(req, src)
	if req.RequireConnectedPath {
		world.ConnectComponents(res.Mask, req.ShapeParams.CorridorWidth)
	}
	res.Mask.EnsureWalkable()
	return res
}
