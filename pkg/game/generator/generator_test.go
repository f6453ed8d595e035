// Package generator tests base mask generation: room placement, corridors,
// reachability, edge perturbation and island profiles.
package generator

import (
	"testing"

	"gridforge/pkg/engine/rng"
	"gridforge/pkg/engine/world"
	"gridforge/pkg/game/request"
)

// mustRequest normalizes raw and fails the test on any error.
func mustRequest(t *testing.T, raw request.Raw) *request.Request {
	t.Helper()
	n := request.Normalize(raw)
	if !n.OK() {
		t.Fatalf("Normalize() errors = %v", n.Errors)
	}
	return &n.Request
}

func TestFor(t *testing.T) {
	tests := []struct {
		profile request.Profile
		want    string
	}{
		{request.ProfileRectangular, "Rectangular"},
		{request.ProfileRooms, "Rooms"},
		{request.ProfileSparseIslands, "Sparse Islands"},
		{request.ProfileClusteredIslands, "Clustered Islands"},
		{"", "Rectangular"},
	}
	for _, tt := range tests {
		if got := For(tt.profile).Name(); got != tt.want {
			t.Errorf("For(%q).Name() = %q, want %q", tt.profile, got, tt.want)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	for _, profile := range request.Profiles {
		t.Run(string(profile), func(t *testing.T) {
			req := mustRequest(t, request.Raw{Width: request.Int(24), Height: request.Int(18), ShapeProfile: string(profile)})
			a := Generate(req, rng.New(42))
			b := Generate(req, rng.New(42))
			if !a.Mask.Equal(b.Mask) {
				t.Error("same seed produced different masks")
			}
			if len(a.Rooms) != len(b.Rooms) {
				t.Fatalf("room counts differ: %d vs %d", len(a.Rooms), len(b.Rooms))
			}
			for i := range a.Rooms {
				if a.Rooms[i] != b.Rooms[i] {
					t.Errorf("room %d differs: %+v vs %+v", i, a.Rooms[i], b.Rooms[i])
				}
			}
		})
	}
}

func TestGenerateSealsBorderAndHasFloor(t *testing.T) {
	for _, profile := range request.Profiles {
		for seed := int64(0); seed < 10; seed++ {
			req := mustRequest(t, request.Raw{Width: request.Int(16), Height: request.Int(12), ShapeProfile: string(profile)})
			res := Generate(req, rng.New(seed))
			if msg := res.Mask.Validate(); msg != "" {
				t.Errorf("%s seed %d: Validate() = %q", profile, seed, msg)
			}
			if res.Mask.Count() == 0 {
				t.Errorf("%s seed %d: no walkable cells", profile, seed)
			}
		}
	}
}

func TestRoomsGenerate_RoomsInsideAndApart(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		req := mustRequest(t, request.Raw{Width: request.Int(30), Height: request.Int(20), ShapeProfile: "rooms"})
		res := Rooms.Generate(req, rng.New(seed))
		if len(res.Rooms) == 0 {
			t.Fatalf("seed %d: no rooms placed", seed)
		}
		for i, a := range res.Rooms {
			if a.ID != i {
				t.Errorf("seed %d: room %d has ID %d", seed, i, a.ID)
			}
			if a.Width < req.ShapeParams.RoomMinSize || a.Width > req.ShapeParams.RoomMaxSize {
				t.Errorf("seed %d: room %d width %d outside [%d,%d]", seed, i, a.Width, req.ShapeParams.RoomMinSize, req.ShapeParams.RoomMaxSize)
			}
			for y := a.Y - 1; y <= a.Y+a.Height; y++ {
				for x := a.X - 1; x <= a.X+a.Width; x++ {
					if !res.Mask.IsInterior(x, y) {
						t.Errorf("seed %d: padded room %+v leaves the interior at (%d,%d)", seed, a, x, y)
					}
				}
			}
			for j := i + 1; j < len(res.Rooms); j++ {
				b := res.Rooms[j]
				if a.X-1 < b.X+b.Width && b.X < a.X+a.Width+1 && a.Y-1 < b.Y+b.Height && b.Y < a.Y+a.Height+1 {
					t.Errorf("seed %d: rooms %+v and %+v touch", seed, a, b)
				}
			}
		}
	}
}

func TestRoomsGenerate_SortedByCenter(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(40), Height: request.Int(24), ShapeProfile: "rooms"})
	res := Rooms.Generate(req, rng.New(9))
	for i := 1; i < len(res.Rooms); i++ {
		a, b := res.Rooms[i-1].Center(), res.Rooms[i].Center()
		if a.X > b.X || (a.X == b.X && a.Y > b.Y) {
			t.Errorf("rooms %d and %d out of centre order: %v then %v", i-1, i, a, b)
		}
	}
}

func TestRoomsGenerate_AllRoomsReachable(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		req := mustRequest(t, request.Raw{Width: request.Int(32), Height: request.Int(20), ShapeProfile: "rooms"})
		res := Rooms.Generate(req, rng.New(seed))
		field := world.BFS(res.Mask, []world.Point{res.Rooms[0].Center()}, nil, nil)
		for _, r := range res.Rooms {
			if !field.Reachable(r.Center()) {
				t.Errorf("seed %d: room %d at %v unreachable from room 0", seed, r.ID, r.Center())
			}
		}
	}
}

func TestRoomsGenerate_SmallGrid(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(10), Height: request.Int(10), ShapeProfile: "rooms", RequireConnectedPath: true, Seed: 1})
	res := Generate(req, rng.New(1))
	if len(res.Rooms) < 1 {
		t.Fatalf("len(Rooms) = %d, want >= 1", len(res.Rooms))
	}
	if comps := world.Components(res.Mask); len(comps) != 1 {
		t.Errorf("len(Components) = %d, want 1", len(comps))
	}
}

func TestRoomsGenerate_SweepFillsSlots(t *testing.T) {
	m := world.NewMask(12, 12)
	p := request.ShapeParams{RoomCount: 4, RoomMinSize: 2, RoomMaxSize: 2}
	rooms := sweepRooms(m, nil, p)
	if len(rooms) != 4 {
		t.Fatalf("sweepRooms() placed %d rooms, want 4", len(rooms))
	}
	want := []world.Point{{X: 2, Y: 2}, {X: 5, Y: 2}, {X: 8, Y: 2}, {X: 2, Y: 5}}
	for i, r := range rooms {
		if r.X != want[i].X || r.Y != want[i].Y {
			t.Errorf("room %d at (%d,%d), want (%d,%d)", i, r.X, r.Y, want[i].X, want[i].Y)
		}
	}
}

func TestRoomsGenerate_TinyInteriorFallsBack(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(4), Height: request.Int(4), ShapeProfile: "rooms"})
	res := Rooms.Generate(req, rng.New(0))
	if len(res.Rooms) != 0 {
		t.Errorf("len(Rooms) = %d, want 0", len(res.Rooms))
	}
	if got := res.Mask.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4 (filled interior)", got)
	}
}

func TestRepairReachability(t *testing.T) {
	m := world.NewMask(20, 10)
	rooms := []Room{{ID: 0, X: 2, Y: 2, Width: 3, Height: 3}, {ID: 1, X: 12, Y: 5, Width: 3, Height: 3}}
	for _, r := range rooms {
		carveRoom(m, r)
	}
	if got := RepairReachability(m, rooms, 1); got != 1 {
		t.Errorf("RepairReachability() = %d, want 1", got)
	}
	field := world.BFS(m, []world.Point{rooms[0].Center()}, nil, nil)
	if !field.Reachable(rooms[1].Center()) {
		t.Error("room 1 still unreachable after repair")
	}
	if got := RepairReachability(m, rooms, 1); got != 0 {
		t.Errorf("second RepairReachability() = %d, want 0", got)
	}
}

func TestRectangularGenerate_MostlySolid(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(30), Height: request.Int(30)})
	res := Rectangular.Generate(req, rng.New(3))
	capacity := res.Mask.InteriorCapacity()
	if got := res.Mask.Count(); got < capacity*3/4 || got > capacity {
		t.Errorf("Count() = %d, want within [%d, %d]", got, capacity*3/4, capacity)
	}
	// cells beyond the perturbation band are never touched
	x0, y0, _, _ := res.Mask.InteriorBounds()
	band := max(1, 28/6)
	if !res.Mask.Walkable(x0+band+2, y0+band+2) {
		t.Error("cell inside the band is blocked")
	}
}

func TestRectangularGenerate_ThinInteriorStaysSolid(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(20), Height: request.Int(4)})
	src := rng.New(1)
	res := Rectangular.Generate(req, src)
	if got, want := res.Mask.Count(), res.Mask.InteriorCapacity(); got != want {
		t.Errorf("Count() = %d, want %d", got, want)
	}
	if src.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0", src.Calls())
	}
}

func TestSparseIslandsGenerate_Clearance(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(40), Height: request.Int(30), ShapeProfile: "sparse_islands"})
	res := SparseIslands.Generate(req, rng.New(11))
	comps := world.Components(res.Mask)
	if len(comps) < 2 {
		t.Fatalf("len(Components) = %d, want >= 2", len(comps))
	}
	for _, c := range comps {
		if len(c) > 13 {
			t.Errorf("island of %d cells, want <= 13 (radius 2 diamond)", len(c))
		}
	}
}

func TestClusteredIslandsGenerate_HonoursTarget(t *testing.T) {
	req := mustRequest(t, request.Raw{Width: request.Int(20), Height: request.Int(20), ShapeProfile: "clustered_islands", WalkableTilesTarget: request.Int(60)})
	res := ClusteredIslands.Generate(req, rng.New(5))
	if got := res.Mask.Count(); got == 0 || got > 60 {
		t.Errorf("Count() = %d, want within [1, 60]", got)
	}
}

func TestRoomEdgeDistance(t *testing.T) {
	r := Room{X: 2, Y: 3, Width: 5, Height: 4}
	tests := []struct {
		p    world.Point
		want int
	}{
		{world.Point{X: 2, Y: 3}, 0},
		{world.Point{X: 4, Y: 4}, 1},
		{world.Point{X: 6, Y: 5}, 0},
		{world.Point{X: 4, Y: 5}, 1},
	}
	for _, tt := range tests {
		if got := r.EdgeDistance(tt.p); got != tt.want {
			t.Errorf("EdgeDistance(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
	if !r.Contains(world.Point{X: 6, Y: 6}) || r.Contains(world.Point{X: 7, Y: 6}) {
		t.Error("Contains() wrong at the room edge")
	}
}

func TestGenerateDegenerateSizes(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 3}, {1, 9}, {9, 2}}
	for _, profile := range request.Profiles {
		for _, size := range sizes {
			req := mustRequest(t, request.Raw{
				Width:                request.Int(size[0]),
				Height:               request.Int(size[1]),
				ShapeProfile:         string(profile),
				RequireConnectedPath: true,
			})
			res := Generate(req, rng.New(5))
			if msg := res.Mask.Validate(); msg != "" {
				t.Errorf("%s %dx%d: Validate() = %q", profile, size[0], size[1], msg)
			}
			if res.Mask.Count() == 0 {
				t.Errorf("%s %dx%d: no walkable cells", profile, size[0], size[1])
			}
		}
	}
}
