package request

import (
	"fmt"
	"strings"

	"gridforge/pkg/engine/world"
)

const (
	// MaxDimension bounds width and height; larger values are clamped.
	MaxDimension = 256

	// SparseDensityLimit is the target/capacity ratio above which
	// sparse_islands is downgraded to clustered_islands. Tunable.
	SparseDensityLimit = 0.45

	MinRoomCount = 1
	MaxRoomCount = 32

	MaxCorridorWidth = 3

	DefaultPatternSpacing   = 4
	DefaultPatternLineWidth = 1
	DefaultPatternGapEvery  = 3
	DefaultPatternInset     = 1
)

type normalizer struct {
	errors   []Issue
	warnings []Issue
}

func (n *normalizer) fail(field, code, detail string) {
	n.errors = append(n.errors, Issue{Field: field, Code: code, Detail: detail})
}

func (n *normalizer) warn(field, code string, from, to any) {
	n.warnings = append(n.warnings, Issue{Field: field, Code: code, From: from, To: to})
}

// clamp returns v bounded to [lo, hi], warning when it had to move
func (n *normalizer) clamp(field string, v, lo, hi int) int {
	out := max(lo, min(v, hi))
	if out != v {
		n.warn(field, CodeClamped, v, out)
	}
	return out
}

// resolve applies def when raw is nil, otherwise clamps the supplied value
func (n *normalizer) resolve(field string, raw *int, def, lo, hi int) int {
	if raw == nil {
		return max(lo, min(def, hi))
	}
	return n.clamp(field, *raw, lo, hi)
}

func (n *normalizer) dimension(field string, raw *int) (int, bool) {
	if raw == nil {
		n.fail(field, CodeInvalidPositiveInt, "required")
		return 0, false
	}
	if *raw < 1 {
		n.fail(field, CodeInvalidPositiveInt, fmt.Sprintf("got %d", *raw))
		return 0, false
	}
	return n.clamp(field, *raw, 1, MaxDimension), true
}

// Normalize validates every field of raw independently, applies defaults and
// clamps. It never panics; problems are reported through Errors and Warnings.
func Normalize(raw Raw) Normalized {
	n := &normalizer{}
	req := Request{
		RequireConnectedPath: raw.RequireConnectedPath,
		Seed:                 raw.Seed,
		Traps:                []Trap{},
	}

	width, okW := n.dimension("width", raw.Width)
	height, okH := n.dimension("height", raw.Height)
	dimsOK := okW && okH
	req.Width, req.Height = width, height

	req.ShapeProfile = n.profile(raw.ShapeProfile)

	// Interior extents drive the shape defaults; a bad dimension still lets
	// the remaining fields validate against a 1x1 stand-in.
	iw, ih := 1, 1
	if dimsOK {
		iw, ih = width, height
		if width > 2 && height > 2 {
			iw, ih = width-2, height-2
		}
	}
	req.ShapeParams = n.shapeParams(raw.ShapeParams, iw, ih, max(width, height))
	req.SpawnPolicy = n.policy("spawnPolicy", raw.SpawnPolicy)
	req.ExitPolicy = n.policy("exitPolicy", raw.ExitPolicy)

	blocking := 0
	if dimsOK {
		req.Traps, blocking = n.traps(raw.Traps, world.NewMask(width, height))
	}

	if raw.WalkableTilesTarget != nil {
		target := *raw.WalkableTilesTarget
		if target < 1 {
			n.fail("walkableTilesTarget", CodeInvalidPositiveInt, fmt.Sprintf("got %d", target))
		} else if dimsOK {
			capacity := world.InteriorCapacity(width, height) - blocking
			if target > capacity {
				n.fail("walkableTilesTarget", CodeExceedsWalkableCapacity, fmt.Sprintf("capacity %d", capacity))
			} else {
				req.WalkableTilesTarget = &target
				if req.ShapeProfile == ProfileSparseIslands && float64(target) > SparseDensityLimit*float64(capacity) {
					n.warn("shapeProfile", CodeProfileDowngraded, string(ProfileSparseIslands), string(ProfileClusteredIslands))
					req.ShapeProfile = ProfileClusteredIslands
				}
			}
		}
	}

	if raw.ActorCount != nil {
		req.ActorCount = n.clamp("actorCount", *raw.ActorCount, 0, *raw.ActorCount)
	}

	return Normalized{Request: req, Errors: n.errors, Warnings: n.warnings}
}

func (n *normalizer) profile(s string) Profile {
	if s == "" {
		return ProfileRectangular
	}
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Profiles {
		if p == known {
			return p
		}
	}
	n.fail("shapeProfile", CodeInvalidProfile, fmt.Sprintf("unknown profile %q", s))
	return ProfileRectangular
}

func (n *normalizer) pattern(s string) PatternKind {
	switch k := PatternKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return PatternNone
	case PatternNone, PatternGrid, PatternDiagonal, PatternConcentric:
		return k
	}
	n.fail("shapeParams.pattern", CodeInvalidPattern, fmt.Sprintf("unknown pattern %q", s))
	return PatternNone
}

func (n *normalizer) shapeParams(raw RawShapeParams, iw, ih, longSide int) ShapeParams {
	const unbounded = int(^uint(0) >> 1)
	minSide := min(iw, ih)

	var p ShapeParams
	p.RoomCount = n.resolve("shapeParams.roomCount", raw.RoomCount,
		max(2, min(iw*ih/20, 12)), MinRoomCount, MaxRoomCount)

	minDefault := 3
	if minSide < 10 {
		minDefault = 2
	}
	p.RoomMinSize = n.resolve("shapeParams.roomMinSize", raw.RoomMinSize, minDefault, 2, unbounded)
	p.RoomMaxSize = n.resolve("shapeParams.roomMaxSize", raw.RoomMaxSize,
		max(p.RoomMinSize, min(minSide/2-1, 8)), p.RoomMinSize, unbounded)
	p.CorridorWidth = n.resolve("shapeParams.corridorWidth", raw.CorridorWidth, 1, 1, MaxCorridorWidth)

	p.Pattern = n.pattern(raw.Pattern)
	p.PatternSpacing = n.resolve("shapeParams.patternSpacing", raw.PatternSpacing,
		DefaultPatternSpacing, 2, max(2, longSide))
	p.PatternLineWidth = n.resolve("shapeParams.patternLineWidth", raw.PatternLineWidth,
		DefaultPatternLineWidth, 1, max(1, p.PatternSpacing-1))
	p.PatternGapEvery = n.resolve("shapeParams.patternGapEvery", raw.PatternGapEvery,
		DefaultPatternGapEvery, 1, unbounded)
	p.PatternInset = n.resolve("shapeParams.patternInset", raw.PatternInset,
		DefaultPatternInset, 0, unbounded)
	return p
}

func (n *normalizer) policy(field string, raw RawPolicy) Policy {
	var p Policy
	if raw.EdgeBias != nil {
		p.EdgeBias = *raw.EdgeBias
	}
	if raw.MinDistance != nil {
		p.MinDistance = n.clamp(field+".minDistance", *raw.MinDistance, 0, max(0, *raw.MinDistance))
	}
	return p
}

// traps keeps in-bounds, first-seen traps and counts the blocking ones
func (n *normalizer) traps(raw []Trap, m *world.Mask) ([]Trap, int) {
	seen := world.NewPointSet()
	kept := make([]Trap, 0, len(raw))
	blocking := 0
	for i, t := range raw {
		field := fmt.Sprintf("traps[%d]", i)
		p := world.Point{X: t.X, Y: t.Y}
		if !m.IsInterior(t.X, t.Y) {
			n.fail(field, CodeOutOfBounds, fmt.Sprintf("(%d,%d) outside interior", t.X, t.Y))
			continue
		}
		if seen.Has(p) {
			n.fail(field, CodeDuplicateTrap, fmt.Sprintf("(%d,%d) already trapped", t.X, t.Y))
			continue
		}
		seen.Put(p)
		kept = append(kept, t)
		if t.Blocking {
			blocking++
		}
	}
	return kept, blocking
}
