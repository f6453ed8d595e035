// Package request turns a raw, possibly malformed layout request into the
// canonical form every generation stage consumes.
package request

import (
	"fmt"
)

// Profile selects the base mask generator
type Profile string

// Supported shape profiles
const (
	ProfileRectangular      Profile = "rectangular"
	ProfileRooms            Profile = "rooms"
	ProfileSparseIslands    Profile = "sparse_islands"
	ProfileClusteredIslands Profile = "clustered_islands"
)

// Profiles lists the accepted profiles in documentation order
var Profiles = []Profile{ProfileRectangular, ProfileRooms, ProfileSparseIslands, ProfileClusteredIslands}

// PatternKind selects the periodic overlay carved after the base mask
type PatternKind string

// Supported overlay patterns
const (
	PatternNone       PatternKind = "none"
	PatternGrid       PatternKind = "grid"
	PatternDiagonal   PatternKind = "diagonal"
	PatternConcentric PatternKind = "concentric"
)

// Issue codes. Errors make a request unusable; warnings record a clamp.
const (
	CodeInvalidPositiveInt        = "invalid_positive_int"
	CodeInvalidProfile            = "invalid_profile"
	CodeInvalidPattern            = "invalid_pattern"
	CodeExceedsWalkableCapacity   = "exceeds_walkable_capacity"
	CodeTargetMismatch            = "target_mismatch"
	CodeNoWalkableTiles           = "no_walkable_tiles"
	CodeInsufficientWalkableTiles = "insufficient_walkable_tiles"
	CodePathUnreachable           = "path_unreachable"
	CodeOutOfBounds               = "out_of_bounds"
	CodeDuplicateTrap             = "duplicate_trap"

	CodeClamped           = "clamped"
	CodeProfileDowngraded = "profile_downgraded"
)

// Issue is a structured error or warning tied to a request field
type Issue struct {
	Field  string `json:"field" yaml:"field"`
	Code   string `json:"code" yaml:"code"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	From   any    `json:"from,omitempty" yaml:"from,omitempty"`
	To     any    `json:"to,omitempty" yaml:"to,omitempty"`
}

// String renders the issue for logs and CLI output
func (i Issue) String() string {
	s := i.Field + ": " + i.Code
	if i.Detail != "" {
		s += " (" + i.Detail + ")"
	}
	if i.From != nil || i.To != nil {
		s += fmt.Sprintf(" [%v -> %v]", i.From, i.To)
	}
	return s
}

// HasCode reports whether any issue carries the given code
func HasCode(issues []Issue, code string) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

// Trap is a hazard requested at a fixed cell
type Trap struct {
	X               int                `json:"x" yaml:"x"`
	Y               int                `json:"y" yaml:"y"`
	Blocking        bool               `json:"blocking" yaml:"blocking"`
	AffinityTag     string             `json:"affinityTag,omitempty" yaml:"affinityTag,omitempty"`
	VitalsModifiers map[string]float64 `json:"vitalsModifiers,omitempty" yaml:"vitalsModifiers,omitempty"`
}

// RawPolicy is a spawn or exit policy as supplied by the caller
type RawPolicy struct {
	EdgeBias    *bool `json:"edgeBias,omitempty" yaml:"edgeBias,omitempty"`
	MinDistance *int  `json:"minDistance,omitempty" yaml:"minDistance,omitempty"`
}

// Policy constrains where spawn or exit may be placed
type Policy struct {
	EdgeBias    bool `json:"edgeBias"`
	MinDistance int  `json:"minDistance"`
}

// RawShapeParams are the optional profile tuning knobs as supplied
type RawShapeParams struct {
	RoomCount        *int   `json:"roomCount,omitempty" yaml:"roomCount,omitempty"`
	RoomMinSize      *int   `json:"roomMinSize,omitempty" yaml:"roomMinSize,omitempty"`
	RoomMaxSize      *int   `json:"roomMaxSize,omitempty" yaml:"roomMaxSize,omitempty"`
	CorridorWidth    *int   `json:"corridorWidth,omitempty" yaml:"corridorWidth,omitempty"`
	Pattern          string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	PatternSpacing   *int   `json:"patternSpacing,omitempty" yaml:"patternSpacing,omitempty"`
	PatternLineWidth *int   `json:"patternLineWidth,omitempty" yaml:"patternLineWidth,omitempty"`
	PatternGapEvery  *int   `json:"patternGapEvery,omitempty" yaml:"patternGapEvery,omitempty"`
	PatternInset     *int   `json:"patternInset,omitempty" yaml:"patternInset,omitempty"`
}

// ShapeParams are the resolved profile tuning knobs
type ShapeParams struct {
	RoomCount        int         `json:"roomCount"`
	RoomMinSize      int         `json:"roomMinSize"`
	RoomMaxSize      int         `json:"roomMaxSize"`
	CorridorWidth    int         `json:"corridorWidth"`
	Pattern          PatternKind `json:"pattern"`
	PatternSpacing   int         `json:"patternSpacing"`
	PatternLineWidth int         `json:"patternLineWidth"`
	PatternGapEvery  int         `json:"patternGapEvery"`
	PatternInset     int         `json:"patternInset"`
}

// Raw is a generation request exactly as an upstream caller supplied it.
// Pointer fields distinguish "omitted" from zero.
type Raw struct {
	Width                *int           `json:"width,omitempty" yaml:"width,omitempty"`
	Height               *int           `json:"height,omitempty" yaml:"height,omitempty"`
	ShapeProfile         string         `json:"shapeProfile,omitempty" yaml:"shapeProfile,omitempty"`
	ShapeParams          RawShapeParams `json:"shapeParams" yaml:"shapeParams"`
	SpawnPolicy          RawPolicy      `json:"spawnPolicy" yaml:"spawnPolicy"`
	ExitPolicy           RawPolicy      `json:"exitPolicy" yaml:"exitPolicy"`
	RequireConnectedPath bool           `json:"requireConnectedPath" yaml:"requireConnectedPath"`
	WalkableTilesTarget  *int           `json:"walkableTilesTarget,omitempty" yaml:"walkableTilesTarget,omitempty"`
	Seed                 int64          `json:"seed" yaml:"seed"`
	Traps                []Trap         `json:"traps,omitempty" yaml:"traps,omitempty"`
	ActorCount           *int           `json:"actorCount,omitempty" yaml:"actorCount,omitempty"`
}

// Request is the canonical, fully defaulted generation request
type Request struct {
	Width                int         `json:"width"`
	Height               int         `json:"height"`
	ShapeProfile         Profile     `json:"shapeProfile"`
	ShapeParams          ShapeParams `json:"shapeParams"`
	SpawnPolicy          Policy      `json:"spawnPolicy"`
	ExitPolicy           Policy      `json:"exitPolicy"`
	RequireConnectedPath bool        `json:"requireConnectedPath"`
	WalkableTilesTarget  *int        `json:"walkableTilesTarget,omitempty"`
	Seed                 int64       `json:"seed"`
	Traps                []Trap      `json:"traps"`
	ActorCount           int         `json:"actorCount"`
}

// Target returns the walkable tile target and whether one was requested
func (r *Request) Target() (int, bool) {
	if r.WalkableTilesTarget == nil {
		return 0, false
	}
	return *r.WalkableTilesTarget, true
}

// Normalized is the outcome of Normalize
type Normalized struct {
	Request  Request `json:"request"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// OK reports whether the request can be generated
func (n Normalized) OK() bool {
	return len(n.Errors) == 0
}

// Int returns a pointer to v; handy for building Raw literals
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}
