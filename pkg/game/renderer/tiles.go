package renderer

import "fmt"

// Tile characters. Downstream consumers parse these verbatim.
const (
	CharWall    = '#'
	CharFloor   = '.'
	CharSpawn   = 'S'
	CharExit    = 'E'
	CharBarrier = 'B'
)

// TileKind is the physics class of a cell
type TileKind int

// Tile kinds; the integer values are the wire codes
const (
	KindOpen TileKind = iota
	KindBlocked
	KindHazard
)

var kindNames = map[TileKind]string{
	KindOpen:    "open",
	KindBlocked: "blocked",
	KindHazard:  "hazard",
}

// String returns the string representation of a tile kind
func (k TileKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TileKind(%d)", int(k))
}

// Code returns the integer written to the kinds grid
func (k TileKind) Code() int {
	return int(k)
}

// IsWalkable reports whether actors may stand on the kind
func (k TileKind) IsWalkable() bool {
	return k == KindOpen || k == KindHazard
}

// KindFromCode maps a wire code back to a TileKind
func KindFromCode(code int) (TileKind, error) {
	k := TileKind(code)
	if _, ok := kindNames[k]; !ok {
		return KindBlocked, fmt.Errorf("unknown tile kind code %d", code)
	}
	return k, nil
}

// Tile is one rendered cell: its character and kind
type Tile struct {
	Char rune
	Kind TileKind
}

// Fixed tiles for every cell class
var (
	TileWall    = Tile{CharWall, KindBlocked}
	TileFloor   = Tile{CharFloor, KindOpen}
	TileHazard  = Tile{CharFloor, KindHazard}
	TileSpawn   = Tile{CharSpawn, KindOpen}
	TileExit    = Tile{CharExit, KindOpen}
	TileBarrier = Tile{CharBarrier, KindBlocked}
)
