// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based layout.
package world

// Mask is a rectangular walkability grid stored row-major.
// Only interior cells can ever become walkable: when both dimensions exceed 2
// the outermost ring of cells is a permanently sealed border.
type Mask struct {
	width  int
	height int
	cells  []bool
}

// NewMask creates a fully blocked mask with the given dimensions
func NewMask(width, height int) *Mask {
	if width <= 0 || height <= 0 {
		panic("Mask dimensions must be positive")
	}
	return &Mask{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// InteriorCapacity returns how many cells of a width x height grid may be walkable
func InteriorCapacity(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	if width > 2 && height > 2 {
		return (width - 2) * (height - 2)
	}
	return width * height
}

// Width returns the number of columns in the mask
func (m *Mask) Width() int {
	return m.width
}

// Height returns the number of rows in the mask
func (m *Mask) Height() int {
	return m.height
}

// HasBorder reports whether the mask keeps a sealed 1-cell border
func (m *Mask) HasBorder() bool {
	return m.width > 2 && m.height > 2
}

// IsValidPosition checks if an x/y position is within mask bounds
func (m *Mask) IsValidPosition(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// IsInterior checks if a position may hold a walkable cell
func (m *Mask) IsInterior(x, y int) bool {
	if !m.HasBorder() {
		return m.IsValidPosition(x, y)
	}
	return x >= 1 && x < m.width-1 && y >= 1 && y < m.height-1
}

// InteriorBounds returns the inclusive corners of the interior rectangle
func (m *Mask) InteriorBounds() (x0, y0, x1, y1 int) {
	if !m.HasBorder() {
		return 0, 0, m.width - 1, m.height - 1
	}
	return 1, 1, m.width - 2, m.height - 2
}

// InteriorCapacity returns the number of interior cells
func (m *Mask) InteriorCapacity() int {
	return InteriorCapacity(m.width, m.height)
}

// Index returns the flat row-major index of a position
func (m *Mask) Index(x, y int) int {
	return y*m.width + x
}

// PointAt returns the position for a flat index
func (m *Mask) PointAt(idx int) Point {
	return Point{X: idx % m.width, Y: idx / m.width}
}

// Walkable returns true if the cell is walkable; out of bounds is never walkable
func (m *Mask) Walkable(x, y int) bool {
	if !m.IsValidPosition(x, y) {
		return false
	}
	return m.cells[y*m.width+x]
}

// WalkableAt is Walkable for a Point
func (m *Mask) WalkableAt(p Point) bool {
	return m.Walkable(p.X, p.Y)
}

// Set changes a cell. Returns false if the change was refused because the
// position is out of bounds or a walkable cell was requested on the border.
func (m *Mask) Set(x, y int, walkable bool) bool {
	if !m.IsValidPosition(x, y) {
		return false
	}
	if walkable && !m.IsInterior(x, y) {
		return false
	}
	m.cells[y*m.width+x] = walkable
	return true
}

// SetAt is Set for a Point
func (m *Mask) SetAt(p Point, walkable bool) bool {
	return m.Set(p.X, p.Y, walkable)
}

// FillInterior marks every interior cell walkable
func (m *Mask) FillInterior() {
	x0, y0, x1, y1 := m.InteriorBounds()
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.cells[y*m.width+x] = true
		}
	}
}

// Clear blocks every cell
func (m *Mask) Clear() {
	for i := range m.cells {
		m.cells[i] = false
	}
}

// Count returns the number of walkable cells
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask
func (m *Mask) Clone() *Mask {
	cells := make([]bool, len(m.cells))
	copy(cells, m.cells)
	return &Mask{width: m.width, height: m.height, cells: cells}
}

// Equal reports whether two masks have the same shape and cells
func (m *Mask) Equal(o *Mask) bool {
	if o == nil || m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// CenterPosition returns the x and y of the grid center
func (m *Mask) CenterPosition() (int, int) {
	return m.width / 2, m.height / 2
}

// EdgeDistance returns how many cells separate a position from the nearest
// interior edge (0 for cells on the outermost interior ring)
func (m *Mask) EdgeDistance(x, y int) int {
	x0, y0, x1, y1 := m.InteriorBounds()
	return min(x-x0, y-y0, x1-x, y1-y)
}

// WalkableNeighbors counts walkable 4-neighbours of a position
func (m *Mask) WalkableNeighbors(x, y int) int {
	n := 0
	for _, dir := range AllDirections() {
		dx, dy := dir.Delta()
		if m.Walkable(x+dx, y+dy) {
			n++
		}
	}
	return n
}

// ForEachCell iterates over all cells row-major, calling fn for each
func (m *Mask) ForEachCell(fn func(x, y int, walkable bool)) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			fn(x, y, m.cells[y*m.width+x])
		}
	}
}

// WalkablePoints returns every walkable cell in row-major order
func (m *Mask) WalkablePoints() []Point {
	var pts []Point
	m.ForEachCell(func(x, y int, walkable bool) {
		if walkable {
			pts = append(pts, Point{X: x, Y: y})
		}
	})
	return pts
}

// FirstWalkable returns the first walkable cell in row-major order
func (m *Mask) FirstWalkable() (Point, bool) {
	for i, c := range m.cells {
		if c {
			return m.PointAt(i), true
		}
	}
	return Point{}, false
}

// EnsureWalkable opens the first interior cell if the mask has no walkable
// cell at all. Returns true if a cell was opened.
func (m *Mask) EnsureWalkable() bool {
	if _, ok := m.FirstWalkable(); ok {
		return false
	}
	x0, y0, _, _ := m.InteriorBounds()
	return m.Set(x0, y0, true)
}

// Validate checks the mask for common issues and returns an error description or empty string if valid
func (m *Mask) Validate() string {
	if m.width <= 0 || m.height <= 0 {
		return "Mask has invalid dimensions"
	}
	if len(m.cells) != m.width*m.height {
		return "Mask storage does not match its dimensions"
	}
	for i, c := range m.cells {
		p := m.PointAt(i)
		if c && !m.IsInterior(p.X, p.Y) {
			return "Walkable cell on the sealed border"
		}
	}
	return ""
}
