package world

// CarveHorizontal opens a horizontal corridor on row y between x0 and x1,
// `width` rows thick (extra rows go downwards). Cells outside the interior
// are skipped. Returns how many cells were newly opened.
func CarveHorizontal(m *Mask, y, x0, x1, width int) int {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	opened := 0
	for w := 0; w < max(width, 1); w++ {
		for x := x0; x <= x1; x++ {
			if !m.Walkable(x, y+w) && m.Set(x, y+w, true) {
				opened++
			}
		}
	}
	return opened
}

// CarveVertical opens a vertical corridor on column x between y0 and y1,
// `width` columns thick (extra columns go rightwards)
func CarveVertical(m *Mask, x, y0, y1, width int) int {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	opened := 0
	for w := 0; w < max(width, 1); w++ {
		for y := y0; y <= y1; y++ {
			if !m.Walkable(x+w, y) && m.Set(x+w, y, true) {
				opened++
			}
		}
	}
	return opened
}

// CarveL joins two points with an L-shaped corridor. With horizontalFirst the
// corner is at (to.X, from.Y), otherwise at (from.X, to.Y).
func CarveL(m *Mask, from, to Point, horizontalFirst bool, width int) int {
	if horizontalFirst {
		return CarveHorizontal(m, from.Y, from.X, to.X, width) +
			CarveVertical(m, to.X, from.Y, to.Y, width)
	}
	return CarveVertical(m, from.X, from.Y, to.Y, width) +
		CarveHorizontal(m, to.Y, from.X, to.X, width)
}
