package raster

// Grid is a binary occupancy grid: true cells are mask foreground.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return g.height
}

// At reports whether the cell at (x, y) is foreground. Coordinates outside
// the grid are background, which lets boundary walks run off the edges
// without special cases.
func (g *Grid) At(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return false
	}
	return g.cells[y*g.width+x]
}

// Set assigns the cell at (x, y). Out-of-bounds coordinates are ignored.
func (g *Grid) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = v
}

// Empty reports whether the grid has no foreground cells.
func (g *Grid) Empty() bool {
	for _, c := range g.cells {
		if c {
			return false
		}
	}
	return true
}

// Count returns the number of foreground cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}
