// Package contour traces the external boundaries of foreground regions in a
// binary grid.
//
// Boundaries are walked along pixel edges with the foreground kept on the
// right-hand side, which produces clockwise rings in image coordinates
// (y grows downward). Components are 8-connected, holes are not reported,
// and vertices are emitted only where the boundary changes direction, so
// straight runs collapse to their endpoints. Given the same grid the output
// is identical on every run: components are discovered in row-major order
// of their topmost-leftmost pixel.
package contour

import "github.com/annolab/maskset/pkg/raster"

// Edge walk directions, clockwise starting from east.
const (
	dirRight = iota
	dirDown
	dirLeft
	dirUp
)

var dirDelta = [4]Point{
	dirRight: {1, 0},
	dirDown:  {0, 1},
	dirLeft:  {-1, 0},
	dirUp:    {0, -1},
}

// Trace finds the external boundary of every foreground component in the
// grid. An empty grid yields an empty list; a single foreground pixel
// yields a 4-vertex unit square.
func Trace(grid *raster.Grid) []Polygon {
	w, h := grid.Width(), grid.Height()
	visited := make([]bool, w*h)

	var polygons []Polygon
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !grid.At(x, y) || visited[y*w+x] {
				continue
			}
			polygons = append(polygons, followBoundary(grid, x, y))
			markComponent(grid, visited, x, y)
		}
	}

	return polygons
}

// followBoundary walks the outer boundary of the component whose
// topmost-leftmost pixel is (px, py), starting at that pixel's top-left
// corner. The walk keeps foreground on the right and prefers left turns,
// which carries it across corners where pixels touch only diagonally.
func followBoundary(grid *raster.Grid, px, py int) Polygon {
	start := Point{px, py}
	pos := start
	dir := dirUp // the closing edge arrives moving up, so the first step turns right

	var ring Polygon
	for {
		next := nextDir(grid, pos, dir)
		if next != dir {
			ring = append(ring, pos)
		}
		delta := dirDelta[next]
		pos = Point{pos.X + delta.X, pos.Y + delta.Y}
		dir = next
		if pos == start {
			break
		}
	}

	return ring
}

// nextDir picks the direction of the next boundary edge out of corner pos.
// Candidates are tried left turn first, then straight, then right turn; an
// edge qualifies when the pixel on its right is foreground and the pixel on
// its left is background.
func nextDir(grid *raster.Grid, pos Point, dir int) int {
	for _, turn := range [4]int{3, 0, 1, 2} {
		d := (dir + turn) % 4
		right, left := flanking(pos, d)
		if grid.At(right.X, right.Y) && !grid.At(left.X, left.Y) {
			return d
		}
	}
	// Unreachable on a well-formed boundary; stand still rather than loop.
	return dir
}

// flanking returns the pixels on the right and left of the edge leaving pos
// in direction d.
func flanking(pos Point, d int) (right, left Point) {
	switch d {
	case dirRight:
		return Point{pos.X, pos.Y}, Point{pos.X, pos.Y - 1}
	case dirDown:
		return Point{pos.X - 1, pos.Y}, Point{pos.X, pos.Y}
	case dirLeft:
		return Point{pos.X - 1, pos.Y - 1}, Point{pos.X - 1, pos.Y}
	default: // dirUp
		return Point{pos.X, pos.Y - 1}, Point{pos.X - 1, pos.Y - 1}
	}
}

// markComponent flood-fills the 8-connected component containing (px, py)
// into visited so later scan positions do not re-trace it.
func markComponent(grid *raster.Grid, visited []bool, px, py int) {
	w := grid.Width()
	stack := []Point{{px, py}}
	visited[py*w+px] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if !grid.At(nx, ny) || visited[ny*w+nx] {
					continue
				}
				visited[ny*w+nx] = true
				stack = append(stack, Point{nx, ny})
			}
		}
	}
}
