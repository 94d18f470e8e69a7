package contour

// Point is a polygon vertex. Coordinates are pixel-corner positions, so a
// grid of width w yields x values in [0, w].
type Point struct {
	X int
	Y int
}

// Polygon is a closed ring of vertices wound clockwise in image coordinates
// (y grows downward). The closing edge from the last vertex back to the
// first is implicit.
type Polygon []Point

// Area returns the enclosed area computed with the shoelace formula. The
// result is the absolute value; degenerate polygons with fewer than three
// vertices have area zero.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}

	sum := 0
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	if sum < 0 {
		sum = -sum
	}

	return float64(sum) / 2
}

// BoundingBox returns the axis-aligned bounding box of the polygon's
// vertices as (x, y, width, height). A nil polygon yields all zeros.
func (p Polygon) BoundingBox() (x, y, w, h int) {
	if len(p) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY := p[0].X, p[0].Y
	maxX, maxY := p[0].X, p[0].Y
	for _, pt := range p[1:] {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}

	return minX, minY, maxX - minX, maxY - minY
}

// Flat returns the vertices as an interleaved x1, y1, x2, y2, ... sequence
// in absolute pixel coordinates.
func (p Polygon) Flat() []float64 {
	flat := make([]float64, 0, len(p)*2)
	for _, pt := range p {
		flat = append(flat, float64(pt.X), float64(pt.Y))
	}
	return flat
}

// NormalizedFlat returns the vertices as an interleaved sequence with x
// divided by width and y by height, so every value lies in [0, 1].
func (p Polygon) NormalizedFlat(width, height int) []float64 {
	flat := make([]float64, 0, len(p)*2)
	for _, pt := range p {
		flat = append(flat, float64(pt.X)/float64(width), float64(pt.Y)/float64(height))
	}
	return flat
}
