package geom

import "math"

// Point is a position in the play area's local coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the euclidean distance to another point.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Bounds is the measurable extent of the play area. A zero or negative
// dimension means the area has not been measured yet.
type Bounds struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Valid reports whether the bounds describe a usable play area.
func (b Bounds) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Inset shrinks the bounds by margin on every side. Collapses to zero
// rather than going negative.
func (b Bounds) Inset(margin float64) Bounds {
	w := b.W - 2*margin
	h := b.H - 2*margin
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Bounds{W: w, H: h}
}

// Contains reports whether a point lies inside the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}
