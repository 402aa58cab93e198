package painter

// Point represents a 2D point or vector in pixels.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Size is an integer extent in pixels.
type Size struct {
	W, H int
}

// Sz is a convenience function to create a Size.
func Sz(w, h int) Size {
	return Size{W: w, H: h}
}

// Point returns the size as a vector.
func (s Size) Point() Point {
	return Point{X: float32(s.W), Y: float32(s.H)}
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Frame addresses a cell in a sprite sheet grid, or a grid extent.
type Frame struct {
	X, Y int
}

// Flip selects mirroring per axis.
type Flip struct {
	X, Y bool
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	Pos  Point
	Size Point
}

// Contains reports whether q lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(q Point) bool {
	return q.X >= r.Pos.X && q.Y >= r.Pos.Y &&
		q.X < r.Pos.X+r.Size.X && q.Y < r.Pos.Y+r.Size.Y
}

// QuadUV is the unflipped texture mapping of a quad, listed for the
// top-left, top-right, bottom-right and bottom-left vertices.
var QuadUV = [4]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
