package shapebatch

import (
	"image"

	"github.com/chewxy/math32"
)

// Point represents a 2D point or vector in batch coordinates.
//
// Point is the single coordinate type accepted by the drawing methods.
// Integer points and rectangles from the image package convert at the
// boundary with PointFromImage and RectFromImage.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// PointFromImage converts an integer image.Point.
func PointFromImage(p image.Point) Point {
	return Point{X: float32(p.X), Y: float32(p.Y)}
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

// Perp returns the vector rotated by +90 degrees: (-Y, X).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Length returns the length of the vector.
func (p Point) Length() float32 {
	return math32.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float32 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromPoints creates a Rect from a position and a size vector.
func RectFromPoints(pos, size Point) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

// RectFromImage converts an integer image.Rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{
		X: float32(r.Min.X),
		Y: float32(r.Min.Y),
		W: float32(r.Dx()),
		H: float32(r.Dy()),
	}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H}
}
