package shapebatch

import "github.com/chewxy/math32"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// Matrix is the convenient way to build a 2D camera; Mat4FromAffine lifts it
// into the 4x4 view matrix consumed by BeginTransform.
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Matrix {
	sin, cos := math32.Sincos(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// Mat4 is a 4x4 matrix stored column-major, the layout WGSL mat4x4<f32>
// uniforms expect. Element (row r, column c) lives at index c*4+r, so the
// translation of an affine transform occupies indices 12, 13 and 14.
//
// Mat4 transforms column vectors: v' = M * v.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul returns m * n. Applied to a vector, n acts first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Transform applies m to the homogeneous vector (x, y, z, w).
func (m Mat4) Transform(x, y, z, w float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w,
	}
}

// OrthographicOffCenter builds an orthographic projection mapping the box
// [left, right] x [bottom, top] x [-zNear, -zFar] to clip space with depth in
// [0, 1]. Passing top < bottom flips the Y axis, which is how screen-space
// projections with a top-left origin are built.
func OrthographicOffCenter(left, right, bottom, top, zNear, zFar float32) Mat4 {
	m := Identity4()
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = 1 / (zNear - zFar)
	m[12] = (left + right) / (left - right)
	m[13] = (top + bottom) / (bottom - top)
	m[14] = zNear / (zNear - zFar)
	return m
}

// Mat4FromAffine lifts a 2D affine Matrix into a Mat4 acting on the XY plane.
func Mat4FromAffine(a Matrix) Mat4 {
	m := Identity4()
	m[0], m[4], m[12] = a.A, a.B, a.C
	m[1], m[5], m[13] = a.D, a.E, a.F
	return m
}
