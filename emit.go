package shapebatch

import "github.com/chewxy/math32"

// degenerateLineEpsilon is the squared normal length below which a line is
// treated as zero-length and skipped.
const degenerateLineEpsilon = 1e-6

// The emitters below write one shape into the arena. Callers reserve the
// shape's cost first, so the emitters never check capacity themselves.
//
// Quads use the triangle pair (0,1,2), (1,3,2) relative to their first
// vertex, which keeps both halves on the same winding.

// lineNormal returns the half-thickness normal of segment a-b, or false if
// the segment is degenerate.
func lineNormal(a, b Point, thickness float32) (Point, bool) {
	n := b.Sub(a).Perp()
	if n.LengthSquared() < degenerateLineEpsilon {
		return Point{}, false
	}
	return n.Normalize().Mul(thickness * 0.5), true
}

// emitLine writes a thick segment as a quad: a-n, a+n, b-n, b+n.
func emitLine(ar *arena, a, b, n Point, c RGBA) {
	base := ar.base()
	ar.pushVertex(vertexAt(a.X-n.X, a.Y-n.Y, c))
	ar.pushVertex(vertexAt(a.X+n.X, a.Y+n.Y, c))
	ar.pushVertex(vertexAt(b.X-n.X, b.Y-n.Y, c))
	ar.pushVertex(vertexAt(b.X+n.X, b.Y+n.Y, c))
	ar.pushTriangle(base, base+1, base+2)
	ar.pushTriangle(base+1, base+3, base+2)
}

// emitFilledRect writes corners top-left, top-right, bottom-left,
// bottom-right as one quad.
func emitFilledRect(ar *arena, r Rect, c RGBA) {
	base := ar.base()
	ar.pushVertex(vertexAt(r.X, r.Y, c))
	ar.pushVertex(vertexAt(r.X+r.W, r.Y, c))
	ar.pushVertex(vertexAt(r.X, r.Y+r.H, c))
	ar.pushVertex(vertexAt(r.X+r.W, r.Y+r.H, c))
	ar.pushTriangle(base, base+1, base+2)
	ar.pushTriangle(base+1, base+3, base+2)
}

// strokedRectEdges returns the four centered edge segments of a stroked
// rectangle. The horizontal edges extend half the thickness past each
// corner so they cover the corners; the vertical edges are inset by the
// same amount so no area is drawn twice.
func strokedRectEdges(r Rect, thickness float32) [4][2]Point {
	h := thickness * 0.5
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H
	return [4][2]Point{
		{Pt(x0-h, y0), Pt(x1+h, y0)}, // top
		{Pt(x1, y0+h), Pt(x1, y1-h)}, // right
		{Pt(x0-h, y1), Pt(x1+h, y1)}, // bottom
		{Pt(x0, y0+h), Pt(x0, y1-h)}, // left
	}
}

// emitFilledCircle writes a triangle fan: the center, then segments+1
// perimeter vertices where the last one closes the fan on the first.
func emitFilledCircle(ar *arena, center Point, radius float32, segments int, c RGBA) {
	step := 2 * math32.Pi / float32(segments)
	base := ar.base()
	ar.pushVertex(vertexAt(center.X, center.Y, c))
	for i := 0; i <= segments; i++ {
		sin, cos := math32.Sincos(step * float32(i))
		ar.pushVertex(vertexAt(center.X+cos*radius, center.Y+sin*radius, c))
		if i < segments {
			ar.pushTriangle(base, base+i+1, base+i+2)
		}
	}
}

// emitStrokedCircle writes an annulus as interleaved outer/inner vertex
// pairs, one pair per step, joined by a quad to the previous pair.
func emitStrokedCircle(ar *arena, center Point, radius, thickness float32, segments int, c RGBA) {
	step := 2 * math32.Pi / float32(segments)
	outerR := radius + thickness*0.5
	innerR := radius - thickness*0.5
	for i := 0; i <= segments; i++ {
		sin, cos := math32.Sincos(step * float32(i))
		outer := ar.base()
		inner := outer + 1
		ar.pushVertex(vertexAt(center.X+cos*outerR, center.Y+sin*outerR, c))
		ar.pushVertex(vertexAt(center.X+cos*innerR, center.Y+sin*innerR, c))
		if i > 0 {
			prevOuter, prevInner := outer-2, inner-2
			ar.pushTriangle(prevOuter, prevInner, outer)
			ar.pushTriangle(prevInner, inner, outer)
		}
	}
}

// emitFilledPolygon writes the points in order and fans triangles from the
// first one. The polygon must be convex and have at least three points.
func emitFilledPolygon(ar *arena, points []Point, c RGBA) {
	base := ar.base()
	for i, p := range points {
		ar.pushVertex(vertexAt(p.X, p.Y, c))
		if i > 0 && i < len(points)-1 {
			ar.pushTriangle(base, base+i, base+i+1)
		}
	}
}
