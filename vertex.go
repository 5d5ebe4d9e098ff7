package shapebatch

// Vertex is a position on the z=0 plane with a per-vertex color.
//
// Layout when uploaded:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 28 bytes per vertex.
type Vertex struct {
	Position [3]float32
	Color    RGBA
}

// VertexStride is the byte size of one uploaded Vertex.
const VertexStride = 28

// Index references a vertex slot. Three consecutive indices form one
// triangle.
type Index = uint16

// IndexSize is the byte size of one uploaded Index.
const IndexSize = 2

// vertexAt builds a Vertex on the z=0 plane.
func vertexAt(x, y float32, c RGBA) Vertex {
	return Vertex{Position: [3]float32{x, y, 0}, Color: c}
}

// Shape costs. Each returns the worst-case vertex and index counts a shape
// writes into the batch, which is what the capacity guard reserves.

// LineCost returns the cost of one thick line segment.
func LineCost() (vertices, indices int) { return 4, 6 }

// FilledRectCost returns the cost of one filled rectangle.
func FilledRectCost() (vertices, indices int) { return 4, 6 }

// FilledCircleCost returns the cost of a filled circle with n segments
// after clamping.
func FilledCircleCost(n int) (vertices, indices int) {
	n = clampSegments(n)
	return n + 2, 3 * n
}

// StrokedCircleCost returns the cost of a stroked circle with n segments
// after clamping.
func StrokedCircleCost(n int) (vertices, indices int) {
	n = clampSegments(n)
	return 2 * (n + 1), 6 * n
}

// FilledPolygonCost returns the cost of a filled convex polygon with k
// points. Polygons with fewer than three points cost nothing.
func FilledPolygonCost(k int) (vertices, indices int) {
	if k < 3 {
		return 0, 0
	}
	return k, 3 * (k - 2)
}
