package shapebatch

// arena holds the fixed-capacity vertex and index buffers of a batch.
//
// Both slices are allocated once and reused across flushes. Only the
// prefixes [0, vertexCount) and [0, indexCount) are live; every live index
// is below vertexCount.
type arena struct {
	vertices    []Vertex
	indices     []Index
	vertexCount int
	indexCount  int
}

func newArena(maxVertices int) arena {
	return arena{
		vertices: make([]Vertex, maxVertices),
		indices:  make([]Index, 3*maxVertices),
	}
}

// oversized reports whether a shape of the given cost cannot fit even in an
// empty arena.
func (a *arena) oversized(v, i int) bool {
	return v > len(a.vertices) || i > len(a.indices)
}

// fits reports whether a shape of the given cost fits in the remaining space.
func (a *arena) fits(v, i int) bool {
	return a.vertexCount+v <= len(a.vertices) && a.indexCount+i <= len(a.indices)
}

func (a *arena) empty() bool {
	return a.vertexCount == 0 || a.indexCount == 0
}

// base returns the slot the next vertex will be written to.
func (a *arena) base() int {
	return a.vertexCount
}

func (a *arena) pushVertex(v Vertex) {
	a.vertices[a.vertexCount] = v
	a.vertexCount++
}

func (a *arena) pushTriangle(i0, i1, i2 int) {
	a.indices[a.indexCount] = Index(i0)
	a.indices[a.indexCount+1] = Index(i1)
	a.indices[a.indexCount+2] = Index(i2)
	a.indexCount += 3
}

func (a *arena) reset() {
	a.vertexCount = 0
	a.indexCount = 0
}
