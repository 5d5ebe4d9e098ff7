package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/shapebatch"
)

// appendVertices appends the little-endian GPU layout of vertices to buf.
func appendVertices(buf []byte, vertices []shapebatch.Vertex) []byte {
	for i := range vertices {
		v := &vertices[i]
		buf = appendFloat32(buf, v.Position[0])
		buf = appendFloat32(buf, v.Position[1])
		buf = appendFloat32(buf, v.Position[2])
		buf = appendFloat32(buf, v.Color.R)
		buf = appendFloat32(buf, v.Color.G)
		buf = appendFloat32(buf, v.Color.B)
		buf = appendFloat32(buf, v.Color.A)
	}
	return buf
}

// appendIndices appends uint16 indices to buf, padded with zeros to a
// multiple of four bytes as required by buffer writes.
func appendIndices(buf []byte, indices []shapebatch.Index) []byte {
	for _, idx := range indices {
		buf = binary.LittleEndian.AppendUint16(buf, idx)
	}
	if len(indices)%2 != 0 {
		buf = binary.LittleEndian.AppendUint16(buf, 0)
	}
	return buf
}

// appendUniforms appends the shader Uniforms struct to buf.
func appendUniforms(buf []byte, mvp shapebatch.Mat4, vertexColor, premultiply bool) []byte {
	for _, f := range mvp {
		buf = appendFloat32(buf, f)
	}
	buf = binary.LittleEndian.AppendUint32(buf, boolWord(vertexColor))
	buf = binary.LittleEndian.AppendUint32(buf, boolWord(premultiply))
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	return binary.LittleEndian.AppendUint32(buf, 0)
}

func appendFloat32(buf []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
