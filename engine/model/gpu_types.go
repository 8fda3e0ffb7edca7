package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertex layout exactly (28 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertexStride is the size in bytes of one GPUVertex in a vertex buffer.
const GPUVertexStride = 28

// GPUVertex is the GPU-aligned representation of a single colored vertex.
// Size: 28 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Color    [4]float32 // offset 12: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 28-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexStride)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}

// MarshalVertices packs vertices back to back.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * GPUVertexStride bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*GPUVertexStride)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices packs uint32 indices little-endian.
//
// Parameters:
//   - indices: the indices to pack
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
