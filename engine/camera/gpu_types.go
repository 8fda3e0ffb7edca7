package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUDrawUniformSource is the canonical WGSL definition of the DrawUniform struct.
// Matches GPUDrawUniform layout exactly (80 bytes).
//
//go:embed assets/draw_uniform.wgsl
var GPUDrawUniformSource string

// GPUDrawUniform is the per-draw uniform uploaded for every mesh in every viewport.
// Size: 80 bytes (WGSL aligned).
type GPUDrawUniform struct {
	MVP  [16]float32 // offset  0: projection * view * model (mat4x4<f32>)
	Tint [4]float32  // offset 64: color multiplier (vec4<f32>)
}

// NewDrawUniform builds the uniform for drawing a model matrix through camera c.
//
// Parameters:
//   - c: the camera the mesh is viewed through
//   - model: the mesh's model matrix
//   - tint: RGBA multiplier applied to vertex colors
//
// Returns:
//   - GPUDrawUniform: the uniform value
func NewDrawUniform(c Camera, model mgl32.Mat4, tint [4]float32) GPUDrawUniform {
	return GPUDrawUniform{
		MVP:  c.ViewProjectionMatrix().Mul4(model),
		Tint: tint,
	}
}

// Size returns the size of the GPUDrawUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUDrawUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUDrawUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.MVP[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Tint[i]))
	}
	return buf
}
