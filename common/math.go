package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis unit vectors used when composing rotations.
var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// Sanitize returns v when it is finite and fallback otherwise.
//
// Parameters:
//   - v: the candidate value
//   - fallback: the value returned when v is NaN or ±Inf
//
// Returns:
//   - float32: v or fallback
func Sanitize(v, fallback float32) float32 {
	if Finite(v) {
		return v
	}
	return fallback
}

// WrapAngle maps an angle in radians into the half-open range (-π, π].
//
// Parameters:
//   - a: angle in radians (any finite value)
//
// Returns:
//   - float32: the equivalent angle in (-π, π]
func WrapAngle(a float32) float32 {
	a = math32.Mod(a+math32.Pi, 2*math32.Pi)
	if a <= 0 {
		a += 2 * math32.Pi
	}
	return a - math32.Pi
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SmoothStep is the cubic ease-in/ease-out curve 3t²-2t³ evaluated on t clamped to [0, 1].
//
// Parameters:
//   - t: normalized time
//
// Returns:
//   - float32: eased progress in [0, 1]
func SmoothStep(t float32) float32 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// EulerToQuat converts Euler angles in radians to a unit quaternion.
// The composition is Rx(x) * Ry(y) * Rz(z): roll is applied first, then yaw, then pitch.
//
// Parameters:
//   - x, y, z: rotation angles around each axis in radians
//
// Returns:
//   - mgl32.Quat: the equivalent rotation
func EulerToQuat(x, y, z float32) mgl32.Quat {
	qx := mgl32.QuatRotate(x, AxisX)
	qy := mgl32.QuatRotate(y, AxisY)
	qz := mgl32.QuatRotate(z, AxisZ)
	return qx.Mul(qy).Mul(qz).Normalize()
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective creates a perspective projection matrix.
// Maps view-space depth to the WebGPU clip range [0, 1], unlike mgl32.Perspective
// which targets the OpenGL [-1, 1] range.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)
	var out mgl32.Mat4

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}
