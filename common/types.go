// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Transform is the value written onto a render node each tick.
// Rotation is always derived from Euler so the two never disagree.
type Transform struct {
	// Position is the node's translation in world space.
	Position mgl32.Vec3

	// Euler holds the source Euler angles (x, y, z) in radians.
	Euler mgl32.Vec3

	// Rotation is the quaternion equivalent of Euler.
	Rotation mgl32.Quat

	// Scale is the per-axis scale factor.
	Scale mgl32.Vec3
}

// IdentityTransform returns a transform at the origin with no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// NewRotationTransform returns a transform at the origin rotated by the given Euler angles.
//
// Parameters:
//   - x, y, z: rotation angles in radians
//
// Returns:
//   - Transform: the rotation-only transform
func NewRotationTransform(x, y, z float32) Transform {
	t := IdentityTransform()
	t.Euler = mgl32.Vec3{x, y, z}
	t.Rotation = EulerToQuat(x, y, z)
	return t
}

// Matrix builds the model matrix T * R * S (column-major).
//
// Returns:
//   - mgl32.Mat4: the model matrix
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// WithPosition returns a copy of t translated to p.
func (t Transform) WithPosition(p mgl32.Vec3) Transform {
	t.Position = p
	return t
}

// WithScale returns a copy of t with uniform scale s.
func (t Transform) WithScale(s float32) Transform {
	t.Scale = mgl32.Vec3{s, s, s}
	return t
}

// Ray is a half-line used for hit-testing. Direction is expected to be unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
