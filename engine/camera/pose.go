package camera

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/orientation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/picker"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDistance is the canonical distance between the viewport camera and the scene origin.
const DefaultDistance float32 = 30

// CameraPose is a camera position and orientation in world space.
// The camera looks down its local -Z axis.
type CameraPose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// CanonicalPose returns the pose at (0, 0, distance) looking at the origin.
//
// Parameters:
//   - distance: the distance from the origin
//
// Returns:
//   - CameraPose: the canonical pose
func CanonicalPose(distance float32) CameraPose {
	return CameraPose{
		Position:    mgl32.Vec3{0, 0, distance},
		Orientation: mgl32.QuatIdent(),
	}
}

// OrbitPose returns the pose rotated by q around the origin at the given distance.
//
// Parameters:
//   - q: the camera orientation
//   - distance: the orbit distance
//
// Returns:
//   - CameraPose: a pose looking at the origin
func OrbitPose(q mgl32.Quat, distance float32) CameraPose {
	return CameraPose{
		Position:    q.Rotate(mgl32.Vec3{0, 0, distance}),
		Orientation: q,
	}
}

// Transform converts the pose into a unit-scale node transform.
func (p CameraPose) Transform() common.Transform {
	t := common.IdentityTransform()
	t.Position = p.Position
	t.Rotation = p.Orientation
	return t
}

// Strategy selects how a face selection is realized.
type Strategy int

const (
	// StrategyRotateScene keeps the camera at its canonical pose and animates the shared
	// orientation to the face rotation.
	StrategyRotateScene Strategy = iota

	// StrategyMoveCamera leaves the orientation untouched and orbits the camera to the face.
	StrategyMoveCamera
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyRotateScene:
		return "rotate-scene"
	case StrategyMoveCamera:
		return "move-camera"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration name into a Strategy.
//
// Parameters:
//   - s: "rotate-scene" or "move-camera"
//
// Returns:
//   - Strategy: the parsed strategy
//   - error: an error if s names no strategy
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rotate-scene", "rotate_scene", "scene":
		return StrategyRotateScene, nil
	case "move-camera", "move_camera", "camera":
		return StrategyMoveCamera, nil
	}
	return StrategyRotateScene, fmt.Errorf("unknown camera strategy %q", s)
}

// FaceRotation returns the scene rotation that presents face f to a camera on +Z.
//
//	Front  identity
//	Back   yaw π
//	Left   yaw +π/2
//	Right  yaw -π/2
//	Top    pitch +π/2
//	Bottom pitch -π/2
//
// Parameters:
//   - f: the face
//
// Returns:
//   - orientation.Orientation: the Euler rotation of the scene
func FaceRotation(f picker.Face) orientation.Orientation {
	switch f {
	case picker.FaceBack:
		return orientation.Orientation{Y: math32.Pi}
	case picker.FaceLeft:
		return orientation.Orientation{Y: math32.Pi / 2}
	case picker.FaceRight:
		return orientation.Orientation{Y: -math32.Pi / 2}
	case picker.FaceTop:
		return orientation.Orientation{X: math32.Pi / 2}
	case picker.FaceBottom:
		return orientation.Orientation{X: -math32.Pi / 2}
	default:
		return orientation.Orientation{}
	}
}

// FaceCameraPose returns the camera pose that views face f of a scene rotated by scene.
// The camera orientation is scene * FaceRotation(f)^-1 so that the view-relative rotation
// equals the rotate-scene result.
//
// Parameters:
//   - f: the face
//   - scene: the current scene rotation
//   - distance: the orbit distance
//
// Returns:
//   - CameraPose: the target pose
func FaceCameraPose(f picker.Face, scene mgl32.Quat, distance float32) CameraPose {
	q := scene.Mul(FaceRotation(f).Quat().Inverse()).Normalize()
	return OrbitPose(q, distance)
}
