package picker

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Face is one of the six canonical viewing directions of the gizmo cube.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceLeft
	FaceRight
	FaceTop
	FaceBottom
)

// Faces lists every face in declaration order.
var Faces = [...]Face{FaceFront, FaceBack, FaceLeft, FaceRight, FaceTop, FaceBottom}

var faceNames = [...]string{"front", "back", "left", "right", "top", "bottom"}

// String returns the lower-case face name.
func (f Face) String() string {
	if f < FaceFront || f > FaceBottom {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= FaceFront && f <= FaceBottom
}

// Normal returns the outward unit normal of the face in gizmo-local space.
// Front faces +Z, Right faces +X and Top faces +Y.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case FaceBack:
		return mgl32.Vec3{0, 0, -1}
	case FaceLeft:
		return mgl32.Vec3{-1, 0, 0}
	case FaceRight:
		return mgl32.Vec3{1, 0, 0}
	case FaceTop:
		return mgl32.Vec3{0, 1, 0}
	case FaceBottom:
		return mgl32.Vec3{0, -1, 0}
	default:
		return mgl32.Vec3{0, 0, 1}
	}
}

// ParseFace converts a face name (case-insensitive) into a Face.
//
// Parameters:
//   - s: the face name, e.g. "top"
//
// Returns:
//   - Face: the parsed face
//   - error: an error if s names no face
func ParseFace(s string) (Face, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range faceNames {
		if n == name {
			return Face(i), nil
		}
	}
	return FaceFront, fmt.Errorf("unknown face %q", s)
}
