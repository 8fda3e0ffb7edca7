// Package picker classifies taps on the gizmo cube into one of its six faces.
package picker

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultThreshold is the minimum absolute normal component that identifies a face.
const DefaultThreshold float32 = 0.9

type picker struct {
	threshold float32
	fallback  Face
}

// Picker maps hit-test normals to faces. Every method is total: a normal that lies
// near an edge or corner resolves to the fallback face (Front unless configured).
type Picker interface {
	// Classify resolves a local-space unit normal into a face.
	// Axes are checked in the order ±X, ±Y, ±Z and the first component whose magnitude
	// exceeds the threshold wins.
	//
	// Parameters:
	//   - normal: the hit normal in gizmo-local space
	//
	// Returns:
	//   - Face: the classified face
	Classify(normal mgl32.Vec3) Face

	// PickFirst classifies the first hit whose node id matches gizmoID.
	//
	// Parameters:
	//   - hits: hit-test results ordered nearest first
	//   - gizmoID: the id of the gizmo node
	//
	// Returns:
	//   - Face: the classified face, or the fallback when nothing matched
	//   - bool: true if a gizmo hit was found
	PickFirst(hits []Hit, gizmoID string) (Face, bool)

	// Threshold returns the configured confidence threshold.
	//
	// Returns:
	//   - float32: the threshold
	Threshold() float32
}

var _ Picker = &picker{}

// NewPicker creates a face picker.
//
// Parameters:
//   - options: functional options to configure the picker
//
// Returns:
//   - Picker: the newly created picker
func NewPicker(options ...PickerBuilderOption) Picker {
	p := &picker{
		threshold: DefaultThreshold,
		fallback:  FaceFront,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// classifyOrder is the axis order Classify tests: ±X, ±Y, ±Z.
var classifyOrder = [...]Face{FaceRight, FaceLeft, FaceTop, FaceBottom, FaceFront, FaceBack}

func (p *picker) Classify(n mgl32.Vec3) Face {
	for _, f := range classifyOrder {
		if n.Dot(f.Normal()) > p.threshold {
			return f
		}
	}
	return p.fallback
}

func (p *picker) PickFirst(hits []Hit, gizmoID string) (Face, bool) {
	for _, h := range hits {
		if h.NodeID == gizmoID {
			return p.Classify(h.Normal), true
		}
	}
	return p.fallback, false
}

func (p *picker) Threshold() float32 {
	return p.threshold
}
