package scene

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/node"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithNodes adds initial nodes to the scene.
//
// Parameters:
//   - nodes: the nodes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...node.Node) SceneBuilderOption {
	return func(s *scene) {
		for _, n := range nodes {
			if n != nil {
				s.add(n)
			}
		}
	}
}

// WithCamera registers an initial camera.
//
// Parameters:
//   - id: the camera id
//   - c: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(id string, c camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		if c != nil {
			s.cameras[id] = c
		}
	}
}
