package node

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithEnabled sets whether the Node is drawn and hit-tested.
//
// Parameters:
//   - enabled: true to render the node, false to skip it
//
// Returns:
//   - NodeBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) NodeBuilderOption {
	return func(n *node) {
		n.enabled.Store(enabled)
	}
}

// WithLayer sets the viewport the Node is drawn in.
//
// Parameters:
//   - l: the layer
//
// Returns:
//   - NodeBuilderOption: functional option to set the layer
func WithLayer(l Layer) NodeBuilderOption {
	return func(n *node) {
		n.layer = l
	}
}

// WithModel sets the mesh drawn for the Node.
//
// Parameters:
//   - m: the mesh
//
// Returns:
//   - NodeBuilderOption: functional option to set the model
func WithModel(m model.Model) NodeBuilderOption {
	return func(n *node) {
		n.mdl = m
	}
}

// WithTransform sets the initial transform of the Node.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - NodeBuilderOption: functional option to set the transform
func WithTransform(t common.Transform) NodeBuilderOption {
	return func(n *node) {
		n.transform = t
	}
}

// WithCollider attaches a box collider with the given half extents.
//
// Parameters:
//   - halfExtents: half the box size along each local axis
//
// Returns:
//   - NodeBuilderOption: functional option to set the collider
func WithCollider(halfExtents mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.SetCollider(halfExtents)
	}
}
