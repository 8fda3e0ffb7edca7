// Package node holds the renderable entities of a sandbox scene.
package node

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Layer selects the viewport a node is drawn in.
type Layer int

const (
	// LayerMain is drawn by the viewport camera.
	LayerMain Layer = iota

	// LayerGizmo is drawn by the gizmo camera in the gizmo inset.
	LayerGizmo
)

type node struct {
	id        string
	enabled   atomic.Bool
	layer     Layer
	mdl       model.Model
	transform common.Transform

	collider    mgl32.Vec3
	hasCollider bool
}

// Node defines the interface for a named scene entity.
// The owning view writes Transform once per tick; the renderer reads it when drawing.
type Node interface {
	// ID returns the node's stable identifier.
	//
	// Returns:
	//   - string: the node ID
	ID() string

	// Enabled returns whether this node is drawn and hit-tested.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Layer returns the viewport the node is drawn in.
	//
	// Returns:
	//   - Layer: the layer
	Layer() Layer

	// Model returns the mesh drawn for this node, or nil.
	//
	// Returns:
	//   - model.Model: the mesh or nil
	Model() model.Model

	// Transform returns the node's current transform.
	//
	// Returns:
	//   - common.Transform: the transform
	Transform() common.Transform

	// Collider returns the half extents of the node's box collider in local space.
	//
	// Returns:
	//   - mgl32.Vec3: the half extents
	//   - bool: false if the node has no collider
	Collider() (mgl32.Vec3, bool)

	// SetEnabled sets whether the node is drawn and hit-tested.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel replaces the mesh drawn for this node.
	//
	// Parameters:
	//   - m: the mesh
	SetModel(m model.Model)

	// SetTransform replaces the node's transform.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t common.Transform)

	// SetCollider attaches a box collider. A zero vector removes it.
	//
	// Parameters:
	//   - halfExtents: half the box size along each local axis
	SetCollider(halfExtents mgl32.Vec3)
}

var _ Node = &node{}

// NewNode creates an enabled node on the main layer with an identity transform.
//
// Parameters:
//   - id: the stable identifier
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(id string, options ...NodeBuilderOption) Node {
	n := &node{
		id:        id,
		transform: common.IdentityTransform(),
	}
	n.enabled.Store(true)
	for _, option := range options {
		option(n)
	}
	return n
}

func (n *node) ID() string {
	return n.id
}

func (n *node) Enabled() bool {
	return n.enabled.Load()
}

func (n *node) Layer() Layer {
	return n.layer
}

func (n *node) Model() model.Model {
	return n.mdl
}

func (n *node) Transform() common.Transform {
	return n.transform
}

func (n *node) Collider() (mgl32.Vec3, bool) {
	return n.collider, n.hasCollider
}

func (n *node) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

func (n *node) SetModel(m model.Model) {
	n.mdl = m
}

func (n *node) SetTransform(t common.Transform) {
	n.transform = t
}

func (n *node) SetCollider(halfExtents mgl32.Vec3) {
	n.collider = halfExtents
	n.hasCollider = halfExtents != mgl32.Vec3{}
}
