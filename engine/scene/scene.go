// Package scene keeps the named nodes and cameras of one sandbox view and synchronizes
// them with the shared orientation every tick.
package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/node"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/picker"
)

// Stable ids of the nodes and cameras a sandbox view is built from.
const (
	NodeGizmo      = "gizmo"
	NodeGizmoEdges = "gizmo.edges"
	NodeGrid       = "grid"
	NodeModel      = "model"

	CameraView  = "camera.view"
	CameraGizmo = "camera.gizmo"
)

// Scene is a registry of nodes and cameras keyed by stable id.
// Lookups are O(1) and return nil for ids that are not (yet) registered.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Count returns the number of registered nodes.
	//
	// Returns:
	//   - int: node count
	Count() int

	// Add registers n under its id, replacing any node with the same id.
	// Nodes keep their first registration order when replaced.
	//
	// Parameters:
	//   - n: the node to add
	Add(n node.Node)

	// Get retrieves a node by id.
	//
	// Parameters:
	//   - id: the node id
	//
	// Returns:
	//   - node.Node: the node or nil
	Get(id string) node.Node

	// Remove unregisters the node with the given id. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the node id
	Remove(id string)

	// Nodes returns all nodes in registration order.
	//
	// Returns:
	//   - []node.Node: the nodes
	Nodes() []node.Node

	// NodesIn returns the enabled nodes drawn in layer l, in registration order.
	//
	// Parameters:
	//   - l: the layer
	//
	// Returns:
	//   - []node.Node: the nodes
	NodesIn(l node.Layer) []node.Node

	// Collidables returns the nodes of layer l for hit-testing.
	//
	// Parameters:
	//   - l: the layer
	//
	// Returns:
	//   - []picker.Collidable: the candidate nodes
	Collidables(l node.Layer) []picker.Collidable

	// SetCamera registers a camera under id. A nil camera removes it.
	//
	// Parameters:
	//   - id: the camera id
	//   - c: the camera
	SetCamera(id string, c camera.Camera)

	// Camera retrieves a camera by id.
	//
	// Parameters:
	//   - id: the camera id
	//
	// Returns:
	//   - camera.Camera: the camera or nil
	Camera(id string) camera.Camera

	// Clear removes every node and camera.
	Clear()
}

type scene struct {
	mu *sync.RWMutex

	name    string
	nodes   map[string]node.Node
	order   []string
	cameras map[string]camera.Camera
}

var _ Scene = &scene{}

// NewScene creates an empty scene.
//
// Parameters:
//   - name: the scene identifier
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:      &sync.RWMutex{},
		name:    name,
		nodes:   make(map[string]node.Node),
		cameras: make(map[string]camera.Camera),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *scene) Add(n node.Node) {
	if n == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(n)
}

func (s *scene) add(n node.Node) {
	if _, ok := s.nodes[n.ID()]; !ok {
		s.order = append(s.order, n.ID())
	}
	s.nodes[n.ID()] = n
}

func (s *scene) Get(id string) node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes[id]
}

func (s *scene) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nodes[id]; !ok {
		return
	}
	delete(s.nodes, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *scene) Nodes() []node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]node.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

func (s *scene) NodesIn(l node.Layer) []node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []node.Node
	for _, id := range s.order {
		n := s.nodes[id]
		if n.Enabled() && n.Layer() == l {
			out = append(out, n)
		}
	}
	return out
}

func (s *scene) Collidables(l node.Layer) []picker.Collidable {
	nodes := s.NodesIn(l)
	out := make([]picker.Collidable, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

func (s *scene) SetCamera(id string, c camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		delete(s.cameras, id)
		return
	}
	s.cameras[id] = c
}

func (s *scene) Camera(id string) camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cameras[id]
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.nodes)
	clear(s.cameras)
	s.order = nil
}
