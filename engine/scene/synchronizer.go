package scene

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/orientation"
)

// DefaultGizmoDistance is the distance of the gizmo camera from the gizmo cube.
const DefaultGizmoDistance float32 = 5

// Frame summarizes what one Tick wrote.
type Frame struct {
	// Orientation is the single orientation read used for every rotating node.
	Orientation orientation.Orientation

	// Pose is the planner pose written to the viewport camera.
	Pose camera.CameraPose

	// NodesWritten counts the rotating nodes that were present and updated.
	NodesWritten int

	// CamerasWritten counts the cameras that were present and updated.
	CamerasWritten int
}

type synchronizer struct {
	scene         Scene
	state         orientation.State
	planner       camera.Planner
	rotating      []string
	viewCamera    string
	gizmoCamera   string
	gizmoDistance float32
}

// Synchronizer propagates the shared orientation and the planner pose onto the scene.
// It never mutates the orientation or the pose beyond advancing the planner.
type Synchronizer interface {
	// Tick advances the planner by dt, reads the orientation once and writes the same
	// transform to every rotating node, then places the cameras. Nodes and cameras that
	// are not registered are skipped for this tick.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - Frame: what was written
	Tick(dt float32) Frame

	// RotatingNodes returns the ids that follow the shared orientation.
	//
	// Returns:
	//   - []string: the node ids
	RotatingNodes() []string
}

var _ Synchronizer = &synchronizer{}

// NewSynchronizer creates a synchronizer for the given scene, orientation and planner.
// By default the gizmo, its edges, the grid and the imported model rotate, the viewport
// camera is CameraView and the gizmo camera is CameraGizmo.
//
// Parameters:
//   - s: the scene holding the nodes and cameras
//   - state: the shared orientation
//   - planner: the camera planner
//   - options: functional options to configure the synchronizer
//
// Returns:
//   - Synchronizer: the newly created synchronizer
func NewSynchronizer(s Scene, state orientation.State, planner camera.Planner, options ...SynchronizerBuilderOption) Synchronizer {
	sy := &synchronizer{
		scene:         s,
		state:         state,
		planner:       planner,
		rotating:      []string{NodeGizmo, NodeGizmoEdges, NodeGrid, NodeModel},
		viewCamera:    CameraView,
		gizmoCamera:   CameraGizmo,
		gizmoDistance: DefaultGizmoDistance,
	}
	for _, option := range options {
		option(sy)
	}
	return sy
}

func (sy *synchronizer) Tick(dt float32) Frame {
	var f Frame
	if sy.planner != nil {
		sy.planner.Update(dt)
		f.Pose = sy.planner.Pose()
	} else {
		f.Pose = camera.CanonicalPose(camera.DefaultDistance)
	}
	if sy.state != nil {
		f.Orientation = sy.state.Get()
	}
	if sy.scene == nil {
		return f
	}

	t := f.Orientation.Transform()
	for _, id := range sy.rotating {
		if n := sy.scene.Get(id); n != nil {
			n.SetTransform(t)
			f.NodesWritten++
		}
	}

	if c := sy.scene.Camera(sy.viewCamera); c != nil {
		c.SetPose(f.Pose)
		f.CamerasWritten++
	}
	// Keeps the gizmo camera looking along the viewport camera; a no-op under rotate-scene.
	if c := sy.scene.Camera(sy.gizmoCamera); c != nil {
		c.SetPose(camera.OrbitPose(f.Pose.Orientation, sy.gizmoDistance))
		f.CamerasWritten++
	}
	return f
}

func (sy *synchronizer) RotatingNodes() []string {
	return append([]string(nil), sy.rotating...)
}
