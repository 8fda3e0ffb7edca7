package scene

// SynchronizerBuilderOption is a functional option for configuring a Synchronizer.
type SynchronizerBuilderOption func(*synchronizer)

// WithRotatingNodes replaces the ids of the nodes that follow the shared orientation.
//
// Parameters:
//   - ids: the node ids
//
// Returns:
//   - SynchronizerBuilderOption: option function to apply
func WithRotatingNodes(ids ...string) SynchronizerBuilderOption {
	return func(sy *synchronizer) {
		sy.rotating = append([]string(nil), ids...)
	}
}

// WithViewCamera sets the id of the camera that receives the planner pose.
//
// Parameters:
//   - id: the camera id
//
// Returns:
//   - SynchronizerBuilderOption: option function to apply
func WithViewCamera(id string) SynchronizerBuilderOption {
	return func(sy *synchronizer) {
		sy.viewCamera = id
	}
}

// WithGizmoCamera sets the id and orbit distance of the gizmo camera.
//
// Parameters:
//   - id: the camera id
//   - distance: the distance from the gizmo cube
//
// Returns:
//   - SynchronizerBuilderOption: option function to apply
func WithGizmoCamera(id string, distance float32) SynchronizerBuilderOption {
	return func(sy *synchronizer) {
		sy.gizmoCamera = id
		if distance > 0 {
			sy.gizmoDistance = distance
		}
	}
}
