package camera

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
)

type CameraBuilderOption func(*cameraImpl)

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if common.Finite(fov) && fov > 0 {
			c.fov = fov
		}
	}
}

// WithFovLimits sets the range that SetFov and Magnify clamp the field of view to.
// Limits with lo > hi or outside (0, π) are ignored.
//
// Parameters:
//   - lo, hi: limits in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the limits
func WithFovLimits(lo, hi float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if lo > 0 && hi < math32.Pi && lo <= hi {
			c.minFov, c.maxFov = lo, hi
		}
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithPose sets the initial camera pose.
//
// Parameters:
//   - pose: the initial pose
//
// Returns:
//   - CameraBuilderOption: functional option to set the pose
func WithPose(pose CameraPose) CameraBuilderOption {
	return func(c *cameraImpl) {
		if finitePose(pose) {
			c.pose = pose
		}
	}
}
