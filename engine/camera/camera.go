package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	minFov float32
	maxFov float32
	aspect float32
	near   float32
	far    float32

	pose CameraPose

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for a perspective camera placed by a CameraPose.
// Matrices are recomputed whenever a setter changes the pose or projection parameters.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// FovLimits returns the range Magnify clamps the field of view to.
	//
	// Returns:
	//   - lo, hi: the limits in radians
	FovLimits() (lo, hi float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Pose returns the current camera pose.
	//
	// Returns:
	//   - CameraPose: position and orientation
	Pose() CameraPose

	// ViewMatrix returns the current view matrix (column-major).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix (column-major, [0, 1] depth).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// SetPose places the camera. Non-finite poses are ignored.
	//
	// Parameters:
	//   - pose: the new pose
	SetPose(pose CameraPose)

	// SetFov sets the field of view in radians, clamped to the fov limits.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Magnify scales the field of view by (1 - m), clamped to the fov limits.
	// Positive m zooms in. Zero and non-finite amounts are ignored.
	//
	// Parameters:
	//   - m: the magnification delta
	//
	// Returns:
	//   - bool: true if the field of view changed
	Magnify(m float32) bool

	// Ray returns the world-space ray through pixel (px, py) of a viewport of the given size.
	// The pixel origin is the top-left corner.
	//
	// Parameters:
	//   - px, py: pixel coordinates inside the viewport
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - common.Ray: a ray from the camera position with unit direction
	Ray(px, py, width, height float32) common.Ray
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the canonical pose with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    mgl32.DegToRad(60),
		minFov: mgl32.DegToRad(5),
		maxFov: mgl32.DegToRad(120),
		aspect: 1.0,
		near:   0.1,
		far:    1000.0,
		pose:   CanonicalPose(DefaultDistance),
	}
	for _, option := range options {
		option(c)
	}
	c.fov = common.Clamp(c.fov, c.minFov, c.maxFov)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) FovLimits() (lo, hi float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minFov, c.maxFov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Pose() CameraPose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPose(pose CameraPose) {
	if !finitePose(pose) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pose = pose
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	if !common.Finite(fov) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = common.Clamp(fov, c.minFov, c.maxFov)
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if !common.Finite(aspect) || aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Magnify(m float32) bool {
	if m == 0 || !common.Finite(m) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := common.Clamp(c.fov*(1-m), c.minFov, c.maxFov)
	if next == c.fov {
		return false
	}
	c.fov = next
	c.updateMatrices()
	return true
}

func (c *cameraImpl) Ray(px, py, width, height float32) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()

	aspect := c.aspect
	if width > 0 && height > 0 {
		aspect = width / height
	} else {
		width, height = 1, 1
	}
	ndcX := 2*px/width - 1
	ndcY := 1 - 2*py/height
	tanHalf := math32.Tan(c.fov / 2)
	local := mgl32.Vec3{ndcX * tanHalf * aspect, ndcY * tanHalf, -1}

	return common.Ray{
		Origin:    c.pose.Position,
		Direction: c.pose.Orientation.Rotate(local).Normalize(),
	}
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	p := c.pose.Position
	c.viewMatrix = c.pose.Orientation.Inverse().Mat4().Mul4(mgl32.Translate3D(-p.X(), -p.Y(), -p.Z()))
	c.projectionMatrix = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func finitePose(p CameraPose) bool {
	for _, v := range p.Position {
		if !common.Finite(v) {
			return false
		}
	}
	q := p.Orientation
	if !common.Finite(q.W) {
		return false
	}
	for _, v := range q.V {
		if !common.Finite(v) {
			return false
		}
	}
	return q.Len() > 0
}
