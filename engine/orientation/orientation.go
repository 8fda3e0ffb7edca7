// Package orientation holds the shared rotation applied in lockstep to the gizmo cube,
// the ground grid and any imported model of a sandbox view.
package orientation

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Axis selects one Euler component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Orientation is a 3-axis rotation expressed as Euler angles in radians.
// Angles accumulate without wrapping; Quat derives the rotation as Rx * Ry * Rz.
// Accumulated Euler angles are subject to gimbal lock near x = ±π/2.
type Orientation struct {
	X, Y, Z float32
}

// Quat returns the quaternion equivalent of o.
func (o Orientation) Quat() mgl32.Quat {
	return common.EulerToQuat(o.X, o.Y, o.Z)
}

// Vec3 returns the angles as a vector (x, y, z).
func (o Orientation) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{o.X, o.Y, o.Z}
}

// Axis returns the angle of a single component.
func (o Orientation) Axis(a Axis) float32 {
	switch a {
	case AxisX:
		return o.X
	case AxisY:
		return o.Y
	case AxisZ:
		return o.Z
	}
	return 0
}

// Transform returns the rotation-only transform written onto render nodes.
func (o Orientation) Transform() common.Transform {
	return common.NewRotationTransform(o.X, o.Y, o.Z)
}

// finite replaces any non-finite component with the matching component of prev.
func (o Orientation) finite(prev Orientation) Orientation {
	return Orientation{
		X: common.Sanitize(o.X, prev.X),
		Y: common.Sanitize(o.Y, prev.Y),
		Z: common.Sanitize(o.Z, prev.Z),
	}
}

// Listener is called synchronously with the new orientation after every change.
type Listener func(Orientation)

type subscription struct {
	id uint64
	fn Listener
}

type state struct {
	current  Orientation
	revision uint64

	nextID uint64
	subs   []subscription
}

// State is the observable orientation of one sandbox view.
// Every mutation is applied immediately and published to subscribers before the call
// returns; a mutation that leaves the value unchanged publishes nothing.
// State is owned by the UI thread and is not safe for concurrent use.
type State interface {
	// Get returns the current orientation.
	//
	// Returns:
	//   - Orientation: the current value
	Get() Orientation

	// Set replaces the orientation. Non-finite components keep their previous value.
	//
	// Parameters:
	//   - o: the new orientation
	Set(o Orientation)

	// ApplyDelta adds dx to the X angle and dy to the Y angle.
	// A zero (or non-finite) delta is a no-op.
	//
	// Parameters:
	//   - dx: pitch delta in radians
	//   - dy: yaw delta in radians
	ApplyDelta(dx, dy float32)

	// SetAxis sets one angle absolutely, used for face-aligned snaps.
	//
	// Parameters:
	//   - axis: the component to set
	//   - angle: the new angle in radians
	SetAxis(axis Axis, angle float32)

	// Quat returns the current orientation as a quaternion.
	//
	// Returns:
	//   - mgl32.Quat: the current rotation
	Quat() mgl32.Quat

	// Revision returns a counter incremented on every published change.
	//
	// Returns:
	//   - uint64: the change counter
	Revision() uint64

	// Subscribe registers a listener for changes.
	//
	// Parameters:
	//   - fn: called with the new value after each change
	//
	// Returns:
	//   - func(): removes the listener; safe to call more than once
	Subscribe(fn Listener) func()
}

var _ State = &state{}

// NewState creates an orientation state, at identity unless WithInitial is given.
//
// Parameters:
//   - options: functional options to configure the state
//
// Returns:
//   - State: the newly created state
func NewState(options ...StateBuilderOption) State {
	s := &state{}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *state) Get() Orientation {
	return s.current
}

func (s *state) Quat() mgl32.Quat {
	return s.current.Quat()
}

func (s *state) Revision() uint64 {
	return s.revision
}

func (s *state) Set(o Orientation) {
	s.publish(o.finite(s.current))
}

func (s *state) ApplyDelta(dx, dy float32) {
	if !common.Finite(dx) {
		dx = 0
	}
	if !common.Finite(dy) {
		dy = 0
	}
	if dx == 0 && dy == 0 {
		return
	}
	next := s.current
	next.X += dx
	next.Y += dy
	s.publish(next.finite(s.current))
}

func (s *state) SetAxis(axis Axis, angle float32) {
	if !common.Finite(angle) {
		return
	}
	next := s.current
	switch axis {
	case AxisX:
		next.X = angle
	case AxisY:
		next.Y = angle
	case AxisZ:
		next.Z = angle
	default:
		return
	}
	s.publish(next)
}

func (s *state) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// publish stores next and notifies subscribers when it differs from the current value.
func (s *state) publish(next Orientation) {
	if next == s.current {
		return
	}
	s.current = next
	s.revision++
	// Listeners may unsubscribe while being notified.
	subs := append([]subscription(nil), s.subs...)
	for _, sub := range subs {
		sub.fn(next)
	}
}
