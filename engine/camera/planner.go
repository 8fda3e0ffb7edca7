package camera

import (
	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/orientation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDuration is the face transition length in seconds.
const DefaultDuration float32 = 1.0

// Easing maps normalized time in [0, 1] to eased progress in [0, 1].
type Easing func(t float32) float32

type plannerImpl struct {
	state    orientation.State
	strategy Strategy
	distance float32
	duration float32
	easing   Easing

	pose CameraPose

	active  bool
	face    picker.Face
	hasFace bool
	elapsed float32

	fromEuler, toEuler, finalEuler orientation.Orientation
	fromPose, toPose               CameraPose
}

// Planner turns face selections into animated transitions.
// Under StrategyRotateScene the camera stays at its canonical pose and the planner animates
// the shared orientation; under StrategyMoveCamera the orientation is left alone and the
// camera pose orbits the origin. A planner never does both for the same selection.
type Planner interface {
	// Select starts a transition toward face f from the current (possibly mid-transition) state.
	//
	// Parameters:
	//   - f: the face to present
	Select(f picker.Face)

	// Update advances a running transition by dt seconds. The last step lands exactly on the
	// target.
	//
	// Parameters:
	//   - dt: elapsed time in seconds; negative and non-finite values count as zero
	//
	// Returns:
	//   - bool: true if the orientation or pose was written
	Update(dt float32) bool

	// Cancel stops a running transition where it is.
	Cancel()

	// Pose returns the current camera pose.
	//
	// Returns:
	//   - CameraPose: the pose to apply to the viewport camera
	Pose() CameraPose

	// Target returns the pose the camera ends at when the running transition completes.
	//
	// Returns:
	//   - CameraPose: the target pose
	Target() CameraPose

	// Face returns the most recently selected face.
	//
	// Returns:
	//   - picker.Face: the face
	//   - bool: false if no face has been selected since construction
	Face() (picker.Face, bool)

	// Transitioning reports whether a transition is running.
	//
	// Returns:
	//   - bool: true while animating
	Transitioning() bool

	// Progress returns the normalized time of the running transition, or 1 when idle.
	//
	// Returns:
	//   - float32: progress in [0, 1]
	Progress() float32

	// Strategy returns the configured strategy.
	//
	// Returns:
	//   - Strategy: the strategy
	Strategy() Strategy

	// SetStrategy switches strategy. A running transition is cancelled and the camera
	// returns to its canonical pose; the orientation is kept.
	//
	// Parameters:
	//   - s: the new strategy
	SetStrategy(s Strategy)

	// Distance returns the camera distance from the origin.
	//
	// Returns:
	//   - float32: the distance
	Distance() float32
}

var _ Planner = &plannerImpl{}

// NewPlanner creates a planner driving the given orientation state.
//
// Parameters:
//   - state: the shared orientation animated under StrategyRotateScene
//   - options: functional options to configure the planner
//
// Returns:
//   - Planner: the newly created planner
func NewPlanner(state orientation.State, options ...PlannerBuilderOption) Planner {
	p := &plannerImpl{
		state:    state,
		strategy: StrategyRotateScene,
		distance: DefaultDistance,
		duration: DefaultDuration,
		easing:   common.SmoothStep,
	}
	for _, option := range options {
		option(p)
	}
	p.pose = CanonicalPose(p.distance)
	p.toPose = p.pose
	return p
}

func (p *plannerImpl) Select(f picker.Face) {
	if !f.Valid() {
		f = picker.FaceFront
	}
	p.face, p.hasFace = f, true
	p.elapsed = 0
	p.active = true

	switch p.strategy {
	case StrategyMoveCamera:
		p.fromPose = p.pose
		p.toPose = FaceCameraPose(f, p.state.Quat(), p.distance)
	default:
		from := p.state.Get()
		final := FaceRotation(f)
		p.fromEuler = from
		p.finalEuler = final
		p.toEuler = orientation.Orientation{
			X: from.X + common.WrapAngle(final.X-from.X),
			Y: from.Y + common.WrapAngle(final.Y-from.Y),
			Z: from.Z + common.WrapAngle(final.Z-from.Z),
		}
	}
}

func (p *plannerImpl) Update(dt float32) bool {
	if !p.active {
		return false
	}
	if common.Finite(dt) && dt > 0 {
		p.elapsed += dt
	}
	t := float32(1)
	if p.duration > 0 {
		t = p.elapsed / p.duration
	}
	if t >= 1 {
		p.finish()
		return true
	}
	s := p.easing(common.Clamp(t, 0, 1))

	switch p.strategy {
	case StrategyMoveCamera:
		q := mgl32.QuatSlerp(p.fromPose.Orientation, p.toPose.Orientation, s).Normalize()
		p.pose = OrbitPose(q, p.distance)
	default:
		p.state.Set(orientation.Orientation{
			X: lerp(p.fromEuler.X, p.toEuler.X, s),
			Y: lerp(p.fromEuler.Y, p.toEuler.Y, s),
			Z: lerp(p.fromEuler.Z, p.toEuler.Z, s),
		})
	}
	return true
}

// finish lands on the canonical target so repeated selections of one face never drift.
func (p *plannerImpl) finish() {
	p.active = false
	p.elapsed = p.duration
	switch p.strategy {
	case StrategyMoveCamera:
		p.pose = p.toPose
	default:
		p.state.Set(p.finalEuler)
	}
}

func (p *plannerImpl) Cancel() {
	if !p.active {
		return
	}
	p.active = false
	p.toPose = p.pose
}

func (p *plannerImpl) Pose() CameraPose {
	return p.pose
}

func (p *plannerImpl) Target() CameraPose {
	return p.toPose
}

func (p *plannerImpl) Face() (picker.Face, bool) {
	return p.face, p.hasFace
}

func (p *plannerImpl) Transitioning() bool {
	return p.active
}

func (p *plannerImpl) Progress() float32 {
	if !p.active || p.duration <= 0 {
		return 1
	}
	return common.Clamp(p.elapsed/p.duration, 0, 1)
}

func (p *plannerImpl) Strategy() Strategy {
	return p.strategy
}

func (p *plannerImpl) SetStrategy(s Strategy) {
	if s == p.strategy {
		return
	}
	p.active = false
	p.strategy = s
	p.pose = CanonicalPose(p.distance)
	p.toPose = p.pose
}

func (p *plannerImpl) Distance() float32 {
	return p.distance
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
