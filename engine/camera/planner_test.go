package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/orientation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/picker"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(p Planner, steps int, dt float32) {
	for i := 0; i < steps; i++ {
		p.Update(dt)
	}
}

func TestFaceRotationPresentsFaceToCamera(t *testing.T) {
	for _, f := range picker.Faces {
		t.Run(f.String(), func(t *testing.T) {
			n := FaceRotation(f).Quat().Rotate(f.Normal())
			assert.Less(t, n.Sub(mgl32.Vec3{0, 0, 1}).Len(), float32(1e-5), "face normal ends at %v", n)
		})
	}
}

func TestRotateSceneEasesAndLandsOnTarget(t *testing.T) {
	s := orientation.NewState()
	p := NewPlanner(s)

	p.Select(picker.FaceTop)
	require.True(t, p.Transitioning())

	assert.True(t, p.Update(0.5))
	assert.InDelta(t, math32.Pi/4, s.Get().X, 1e-5)
	assert.InDelta(t, 0.5, p.Progress(), 1e-6)

	assert.True(t, p.Update(0.5))
	assert.Equal(t, FaceRotation(picker.FaceTop), s.Get())
	assert.False(t, p.Transitioning())
	assert.False(t, p.Update(0.1))

	assert.Equal(t, CanonicalPose(DefaultDistance), p.Pose(), "camera never moves under rotate-scene")
	face, ok := p.Face()
	assert.True(t, ok)
	assert.Equal(t, picker.FaceTop, face)
}

func TestRotateSceneSmoothStepIsEased(t *testing.T) {
	s := orientation.NewState()
	p := NewPlanner(s, WithDuration(1))
	p.Select(picker.FaceLeft)
	p.Update(0.25)
	// smoothstep(0.25) = 0.15625
	assert.InDelta(t, 0.15625*math32.Pi/2, s.Get().Y, 1e-5)
}

func TestSelectSameFaceTwiceIsIdempotent(t *testing.T) {
	s := orientation.NewState(orientation.WithInitial(orientation.Orientation{X: 0.3, Y: -2}))
	p := NewPlanner(s)

	p.Select(picker.FaceRight)
	run(p, 40, 1.0/30)
	first := s.Get()
	rev := s.Revision()

	p.Select(picker.FaceRight)
	run(p, 40, 1.0/30)
	assert.Equal(t, first, s.Get())
	assert.Equal(t, rev, s.Revision(), "second selection must not publish")
	assert.False(t, p.Transitioning())
}

func TestInterruptedTransitionEndsOnNewTarget(t *testing.T) {
	s := orientation.NewState()
	p := NewPlanner(s)

	p.Select(picker.FaceTop)
	p.Update(0.3)
	mid := s.Get()
	require.NotEqual(t, orientation.Orientation{}, mid)

	p.Select(picker.FaceLeft)
	assert.InDelta(t, 0, p.Progress(), 1e-6)
	p.Update(0.5)
	assert.Greater(t, s.Get().X, float32(0), "restarts from the mid-transition state")
	p.Update(0.5)
	assert.Equal(t, FaceRotation(picker.FaceLeft), s.Get())
}

func TestRotateSceneTakesShortestPath(t *testing.T) {
	s := orientation.NewState(orientation.WithInitial(orientation.Orientation{Y: 3 * math32.Pi / 2}))
	p := NewPlanner(s)

	p.Select(picker.FaceFront)
	p.Update(0.5)
	assert.InDelta(t, 7*math32.Pi/4, s.Get().Y, 1e-4)
	p.Update(0.5)
	assert.Equal(t, orientation.Orientation{}, s.Get())
}

func TestCancelStopsTransition(t *testing.T) {
	s := orientation.NewState()
	p := NewPlanner(s)
	p.Select(picker.FaceBottom)
	p.Update(0.5)
	held := s.Get()

	p.Cancel()
	assert.False(t, p.Transitioning())
	assert.False(t, p.Update(1))
	assert.Equal(t, held, s.Get())
	assert.Equal(t, float32(1), p.Progress())
}

func TestZeroDurationSnapsOnNextUpdate(t *testing.T) {
	s := orientation.NewState()
	p := NewPlanner(s, WithDuration(0))
	p.Select(picker.FaceBack)
	assert.True(t, p.Update(0))
	assert.Equal(t, FaceRotation(picker.FaceBack), s.Get())
}

func TestMoveCameraOrbitsAndLeavesOrientation(t *testing.T) {
	s := orientation.NewState()
	p := NewPlanner(s, WithStrategy(StrategyMoveCamera), WithDistance(10), WithEasing(func(t float32) float32 { return t }))
	assert.Equal(t, StrategyMoveCamera, p.Strategy())
	assert.Equal(t, float32(10), p.Distance())

	p.Select(picker.FaceTop)
	assert.Less(t, p.Target().Position.Sub(mgl32.Vec3{0, 10, 0}).Len(), float32(1e-5), "target %v", p.Target().Position)

	p.Update(0.5)
	mid := p.Pose()
	assert.InDelta(t, 10, mid.Position.Len(), 1e-4, "camera stays on the orbit sphere")

	p.Update(0.5)
	assert.Equal(t, p.Target(), p.Pose())
	assert.Equal(t, orientation.Orientation{}, s.Get())
	assert.Zero(t, s.Revision())

	// The top face's normal must point at the camera.
	toCamera := p.Pose().Position.Normalize()
	assert.Less(t, toCamera.Sub(picker.FaceTop.Normal()).Len(), float32(1e-5))
}

func TestMoveCameraAccountsForSceneRotation(t *testing.T) {
	s := orientation.NewState(orientation.WithInitial(orientation.Orientation{Y: 0.7}))
	p := NewPlanner(s, WithStrategy(StrategyMoveCamera))

	p.Select(picker.FaceRight)
	run(p, 2, 1)
	worldNormal := s.Quat().Rotate(picker.FaceRight.Normal())
	toCamera := p.Pose().Position.Normalize()
	assert.Less(t, toCamera.Sub(worldNormal).Len(), float32(1e-5), "camera %v normal %v", toCamera, worldNormal)
}

func TestMoveCameraIdempotent(t *testing.T) {
	p := NewPlanner(orientation.NewState(), WithStrategy(StrategyMoveCamera))
	p.Select(picker.FaceBack)
	run(p, 25, 0.1)
	first := p.Pose()
	p.Select(picker.FaceBack)
	run(p, 25, 0.1)
	assert.Equal(t, first, p.Pose())
}

func TestSetStrategyResetsCameraAndKeepsOrientation(t *testing.T) {
	s := orientation.NewState(orientation.WithInitial(orientation.Orientation{Y: 0.4}))
	p := NewPlanner(s, WithStrategy(StrategyMoveCamera))

	p.Select(picker.FaceRight)
	run(p, 40, 1.0/30)
	require.False(t, p.Transitioning())
	require.Greater(t, p.Pose().Position.Sub(CanonicalPose(DefaultDistance).Position).Len(), float32(1e-3))

	p.Select(picker.FaceTop)
	p.Update(0.1)
	p.SetStrategy(StrategyRotateScene)

	assert.Equal(t, StrategyRotateScene, p.Strategy())
	assert.False(t, p.Transitioning())
	assert.Equal(t, CanonicalPose(DefaultDistance), p.Pose())
	assert.Equal(t, orientation.Orientation{Y: 0.4}, s.Get())

	p.Select(picker.FaceTop)
	run(p, 40, 1.0/30)
	assert.Equal(t, FaceRotation(picker.FaceTop), s.Get())
}
