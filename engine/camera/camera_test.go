package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, mgl32.DegToRad(60), c.Fov(), 1e-6)
	assert.Equal(t, CanonicalPose(DefaultDistance), c.Pose())

	origin := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Less(t, origin.Sub(mgl32.Vec4{0, 0, -DefaultDistance, 1}).Len(), float32(1e-4), "got %v", origin)
}

func TestViewMatrixFollowsPose(t *testing.T) {
	q := mgl32.QuatRotate(-math32.Pi/2, mgl32.Vec3{1, 0, 0})
	c := NewCamera(WithPose(OrbitPose(q, 10)))

	assert.Less(t, c.Pose().Position.Sub(mgl32.Vec3{0, 10, 0}).Len(), float32(1e-5))
	origin := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Less(t, origin.Sub(mgl32.Vec4{0, 0, -10, 1}).Len(), float32(1e-5), "got %v", origin)
}

func TestMagnifyScalesAndClamps(t *testing.T) {
	c := NewCamera(WithFov(1.0), WithFovLimits(0.2, 2.0))

	assert.True(t, c.Magnify(0.5))
	assert.InDelta(t, 0.5, c.Fov(), 1e-6)

	assert.False(t, c.Magnify(0))
	assert.False(t, c.Magnify(math32.NaN()))
	assert.InDelta(t, 0.5, c.Fov(), 1e-6)

	assert.True(t, c.Magnify(0.9))
	assert.InDelta(t, 0.2, c.Fov(), 1e-6)
	assert.False(t, c.Magnify(0.5), "already at the lower limit")

	assert.True(t, c.Magnify(-100))
	assert.InDelta(t, 2.0, c.Fov(), 1e-6)
}

func TestSetPoseRejectsNonFinite(t *testing.T) {
	c := NewCamera()
	c.SetPose(CameraPose{Position: mgl32.Vec3{math32.NaN(), 0, 0}, Orientation: mgl32.QuatIdent()})
	c.SetPose(CameraPose{Position: mgl32.Vec3{1, 2, 3}})
	assert.Equal(t, CanonicalPose(DefaultDistance), c.Pose())

	c.SetAspect(-1)
	assert.Equal(t, float32(1), c.Aspect())
}

func TestRayThroughViewportCenterAndEdge(t *testing.T) {
	c := NewCamera(WithFov(math32.Pi / 2))

	center := c.Ray(50, 50, 100, 100)
	assert.Equal(t, mgl32.Vec3{0, 0, DefaultDistance}, center.Origin)
	assert.Less(t, center.Direction.Sub(mgl32.Vec3{0, 0, -1}).Len(), float32(1e-5))

	// At a 90° fov the top edge is 45° above the forward axis.
	top := c.Ray(50, 0, 100, 100)
	want := mgl32.Vec3{0, 1, -1}.Normalize()
	assert.Less(t, top.Direction.Sub(want).Len(), float32(1e-5), "got %v", top.Direction)
}

func TestRayFollowsOrientation(t *testing.T) {
	q := mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 1, 0})
	c := NewCamera(WithPose(OrbitPose(q, 5)))
	r := c.Ray(10, 10, 20, 20)
	assert.Less(t, r.Origin.Sub(mgl32.Vec3{5, 0, 0}).Len(), float32(1e-5))
	assert.Less(t, r.Direction.Sub(mgl32.Vec3{-1, 0, 0}).Len(), float32(1e-5))
}

func TestDrawUniformMarshal(t *testing.T) {
	c := NewCamera()
	u := NewDrawUniform(c, mgl32.Ident4(), [4]float32{1, 0.5, 0.25, 1})
	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, u.Size(), 80)
	assert.Equal(t, c.ViewProjectionMatrix()[0], math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[68:])))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("move-camera")
	require.NoError(t, err)
	assert.Equal(t, StrategyMoveCamera, s)

	s, err = ParseStrategy(StrategyRotateScene.String())
	require.NoError(t, err)
	assert.Equal(t, StrategyRotateScene, s)

	_, err = ParseStrategy("spin")
	assert.Error(t, err)
}
