package picker

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAxisNormals(t *testing.T) {
	p := NewPicker()
	cases := []struct {
		normal mgl32.Vec3
		want   Face
	}{
		{mgl32.Vec3{1, 0, 0}, FaceRight},
		{mgl32.Vec3{-1, 0, 0}, FaceLeft},
		{mgl32.Vec3{0, 1, 0}, FaceTop},
		{mgl32.Vec3{0, -1, 0}, FaceBottom},
		{mgl32.Vec3{0, 0, 1}, FaceFront},
		{mgl32.Vec3{0, 0, -1}, FaceBack},
	}
	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			assert.Equal(t, c.want, p.Classify(c.normal))
		})
	}
}

func TestClassifyCornerFallsBackToFront(t *testing.T) {
	p := NewPicker()
	assert.Equal(t, FaceFront, p.Classify(mgl32.Vec3{0.5, 0.5, 0.5}))
	assert.Equal(t, FaceFront, p.Classify(mgl32.Vec3{math32.NaN(), 0, 0}))
	assert.Equal(t, FaceFront, p.Classify(mgl32.Vec3{0, 0, -0.9}))
}

func TestClassifyPriorityXBeforeY(t *testing.T) {
	p := NewPicker()
	assert.Equal(t, FaceRight, p.Classify(mgl32.Vec3{0.95, 0.95, 0}))
	assert.Equal(t, FaceTop, p.Classify(mgl32.Vec3{0, 0.95, -0.95}))
}

func TestPickerOptions(t *testing.T) {
	p := NewPicker(WithThreshold(0.4), WithFallback(FaceTop))
	assert.Equal(t, float32(0.4), p.Threshold())
	assert.Equal(t, FaceRight, p.Classify(mgl32.Vec3{0.5, 0.5, 0.5}))
	assert.Equal(t, FaceTop, p.Classify(mgl32.Vec3{0.1, 0.1, 0.1}))

	ignored := NewPicker(WithThreshold(1.5), WithFallback(Face(42)))
	assert.Equal(t, DefaultThreshold, ignored.Threshold())
	assert.Equal(t, FaceFront, ignored.Classify(mgl32.Vec3{}))
}

func TestPickFirstUsesFirstGizmoHit(t *testing.T) {
	p := NewPicker()
	hits := []Hit{
		{NodeID: "grid", Normal: mgl32.Vec3{0, 1, 0}},
		{NodeID: "gizmo", Normal: mgl32.Vec3{-1, 0, 0}},
		{NodeID: "gizmo", Normal: mgl32.Vec3{0, 0, -1}},
	}
	face, ok := p.PickFirst(hits, "gizmo")
	assert.True(t, ok)
	assert.Equal(t, FaceLeft, face)

	face, ok = p.PickFirst(hits[:1], "gizmo")
	assert.False(t, ok)
	assert.Equal(t, FaceFront, face)
}

func TestParseFace(t *testing.T) {
	for _, f := range Faces {
		got, err := ParseFace(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFace(" TOP ")
	require.NoError(t, err)
	assert.Equal(t, FaceTop, got)

	_, err = ParseFace("test")
	assert.Error(t, err)
	assert.Equal(t, "face(9)", Face(9).String())
}

func TestFaceNormalRoundTrip(t *testing.T) {
	p := NewPicker()
	for _, f := range Faces {
		assert.Equal(t, f, p.Classify(f.Normal()))
	}
}

type box struct {
	id   string
	on   bool
	t    common.Transform
	half mgl32.Vec3
}

func (b box) ID() string                   { return b.id }
func (b box) Enabled() bool                { return b.on }
func (b box) Transform() common.Transform  { return b.t }
func (b box) Collider() (mgl32.Vec3, bool) { return b.half, b.half != mgl32.Vec3{} }

func TestBoxCasterFrontHit(t *testing.T) {
	cube := box{id: "gizmo", on: true, t: common.IdentityTransform(), half: mgl32.Vec3{1, 1, 1}}
	caster := NewBoxCaster(func() []Collidable { return []Collidable{cube} })

	hits := caster.HitTest(common.Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	require.Len(t, hits, 1)
	assert.Equal(t, "gizmo", hits[0].NodeID)
	assert.InDelta(t, 4, hits[0].Distance, 1e-5)
	assert.Less(t, hits[0].Normal.Sub(mgl32.Vec3{0, 0, 1}).Len(), float32(1e-5))
	assert.Less(t, hits[0].Point.Sub(mgl32.Vec3{0, 0, 1}).Len(), float32(1e-5))
}

func TestBoxCasterReportsLocalNormalOfRotatedCube(t *testing.T) {
	// Yaw -π/2 brings the local +X side in front of a camera on +Z.
	cube := box{id: "gizmo", on: true, t: common.NewRotationTransform(0, -math32.Pi/2, 0), half: mgl32.Vec3{1, 1, 1}}
	caster := NewBoxCaster(func() []Collidable { return []Collidable{cube} })

	hits := caster.HitTest(common.Ray{Origin: mgl32.Vec3{0.2, 0.3, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	require.Len(t, hits, 1)
	assert.Less(t, hits[0].Normal.Sub(mgl32.Vec3{1, 0, 0}).Len(), float32(1e-5), "normal %v", hits[0].Normal)
	assert.Equal(t, FaceRight, NewPicker().Classify(hits[0].Normal))
}

func TestBoxCasterOrdersByDistanceAndSkips(t *testing.T) {
	far := box{id: "far", on: true, t: common.IdentityTransform().WithPosition(mgl32.Vec3{0, 0, -10}), half: mgl32.Vec3{1, 1, 1}}
	near := box{id: "near", on: true, t: common.IdentityTransform(), half: mgl32.Vec3{1, 1, 1}}
	disabled := box{id: "off", on: false, t: common.IdentityTransform().WithPosition(mgl32.Vec3{0, 0, 3}), half: mgl32.Vec3{1, 1, 1}}
	noCollider := box{id: "grid", on: true, t: common.IdentityTransform()}
	caster := NewBoxCaster(func() []Collidable { return []Collidable{far, disabled, noCollider, near} })

	hits := caster.HitTest(common.Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
	require.Len(t, hits, 2)
	assert.Equal(t, "near", hits[0].NodeID)
	assert.Equal(t, "far", hits[1].NodeID)
}

func TestBoxCasterMisses(t *testing.T) {
	cube := box{id: "gizmo", on: true, t: common.IdentityTransform(), half: mgl32.Vec3{1, 1, 1}}
	caster := NewBoxCaster(func() []Collidable { return []Collidable{cube} })

	assert.Empty(t, caster.HitTest(common.Ray{Origin: mgl32.Vec3{3, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}))
	assert.Empty(t, caster.HitTest(common.Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}}))
	assert.Empty(t, caster.HitTest(common.Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{0, 0, -1}}))
	assert.Empty(t, NewBoxCaster(nil).HitTest(common.Ray{}))
}
