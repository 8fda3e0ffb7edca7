package node

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var _ picker.Collidable = NewNode("x")

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("grid")
	assert.Equal(t, "grid", n.ID())
	assert.True(t, n.Enabled())
	assert.Equal(t, LayerMain, n.Layer())
	assert.Equal(t, common.IdentityTransform(), n.Transform())
	_, ok := n.Collider()
	assert.False(t, ok)
	assert.Nil(t, n.Model())
}

func TestNodeOptionsAndSetters(t *testing.T) {
	cube := model.NewGizmoCube(2, model.DefaultFaceColors)
	n := NewNode("gizmo",
		WithLayer(LayerGizmo),
		WithModel(cube),
		WithCollider(mgl32.Vec3{1, 1, 1}),
		WithEnabled(false),
	)
	assert.Equal(t, LayerGizmo, n.Layer())
	assert.Same(t, cube, n.Model())
	assert.False(t, n.Enabled())
	half, ok := n.Collider()
	assert.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, half)

	tr := common.NewRotationTransform(0.1, 0.2, 0)
	n.SetTransform(tr)
	assert.Equal(t, tr, n.Transform())

	n.SetCollider(mgl32.Vec3{})
	_, ok = n.Collider()
	assert.False(t, ok)
}
