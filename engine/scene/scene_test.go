package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/node"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSceneRegistry(t *testing.T) {
	a := node.NewNode("a")
	b := node.NewNode("b", node.WithLayer(node.LayerGizmo), node.WithCollider(mgl32.Vec3{1, 1, 1}))
	s := NewScene("test", WithNodes(a, b))

	assert.Equal(t, "test", s.Name())
	assert.Equal(t, 2, s.Count())
	assert.Same(t, a, s.Get("a"))
	assert.Nil(t, s.Get("missing"))

	replacement := node.NewNode("a")
	s.Add(replacement)
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []node.Node{replacement, b}, s.Nodes())

	assert.Equal(t, []node.Node{b}, s.NodesIn(node.LayerGizmo))
	assert.Len(t, s.Collidables(node.LayerGizmo), 1)

	b.SetEnabled(false)
	assert.Empty(t, s.NodesIn(node.LayerGizmo))

	s.Remove("a")
	s.Remove("a")
	assert.Equal(t, []node.Node{b}, s.Nodes())
}

func TestSceneCameras(t *testing.T) {
	c := camera.NewCamera()
	s := NewScene("test", WithCamera(CameraView, c))
	assert.Same(t, c, s.Camera(CameraView))
	assert.Nil(t, s.Camera(CameraGizmo))

	s.SetCamera(CameraView, nil)
	assert.Nil(t, s.Camera(CameraView))

	s.SetCamera(CameraGizmo, c)
	s.Add(node.NewNode("x"))
	s.Clear()
	assert.Nil(t, s.Camera(CameraGizmo))
	assert.Zero(t, s.Count())
}
