package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct {
	label    string
	released bool
}

func (m *fakeMesh) Release() { m.released = true }

type fakeBackend struct {
	configured [][2]int
	meshes     []*fakeMesh
	frames     [][]renderPass
	createErr  error
	released   bool
}

func (b *fakeBackend) ConfigureSurface(width, height int) error {
	b.configured = append(b.configured, [2]int{width, height})
	return nil
}

func (b *fakeBackend) SetPresentMode(PresentMode) {}

func (b *fakeBackend) CreateMesh(label string, _, _ []byte) (gpuMesh, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	m := &fakeMesh{label: label}
	b.meshes = append(b.meshes, m)
	return m, nil
}

func (b *fakeBackend) RenderFrame(passes []renderPass) error {
	b.frames = append(b.frames, passes)
	return nil
}

func (b *fakeBackend) Release() { b.released = true }

func newTestRenderer(t *testing.T) (*renderer, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{}
	r := newRenderer(withBackend(b))
	require.NoError(t, r.Resize(800, 600))
	return r, b
}

func cubeNode(id string, rev uint64) node.Node {
	m := model.NewModel(
		model.WithName(id),
		model.WithRevision(rev),
		model.WithVertices(make([]model.GPUVertex, 3)),
		model.WithIndices([]uint32{0, 1, 2}),
	)
	return node.NewNode(id, node.WithModel(m))
}

func TestComposeShaderExpandsIncludes(t *testing.T) {
	src, err := ComposeShader(drawShaderSource)
	require.NoError(t, err)
	assert.NotContains(t, src, "@include")
	assert.Contains(t, src, "struct VertexInput")
	assert.Contains(t, src, "struct DrawUniform")
	assert.Contains(t, src, vertexEntryPoint)

	_, err = ComposeShader("@include(lights)\n")
	assert.ErrorContains(t, err, "lights")
}

func TestViewportClip(t *testing.T) {
	v, ok := Viewport{X: 700, Y: -10, Width: 200, Height: 100}.Clip(800, 600)
	require.True(t, ok)
	assert.Equal(t, Viewport{X: 700, Y: 0, Width: 100, Height: 90}, v)

	_, ok = Viewport{X: 900, Y: 0, Width: 50, Height: 50}.Clip(800, 600)
	assert.False(t, ok)

	assert.Equal(t, float32(2), Viewport{Width: 200, Height: 100}.Aspect())
	assert.Equal(t, float32(1), Viewport{}.Aspect())
}

func TestRenderBuildsPassesInOrder(t *testing.T) {
	r, b := newTestRenderer(t)
	cam := camera.NewCamera()

	hidden := cubeNode("hidden", 1)
	hidden.SetEnabled(false)
	empty := node.NewNode("empty")

	err := r.Render(
		View{Name: "main", Camera: cam, Nodes: []node.Node{cubeNode("a", 1), hidden, empty}, Viewport: FullViewport(800, 600)},
		View{Name: "gizmo", Camera: cam, Nodes: []node.Node{cubeNode("b", 1)}, Viewport: Viewport{X: 640, Y: 0, Width: 160, Height: 160}},
	)
	require.NoError(t, err)

	require.Len(t, b.frames, 1)
	passes := b.frames[0]
	require.Len(t, passes, 2)
	assert.Equal(t, "main", passes[0].label)
	assert.Equal(t, "gizmo", passes[1].label)
	require.Len(t, passes[0].draws, 1, "disabled and model-less nodes are skipped")
	assert.Equal(t, 3, passes[0].draws[0].indexCount)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, passes[0].draws[0].uniform.Tint)
	assert.Equal(t, 2, r.MeshCount())
}

func TestRenderReusesMeshUntilRevisionChanges(t *testing.T) {
	r, b := newTestRenderer(t)
	cam := camera.NewCamera()
	view := func(n node.Node) View {
		return View{Name: "main", Camera: cam, Nodes: []node.Node{n}, Viewport: FullViewport(800, 600)}
	}

	require.NoError(t, r.Render(view(cubeNode("model", 1))))
	require.NoError(t, r.Render(view(cubeNode("model", 1))))
	require.Len(t, b.meshes, 1)

	require.NoError(t, r.Render(view(cubeNode("model", 2))))
	require.Len(t, b.meshes, 2)
	assert.True(t, b.meshes[0].released, "stale revision is released")
	assert.False(t, b.meshes[1].released)
	assert.Equal(t, 1, r.MeshCount())

	r.Evict("model")
	assert.True(t, b.meshes[1].released)
	assert.Zero(t, r.MeshCount())
}

func TestRenderSkipsWhenMinimized(t *testing.T) {
	r, b := newTestRenderer(t)
	require.NoError(t, r.Resize(0, 0))
	require.NoError(t, r.Render(View{Camera: camera.NewCamera(), Viewport: FullViewport(800, 600)}))
	assert.Empty(t, b.frames)
	assert.Equal(t, [][2]int{{800, 600}}, b.configured, "zero size is not configured")
}

func TestRenderPropagatesUploadErrors(t *testing.T) {
	r, b := newTestRenderer(t)
	b.createErr = errors.New("out of memory")

	err := r.Render(View{Camera: camera.NewCamera(), Nodes: []node.Node{cubeNode("m", 1)}, Viewport: FullViewport(800, 600)})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "upload mesh m"))
	assert.Empty(t, b.frames)
}

func TestReleaseFreesMeshes(t *testing.T) {
	r, b := newTestRenderer(t)
	require.NoError(t, r.Render(View{Camera: camera.NewCamera(), Nodes: []node.Node{cubeNode("m", 1)}, Viewport: FullViewport(800, 600)}))
	r.Release()
	assert.True(t, b.released)
	assert.True(t, b.meshes[0].released)
	assert.Zero(t, r.MeshCount())
}

func TestWithMSAAIgnoresUnsupportedCounts(t *testing.T) {
	r := newRenderer(WithMSAA(MSAASampleCount(8)))
	assert.Equal(t, MSAA4x, r.sampleCount)
	r = newRenderer(WithMSAA(MSAAOff))
	assert.Equal(t, MSAAOff, r.sampleCount)
}
