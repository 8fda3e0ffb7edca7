package renderer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/node"
	"github.com/cogentcore/webgpu/wgpu"
)

// Viewport is a pixel rectangle of the surface with the origin at the top-left.
type Viewport struct {
	X, Y, Width, Height float32
}

// FullViewport covers a whole surface of the given size.
func FullViewport(width, height int) Viewport {
	return Viewport{Width: float32(width), Height: float32(height)}
}

// Clip intersects v with a surface of the given size.
//
// Returns:
//   - Viewport: the visible part of v
//   - bool: false if nothing of v is visible
func (v Viewport) Clip(width, height int) (Viewport, bool) {
	x0 := common.Clamp(v.X, 0, float32(width))
	y0 := common.Clamp(v.Y, 0, float32(height))
	x1 := common.Clamp(v.X+v.Width, 0, float32(width))
	y1 := common.Clamp(v.Y+v.Height, 0, float32(height))
	out := Viewport{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	return out, out.Width >= 1 && out.Height >= 1
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// View is one camera looking at a set of nodes, drawn into a viewport.
// Views are drawn in order; each starts with a cleared depth buffer, so later views overlay earlier ones.
type View struct {
	Name     string
	Camera   camera.Camera
	Nodes    []node.Node
	Viewport Viewport

	// Tint multiplies every vertex color. The zero value means opaque white.
	Tint [4]float32
}

// meshEntry is a model uploaded to the GPU, keyed by model name.
type meshEntry struct {
	revision   uint64
	mesh       gpuMesh
	indexCount int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     rendererBackend
	meshes      map[string]*meshEntry

	width, height int
	logger        *slog.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           [4]float64
}

// Renderer draws colored meshes through one or more cameras.
// GPU buffers are created the first time a model is drawn and replaced when its revision changes.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	// A zero size (minimized window) is recorded and rendering is skipped until the next resize.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	Resize(width, height int) error

	// Size returns the configured surface size in pixels.
	Size() (int, int)

	// Render draws every view into one frame and presents it.
	// Disabled nodes and nodes without a model are skipped.
	//
	// Parameters:
	//   - views: the views to draw, back to front
	//
	// Returns:
	//   - error: error if uploading a mesh or submitting the frame fails
	Render(views ...View) error

	// MeshCount returns the number of models resident on the GPU.
	MeshCount() int

	// Evict releases the GPU buffers of the named model.
	Evict(name string)

	// Release frees every GPU resource.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer for the given surface.
//
// Parameters:
//   - surfaceDescriptor: the platform surface, usually from window.SurfaceDescriptor
//   - options: renderer options
//
// Returns:
//   - Renderer: the renderer, not yet sized; call Resize before Render
//   - error: error if no adapter, device or pipeline could be created
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)
	switch r.backendType {
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.sampleCount, r.clearColor)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		b.SetPresentMode(r.presentMode)
		r.backend = b
	default:
		return nil, fmt.Errorf("unknown renderer backend %d", r.backendType)
	}
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: BackendTypeWGPU,
		meshes:      make(map[string]*meshEntry),
		logger:      slog.Default(),
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		clearColor:  [4]float64{0.11, 0.12, 0.14, 1},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = max(width, 0), max(height, 0)
	if r.width == 0 || r.height == 0 {
		return nil
	}
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", r.width, r.height, err)
	}
	return nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Render(views ...View) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.width == 0 || r.height == 0 {
		return nil
	}

	passes := make([]renderPass, 0, len(views))
	for _, v := range views {
		vp, ok := v.Viewport.Clip(r.width, r.height)
		if !ok || v.Camera == nil {
			continue
		}
		tint := v.Tint
		if tint == [4]float32{} {
			tint = [4]float32{1, 1, 1, 1}
		}

		pass := renderPass{label: v.Name, viewport: vp}
		for _, n := range v.Nodes {
			if n == nil || !n.Enabled() {
				continue
			}
			m := n.Model()
			if m == nil || m.IndexCount() == 0 {
				continue
			}
			entry, err := r.mesh(m.Name(), m.Revision(), m.VertexData(), m.IndexData(), m.IndexCount())
			if err != nil {
				return err
			}
			pass.draws = append(pass.draws, drawCommand{
				topology:   m.Topology(),
				mesh:       entry.mesh,
				indexCount: entry.indexCount,
				uniform:    camera.NewDrawUniform(v.Camera, n.Transform().Matrix(), tint),
			})
		}
		passes = append(passes, pass)
	}
	if len(passes) == 0 {
		return nil
	}
	return r.backend.RenderFrame(passes)
}

// mesh returns the cached upload for name, replacing it when the revision differs.
func (r *renderer) mesh(name string, revision uint64, vertexData, indexData []byte, indexCount int) (*meshEntry, error) {
	if e, ok := r.meshes[name]; ok && e.revision == revision {
		return e, nil
	}
	m, err := r.backend.CreateMesh(name, vertexData, indexData)
	if err != nil {
		return nil, fmt.Errorf("upload mesh %s: %w", name, err)
	}
	if old, ok := r.meshes[name]; ok {
		old.mesh.Release()
		r.logger.Debug("mesh replaced", "name", name, "revision", revision)
	}
	e := &meshEntry{revision: revision, mesh: m, indexCount: indexCount}
	r.meshes[name] = e
	return e, nil
}

func (r *renderer) MeshCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meshes)
}

func (r *renderer) Evict(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.meshes[name]; ok {
		e.mesh.Release()
		delete(r.meshes, name)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, e := range r.meshes {
		e.mesh.Release()
		delete(r.meshes, name)
	}
	if r.backend != nil {
		r.backend.Release()
	}
}
