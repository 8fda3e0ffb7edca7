package renderer

import (
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples per pixel for multisample anti-aliasing.
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// gpuMesh is an uploaded vertex/index buffer pair owned by the backend.
type gpuMesh interface {
	Release()
}

// drawCommand is one indexed draw inside a pass.
type drawCommand struct {
	topology   model.Topology
	mesh       gpuMesh
	indexCount int
	uniform    camera.GPUDrawUniform
}

// renderPass draws into one viewport of the surface. The first pass of a frame clears
// the color target; every pass clears depth so later passes draw on top.
type renderPass struct {
	label    string
	viewport Viewport
	draws    []drawCommand
}

// rendererBackend is the GPU API surface the renderer needs.
type rendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and depth targets for a new size.
	ConfigureSurface(width, height int) error

	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// CreateMesh uploads vertex and index data.
	CreateMesh(label string, vertexData, indexData []byte) (gpuMesh, error)

	// RenderFrame acquires the next surface texture, encodes passes in order, submits and presents.
	RenderFrame(passes []renderPass) error

	// Release frees every GPU object owned by the backend.
	Release()
}
