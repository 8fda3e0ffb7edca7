package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformAlignment is the dynamic offset stride of the per-draw uniform buffer.
// 256 is the largest MinUniformBufferOffsetAlignment WebGPU allows, so it is valid on every adapter.
const uniformAlignment = 256

var errNoSurfaceFormat = errors.New("surface reports no supported formats")

// wgpuMesh is an uploaded vertex/index buffer pair.
type wgpuMesh struct {
	vertex *wgpu.Buffer
	index  *wgpu.Buffer
}

func (m *wgpuMesh) Release() {
	if m.vertex != nil {
		m.vertex.Release()
		m.vertex = nil
	}
	if m.index != nil {
		m.index.Release()
		m.index = nil
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    wgpu.TextureFormat
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView
	clearColor       wgpu.Color

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	shaderSource    string
	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	pipelines       map[model.Topology]*wgpu.RenderPipeline

	// uniformBuffer holds one GPUDrawUniform per draw at uniformAlignment strides,
	// bound with a dynamic offset.
	uniformBuffer   *wgpu.Buffer
	uniformBind     *wgpu.BindGroup
	uniformCapacity int
	uniformStaging  []byte
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, clear [4]float64) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	if surfaceDescriptor == nil {
		return nil, errors.New("nil surface descriptor")
	}
	source, err := ComposeShader(drawShaderSource)
	if err != nil {
		return nil, err
	}

	b := &wgpuRendererBackendImpl{
		mu:           &sync.Mutex{},
		instance:     wgpu.CreateInstance(nil),
		presentMode:  wgpu.PresentModeFifo,
		sampleCount:  sampleCount,
		shaderSource: source,
		pipelines:    make(map[model.Topology]*wgpu.RenderPipeline),
		clearColor:   wgpu.Color{R: clear[0], G: clear[1], B: clear[2], A: clear[3]},
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	b.adapter, err = b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}

	limits := wgpu.DefaultLimits()
	b.device, err = b.adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "Sandbox Device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: limits},
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.queue = b.device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		b.Release()
		return nil, errNoSurfaceFormat
	}
	b.surfaceFormat = capabilities.Formats[0]

	if err := b.createPipelines(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// createPipelines builds the shared layout and one pipeline per topology.
func (b *wgpuRendererBackendImpl) createPipelines() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Draw Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: b.shaderSource},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	defer module.Release()

	uniformSize := uint64((&camera.GPUDrawUniform{}).Size())
	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Draw Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   uniformSize,
			},
		}},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Draw Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: model.GPUVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
		},
	}

	topologies := map[model.Topology]wgpu.PrimitiveTopology{
		model.TopologyTriangles: wgpu.PrimitiveTopologyTriangleList,
		model.TopologyLines:     wgpu.PrimitiveTopologyLineList,
	}
	for t, prim := range topologies {
		p, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  t.String() + " Render Pipeline",
			Layout: b.pipelineLayout,
			Vertex: wgpu.VertexState{
				Module:     module,
				EntryPoint: vertexEntryPoint,
				Buffers:    []wgpu.VertexBufferLayout{vertexLayout},
			},
			Fragment: &wgpu.FragmentState{
				Module:     module,
				EntryPoint: fragmentEntryPoint,
				Targets: []wgpu.ColorTargetState{{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				}},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  prim,
				FrontFace: wgpu.FrontFaceCCW,
				// Imported meshes have no reliable winding.
				CullMode: wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{
				Count: uint32(b.sampleCount),
				Mask:  0xFFFFFFFF,
			},
			DepthStencil: &wgpu.DepthStencilState{
				Format:            wgpu.TextureFormatDepth24Plus,
				DepthWriteEnabled: true,
				DepthCompare:      wgpu.CompareFunctionLessEqual,
				StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
				StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			},
		})
		if err != nil {
			return fmt.Errorf("create %s pipeline: %w", t, err)
		}
		b.pipelines[t] = p
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	if count > 1 {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("create msaa texture: %w", err)
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			return fmt.Errorf("create msaa view: %w", err)
		}
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	b.depthTexture = tex
	if b.depthTextureView, err = tex.CreateView(nil); err != nil {
		return fmt.Errorf("create depth view: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) CreateMesh(label string, vertexData, indexData []byte) (gpuMesh, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := &wgpuMesh{}
	var err error
	if m.vertex, err = b.upload(label+" Vertex Buffer", wgpu.BufferUsageVertex, vertexData); err != nil {
		return nil, err
	}
	if m.index, err = b.upload(label+" Index Buffer", wgpu.BufferUsageIndex, indexData); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

func (b *wgpuRendererBackendImpl) upload(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	// Buffer sizes must be a multiple of 4.
	size := (uint64(len(data)) + 3) &^ 3
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  max(size, 4),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if len(data) > 0 {
		padded := data
		if uint64(len(data)) != size {
			padded = make([]byte, size)
			copy(padded, data)
		}
		if err := b.queue.WriteBuffer(buf, 0, padded); err != nil {
			buf.Release()
			return nil, fmt.Errorf("write %s: %w", label, err)
		}
	}
	return buf, nil
}

// ensureUniformCapacity grows the per-draw uniform buffer to hold at least n draws.
func (b *wgpuRendererBackendImpl) ensureUniformCapacity(n int) error {
	if n <= b.uniformCapacity {
		return nil
	}
	capacity := max(64, b.uniformCapacity)
	for capacity < n {
		capacity *= 2
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Draw Uniform Buffer",
		Size:  uint64(capacity * uniformAlignment),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	bind, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Draw Uniform Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    uint64((&camera.GPUDrawUniform{}).Size()),
		}},
	})
	if err != nil {
		buf.Release()
		return fmt.Errorf("create uniform bind group: %w", err)
	}

	if b.uniformBind != nil {
		b.uniformBind.Release()
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
	}
	b.uniformBuffer = buf
	b.uniformBind = bind
	b.uniformCapacity = capacity
	b.uniformStaging = make([]byte, capacity*uniformAlignment)
	return nil
}

func (b *wgpuRendererBackendImpl) RenderFrame(passes []renderPass) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.depthTextureView == nil {
		return errors.New("surface is not configured")
	}

	total := 0
	for _, p := range passes {
		total += len(p.draws)
	}
	if err := b.ensureUniformCapacity(total); err != nil {
		return err
	}
	slot := 0
	for _, p := range passes {
		for _, d := range p.draws {
			copy(b.uniformStaging[slot*uniformAlignment:], d.uniform.Marshal())
			slot++
		}
	}
	if total > 0 {
		if err := b.queue.WriteBuffer(b.uniformBuffer, 0, b.uniformStaging[:total*uniformAlignment]); err != nil {
			return fmt.Errorf("write uniforms: %w", err)
		}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	slot = 0
	for i, p := range passes {
		color := wgpu.RenderPassColorAttachment{
			View:       view,
			LoadOp:     wgpu.LoadOpLoad,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: b.clearColor,
		}
		if i == 0 {
			color.LoadOp = wgpu.LoadOpClear
		}
		if b.sampleCount > 1 {
			color.View = b.msaaTextureView
			color.ResolveTarget = view
		}
		pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			Label:            p.label,
			ColorAttachments: []wgpu.RenderPassColorAttachment{color},
			DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
				View:            b.depthTextureView,
				DepthLoadOp:     wgpu.LoadOpClear,
				DepthStoreOp:    wgpu.StoreOpDiscard,
				DepthClearValue: 1.0,
			},
		})
		v := p.viewport
		pass.SetViewport(v.X, v.Y, v.Width, v.Height, 0, 1)
		pass.SetScissorRect(uint32(v.X), uint32(v.Y), uint32(v.Width), uint32(v.Height))

		for _, d := range p.draws {
			mesh, ok := d.mesh.(*wgpuMesh)
			pipeline := b.pipelines[d.topology]
			if !ok || pipeline == nil || mesh.vertex == nil {
				slot++
				continue
			}
			pass.SetPipeline(pipeline)
			pass.SetBindGroup(0, b.uniformBind, []uint32{uint32(slot * uniformAlignment)})
			pass.SetVertexBuffer(0, mesh.vertex, 0, wgpu.WholeSize)
			pass.SetIndexBuffer(mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(uint32(d.indexCount), 1, 0, 0, 0)
			slot++
		}
		pass.End()
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish frame: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseTargets()
	for t, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, t)
	}
	if b.uniformBind != nil {
		b.uniformBind.Release()
		b.uniformBind = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	b.queue = nil
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
