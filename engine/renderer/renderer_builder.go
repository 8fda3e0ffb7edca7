package renderer

import "log/slog"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count. Defaults to MSAA4x.
//
// Parameters:
//   - count: MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		if count == MSAAOff || count == MSAA4x {
			r.sampleCount = count
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter.
// This requires a software Vulkan ICD such as SwiftShader or lavapipe.
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the background color.
func WithClearColor(red, green, blue float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = [4]float64{red, green, blue, 1}
	}
}

// WithLogger sets the logger for renderer diagnostics.
func WithLogger(l *slog.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// withBackend injects a backend, bypassing GPU initialization.
func withBackend(b rendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = b
	}
}
