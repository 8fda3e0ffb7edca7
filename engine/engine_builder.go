package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a created Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithDispatcher shares an existing dispatcher instead of creating one.
func WithDispatcher(d dispatch.Dispatcher) EngineBuilderOption {
	return func(e *engine) {
		if d != nil {
			e.dispatcher = d
		}
	}
}

// WithLogger sets the logger for engine diagnostics.
func WithLogger(l *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}
