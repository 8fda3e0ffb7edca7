package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
)

// MaxFrameDelta caps the delta passed to callbacks so a stalled frame does not
// skip a whole face transition.
const MaxFrameDelta float32 = 0.25

// engine implements the Engine interface.
// Everything runs on the window's thread: input callbacks, dispatcher drain, tick and render.
type engine struct {
	window     window.Window
	dispatcher dispatch.Dispatcher

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)
	quitCallback   func()

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame time.Time
	now       func() time.Time
	sleep     func(time.Duration)

	logger   *slog.Logger
	quitOnce sync.Once
}

// Engine owns the frame loop of the sandbox.
// Each frame it drains work posted from background goroutines, then calls the tick and render callbacks.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Dispatcher returns the queue drained at the start of every frame.
	// Background goroutines post results here to have them applied on the frame thread.
	//
	// Returns:
	//   - dispatch.Dispatcher: the frame dispatcher
	Dispatcher() dispatch.Dispatcher

	// Profiler returns the frame profiler.
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function that advances state each frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function that draws each frame, called after the tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// SetQuitCallback registers the function called by Quit while the window is still open.
	// GPU resources tied to the window surface are released here.
	//
	// Parameters:
	//   - callback: function called once before the window closes
	SetQuitCallback(callback func())

	// Run starts the frame loop and blocks until the window closes.
	Run()

	// Quit runs the quit callback, then closes the dispatcher and the window.
	// Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		dispatcher: dispatch.NewDispatcher(),
		now:        time.Now,
		sleep:      time.Sleep,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			e.frame()
		})
		e.window.SetResizeCallback(func(width, height int) {
			if e.resizeCallback != nil && width > 0 && height > 0 {
				e.resizeCallback(width, height)
			}
		})
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Dispatcher() dispatch.Dispatcher {
	return e.dispatcher
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	if e.window == nil {
		e.logger.Error("engine has no window")
		return
	}
	e.lastFrame = e.now()
	e.window.ProcessMessages()
	e.Quit()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.quitCallback != nil {
			e.quitCallback()
		}
		e.dispatcher.Close()
		if e.window != nil {
			if err := e.window.Close(); err != nil {
				e.logger.Warn("close window", "error", err)
			}
		}
	})
}

// frame runs one iteration of the loop: drain, tick, render, profile, then sleep out the rest of the frame time.
func (e *engine) frame() {
	start := e.now()
	if e.lastFrame.IsZero() {
		e.lastFrame = start
	}
	dt := min(float32(start.Sub(e.lastFrame).Seconds()), MaxFrameDelta)
	e.lastFrame = start

	e.dispatcher.Drain()

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

func (e *engine) SetQuitCallback(callback func()) {
	e.quitCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
