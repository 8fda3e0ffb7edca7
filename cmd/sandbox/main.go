// Command sandbox opens one project view: a ground grid, an optional STL model and the
// orientation gizmo in the top-right corner.
//
// Drag to rotate, scroll to zoom, click a gizmo face or press 1-6 to snap to a face,
// Q/E to twist, R to reset and M to switch between rotating the scene and moving the camera.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-sandbox/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/sandbox"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/window"
	"github.com/Carmen-Shannon/oxy-sandbox/logx"
)

func main() {
	configPath := flag.String("config", "", "config file (.toml, .yaml or .yml)")
	modelPath := flag.String("model", "", "STL model to open")
	project := flag.String("project", "", "project name shown in the title bar")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error); overrides the config")
	watch := flag.Bool("watch", false, "reload the model when it changes on disk")
	vv := flag.Bool("vv", false, "debug logging")
	v := flag.Bool("v", false, "info logging")
	q := flag.Bool("q", false, "errors only")
	flag.Parse()

	if err := run(*configPath, *modelPath, *project, *logLevel, *watch, *vv, *v, *q); err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}
}

func run(configPath, modelPath, project, logLevel string, watch, vv, v, q bool) error {
	// ── Config + logging ────────────────────────────────────────────────
	cfg, cfgErr := config.Load(configPath)

	level, err := logx.LevelFromString(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if vv || v || q {
		level = logx.LevelFromFlags(vv, v, q)
	}
	if logLevel != "" {
		if level, err = logx.LevelFromString(logLevel); err != nil {
			return err
		}
	}
	logger := logx.SetDefault(os.Stderr, level, cfg.Log.Color)
	if cfgErr != nil {
		logger.Warn("using default config", slog.String("path", configPath), slog.Any("error", cfgErr))
	}
	if project == "" {
		project = sandbox.DefaultProject
	}

	// ── Window + renderer ───────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, project)),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}

	r, err := renderer.NewRenderer(win.SurfaceDescriptor(), renderer.WithLogger(logger))
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := r.Resize(win.Width(), win.Height()); err != nil {
		r.Release()
		_ = win.Close()
		return err
	}

	// ── Engine + session ────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithProfiling(cfg.Window.Profile),
		engine.WithLogger(logger),
	)
	s := sandbox.NewSession(
		sandbox.WithConfig(cfg),
		sandbox.WithProject(project),
		sandbox.WithDispatcher(eng.Dispatcher()),
		sandbox.WithLogger(logger),
	)
	defer s.Close()
	s.Resize(win.Width(), win.Height())

	if modelPath != "" {
		s.ImportModel(modelPath)
		if watch || cfg.Model.Watch {
			if err := s.Watch(modelPath); err != nil {
				logger.Warn("model watch disabled", slog.Any("error", err))
			}
		}
	}

	// ── Input ───────────────────────────────────────────────────────────
	win.SetMouseDownCallback(s.PointerDown)
	win.SetMouseUpCallback(s.PointerUp)
	win.SetMouseMoveCallback(s.PointerMove)
	win.SetScrollCallback(s.Scroll)
	win.SetKeyDownCallback(func(keyCode uint32) {
		s.KeyDown(keyCode)
	})

	// ── Loop ────────────────────────────────────────────────────────────
	eng.SetResizeCallback(func(width, height int) {
		if err := r.Resize(width, height); err != nil {
			logger.Error("resize failed", slog.Any("error", err))
			return
		}
		s.Resize(width, height)
	})
	eng.SetTickCallback(func(dt float32) {
		s.Tick(dt)
	})
	eng.SetRenderCallback(func(_ float32) {
		if err := r.Render(s.Views()...); err != nil {
			logger.Error("render failed", slog.Any("error", err))
		}
	})

	// The surface belongs to the window, so the renderer goes first.
	eng.SetQuitCallback(r.Release)

	eng.Run()
	return nil
}
