// Package sandbox assembles the orientation, gesture, picking and camera components of one
// open project view and routes window input through them.
package sandbox

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/gesture"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/loader"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/node"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/orientation"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/picker"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/renderer"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultProject names a session opened without a project.
const DefaultProject = "untitled"

// View names returned by Views.
const (
	ViewMain  = "main"
	ViewGizmo = "gizmo"
)

var (
	gridColor     = [4]float32{0.32, 0.34, 0.38, 1}
	gridAxisColor = [4]float32{0.62, 0.64, 0.70, 1}
	edgeColor     = [4]float32{0.05, 0.05, 0.06, 1}
)

// gizmoNear and gizmoFar bound the gizmo camera; the cube always sits a few units away.
const (
	gizmoNear float32 = 0.1
	gizmoFar  float32 = 100
)

type session struct {
	cfg     config.Config
	project string
	logger  *slog.Logger

	state        orientation.State
	planner      camera.Planner
	mapper       gesture.Mapper
	recognizer   gesture.Recognizer
	picker       picker.Picker
	caster       picker.HitTester
	scene        scene.Scene
	synchronizer scene.Synchronizer
	viewCam      camera.Camera
	gizmoCam     camera.Camera

	loader         loader.Loader
	importer       loader.Importer
	watcher        loader.Watcher
	dispatcher     dispatch.Dispatcher
	ownsDispatcher bool

	unsubscribe func()
	closeOnce   sync.Once

	width, height int
	gizmoRect     gesture.Rect
	modelPath     string
	lastErr       error
}

// Session is one open project view: the shared orientation, the gizmo and grid scene,
// the viewport and gizmo cameras and the input routing between them.
// A session lives on the UI thread; only imports run in the background and their results
// are applied when the dispatcher is drained.
type Session interface {
	// Project returns the project name shown by the view.
	Project() string

	// Config returns the configuration the session was built from.
	Config() config.Config

	// State returns the shared orientation.
	State() orientation.State

	// Planner returns the face-selection camera planner.
	Planner() camera.Planner

	// Scene returns the node and camera registry.
	Scene() scene.Scene

	// Recognizer returns the raw input recognizer.
	Recognizer() gesture.Recognizer

	// ViewCamera returns the camera of the main viewport.
	ViewCamera() camera.Camera

	// GizmoCamera returns the camera of the gizmo inset.
	GizmoCamera() camera.Camera

	// GizmoRect returns the gizmo inset in window pixels.
	GizmoRect() gesture.Rect

	// PointerDown starts a drag or tap at window coordinates (x, y).
	PointerDown(x, y float32)

	// PointerMove reports the pointer position.
	PointerMove(x, y float32)

	// PointerUp ends a drag or tap at window coordinates (x, y).
	PointerUp(x, y float32)

	// Scroll zooms the viewport camera by a vertical scroll offset.
	Scroll(offset float32)

	// KeyDown handles the face hotkeys 1-6, R (reset), M (toggle strategy) and Q/E (twist).
	//
	// Parameters:
	//   - code: the key code
	//
	// Returns:
	//   - bool: true if the key was handled
	KeyDown(code uint32) bool

	// Resize updates the camera aspect ratios and the gizmo inset for a new surface size.
	// Zero sizes are ignored.
	Resize(width, height int)

	// Pick casts a ray from the gizmo camera through a point of the gizmo inset.
	//
	// Parameters:
	//   - x, y: coordinates local to the gizmo inset
	//   - width, height: the inset size
	//
	// Returns:
	//   - picker.Face: the face under the point
	//   - bool: false if the ray missed the gizmo
	Pick(x, y, width, height float32) (picker.Face, bool)

	// SelectFace starts the animated transition to face f.
	SelectFace(f picker.Face)

	// Reset animates back to the front view.
	Reset()

	// ToggleStrategy switches between rotate-scene and move-camera.
	//
	// Returns:
	//   - camera.Strategy: the strategy now in effect
	ToggleStrategy() camera.Strategy

	// Tick applies finished imports when the session owns its dispatcher, then advances the
	// planner and writes the orientation and poses onto the scene.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - scene.Frame: what the synchronizer wrote
	Tick(dt float32) scene.Frame

	// Views returns the main viewport and the gizmo inset in draw order, or nil before the
	// first Resize.
	Views() []renderer.View

	// SetModel installs m as the rotating model node, replacing any previous model.
	// A nil model removes the node.
	SetModel(m model.Model)

	// ImportModel loads a mesh file in the background and installs it when done.
	//
	// Returns:
	//   - bool: false if the session is closed
	ImportModel(path string) bool

	// Watch re-imports path whenever it changes on disk, replacing any previous watch.
	//
	// Returns:
	//   - error: error if the watch could not be established
	Watch(path string) error

	// ModelPath returns the path of the installed model, if it came from a file.
	ModelPath() string

	// Err returns the last import error, or nil.
	Err() error

	// Wait blocks until every pending import has posted its result.
	Wait()

	// Close stops watching, waits for running imports and detaches from the orientation.
	//
	// Returns:
	//   - error: error from stopping the watcher
	Close() error
}

var _ Session = &session{}

// NewSession builds a session from the configured values.
//
// Parameters:
//   - options: functional options to configure the session
//
// Returns:
//   - Session: the newly created session
func NewSession(options ...SessionBuilderOption) Session {
	s := &session{
		cfg:    config.Default(),
		logger: slog.Default(),
	}
	for _, option := range options {
		option(s)
	}
	s.project = common.Coalesce(s.project, DefaultProject)
	s.logger = s.logger.With(slog.String("project", s.project))
	if s.dispatcher == nil {
		s.dispatcher = dispatch.NewDispatcher()
		s.ownsDispatcher = true
	}
	if s.loader == nil {
		s.loader = loader.NewLoader(loader.BackendTypeSTL, loader.WithTargetSize(s.cfg.Model.TargetSize))
	}

	s.state = orientation.NewState()
	s.planner = camera.NewPlanner(s.state,
		camera.WithStrategy(s.cfg.Camera.ParsedStrategy()),
		camera.WithDistance(s.cfg.Camera.Distance),
		camera.WithDuration(s.cfg.Camera.Duration),
	)
	s.buildScene()

	s.picker = picker.NewPicker(picker.WithThreshold(s.cfg.Picker.Threshold))
	s.caster = picker.NewBoxCaster(func() []picker.Collidable {
		return s.scene.Collidables(node.LayerGizmo)
	})
	s.mapper = gesture.NewMapper(s.state,
		gesture.WithSensitivity(s.cfg.Gesture.Sensitivity),
		gesture.WithZoomer(s.viewCam),
		gesture.WithInterrupter(s.planner),
		gesture.WithTapHandler(s.onTap),
	)
	s.recognizer = gesture.NewRecognizer(func(e gesture.Event) { s.mapper.Handle(e) },
		gesture.WithTapSlop(s.cfg.Gesture.TapSlop),
		gesture.WithScrollScale(s.cfg.Gesture.ScrollScale),
	)
	s.synchronizer = scene.NewSynchronizer(s.scene, s.state, s.planner,
		scene.WithGizmoCamera(scene.CameraGizmo, s.cfg.Gizmo.Distance),
	)
	s.importer = loader.NewImporter(s.loader, s.dispatcher,
		loader.WithWorkers(s.cfg.Model.Workers),
		loader.WithLogger(s.logger),
	)
	s.unsubscribe = s.state.Subscribe(func(o orientation.Orientation) {
		s.logger.Debug("orientation changed",
			slog.Float64("x", float64(o.X)),
			slog.Float64("y", float64(o.Y)),
			slog.Float64("z", float64(o.Z)),
		)
	})

	s.logger.Info("session opened",
		slog.String("strategy", s.planner.Strategy().String()),
		slog.Float64("distance", float64(s.planner.Distance())),
	)
	return s
}

// buildScene registers the gizmo, its edges, the grid and both cameras.
func (s *session) buildScene() {
	fov, lo, hi := s.cfg.Camera.Fov()
	s.viewCam = camera.NewCamera(
		camera.WithFovLimits(lo, hi),
		camera.WithFov(fov),
		camera.WithNear(s.cfg.Camera.Near),
		camera.WithFar(s.cfg.Camera.Far),
		camera.WithPose(camera.CanonicalPose(s.cfg.Camera.Distance)),
	)
	s.gizmoCam = camera.NewCamera(
		camera.WithFov(s.cfg.Gizmo.Fov()),
		camera.WithAspect(1),
		camera.WithNear(gizmoNear),
		camera.WithFar(gizmoFar),
		camera.WithPose(camera.OrbitPose(mgl32.QuatIdent(), s.cfg.Gizmo.Distance)),
	)

	h := s.cfg.Gizmo.Size / 2
	s.scene = scene.NewScene(s.project,
		scene.WithNodes(
			node.NewNode(scene.NodeGrid,
				node.WithLayer(node.LayerMain),
				node.WithEnabled(s.cfg.Grid.Visible),
				node.WithModel(model.NewGrid(s.cfg.Grid.HalfLines, s.cfg.Grid.Spacing, gridColor, gridAxisColor)),
			),
			node.NewNode(scene.NodeGizmo,
				node.WithLayer(node.LayerGizmo),
				node.WithModel(model.NewGizmoCube(s.cfg.Gizmo.Size, model.DefaultFaceColors)),
				node.WithCollider(mgl32.Vec3{h, h, h}),
			),
			node.NewNode(scene.NodeGizmoEdges,
				node.WithLayer(node.LayerGizmo),
				node.WithModel(model.NewCubeEdges(s.cfg.Gizmo.Size, edgeColor)),
			),
		),
		scene.WithCamera(scene.CameraView, s.viewCam),
		scene.WithCamera(scene.CameraGizmo, s.gizmoCam),
	)
}

func (s *session) Project() string {
	return s.project
}

func (s *session) Config() config.Config {
	return s.cfg
}

func (s *session) State() orientation.State {
	return s.state
}

func (s *session) Planner() camera.Planner {
	return s.planner
}

func (s *session) Scene() scene.Scene {
	return s.scene
}

func (s *session) Recognizer() gesture.Recognizer {
	return s.recognizer
}

func (s *session) ViewCamera() camera.Camera {
	return s.viewCam
}

func (s *session) GizmoCamera() camera.Camera {
	return s.gizmoCam
}

func (s *session) GizmoRect() gesture.Rect {
	return s.gizmoRect
}

func (s *session) PointerDown(x, y float32) {
	s.recognizer.Press(x, y)
}

func (s *session) PointerMove(x, y float32) {
	s.recognizer.Move(x, y)
}

func (s *session) PointerUp(x, y float32) {
	s.recognizer.Release(x, y)
}

func (s *session) Scroll(offset float32) {
	s.recognizer.Scroll(offset)
}

func (s *session) KeyDown(code uint32) bool {
	switch code {
	case common.Key1, common.Key2, common.Key3, common.Key4, common.Key5, common.Key6:
		s.SelectFace(picker.Faces[code-common.Key1])
	case common.KeyR:
		s.Reset()
	case common.KeyM:
		s.ToggleStrategy()
	case common.KeyQ:
		s.recognizer.Rotate(s.cfg.Gesture.TwistStep())
	case common.KeyE:
		s.recognizer.Rotate(-s.cfg.Gesture.TwistStep())
	default:
		return false
	}
	return true
}

func (s *session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.viewCam.SetAspect(float32(width) / float32(height))

	size := float32(min(s.cfg.Gizmo.Viewport, width, height))
	margin := float32(s.cfg.Gizmo.Margin)
	s.gizmoRect = gesture.Rect{
		X: max(float32(width)-size-margin, 0),
		Y: min(margin, float32(height)-size),
		W: size,
		H: size,
	}
	s.recognizer.SetGizmoRect(s.gizmoRect)
	s.gizmoCam.SetAspect(1)
}

func (s *session) onTap(e gesture.TapEvent) {
	f, ok := s.Pick(e.X, e.Y, e.Width, e.Height)
	if !ok {
		return
	}
	s.logger.Debug("gizmo tapped", slog.String("face", f.String()))
	s.SelectFace(f)
}

func (s *session) Pick(x, y, width, height float32) (picker.Face, bool) {
	ray := s.gizmoCam.Ray(x, y, width, height)
	return s.picker.PickFirst(s.caster.HitTest(ray), scene.NodeGizmo)
}

func (s *session) SelectFace(f picker.Face) {
	s.planner.Select(f)
	s.logger.Info("face selected",
		slog.String("face", f.String()),
		slog.String("strategy", s.planner.Strategy().String()),
		slog.Any("target", s.planner.Target().Position),
	)
}

func (s *session) Reset() {
	if s.planner.Strategy() == camera.StrategyMoveCamera {
		s.planner.Cancel()
		s.state.Set(orientation.Orientation{})
	}
	s.SelectFace(picker.FaceFront)
}

func (s *session) ToggleStrategy() camera.Strategy {
	next := camera.StrategyMoveCamera
	if s.planner.Strategy() == camera.StrategyMoveCamera {
		next = camera.StrategyRotateScene
	}
	s.planner.SetStrategy(next)
	s.logger.Info("strategy changed", slog.String("strategy", next.String()))
	return next
}

func (s *session) Tick(dt float32) scene.Frame {
	if s.ownsDispatcher {
		s.dispatcher.Drain()
	}
	return s.synchronizer.Tick(dt)
}

func (s *session) Views() []renderer.View {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	return []renderer.View{
		{
			Name:     ViewMain,
			Camera:   s.viewCam,
			Nodes:    s.scene.NodesIn(node.LayerMain),
			Viewport: renderer.FullViewport(s.width, s.height),
		},
		{
			Name:   ViewGizmo,
			Camera: s.gizmoCam,
			Nodes:  s.scene.NodesIn(node.LayerGizmo),
			Viewport: renderer.Viewport{
				X:      s.gizmoRect.X,
				Y:      s.gizmoRect.Y,
				Width:  s.gizmoRect.W,
				Height: s.gizmoRect.H,
			},
		},
	}
}

func (s *session) SetModel(m model.Model) {
	if m == nil {
		s.scene.Remove(scene.NodeModel)
		s.modelPath = ""
		return
	}
	if n := s.scene.Get(scene.NodeModel); n != nil {
		n.SetModel(m)
		return
	}
	s.scene.Add(node.NewNode(scene.NodeModel,
		node.WithLayer(node.LayerMain),
		node.WithModel(m),
		node.WithTransform(s.state.Get().Transform()),
	))
}

func (s *session) ImportModel(path string) bool {
	return s.importer.Import(path, s.imported(path))
}

// imported returns the completion callback for an import of path. It runs on the UI thread.
func (s *session) imported(path string) loader.DoneFunc {
	return func(m model.Model, err error) {
		if err != nil {
			s.lastErr = err
			s.logger.Error("model import failed", slog.String("path", path), slog.Any("error", err))
			return
		}
		s.lastErr = nil
		s.SetModel(m)
		s.modelPath = path
		s.logger.Info("model installed", slog.String("path", path), slog.Int("indices", m.IndexCount()))
	}
}

func (s *session) Watch(path string) error {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn("closing previous watch", slog.Any("error", err))
		}
		s.watcher = nil
	}
	w, err := loader.NewWatcher(path, func(p string) {
		s.importer.Reload(p, s.imported(p))
	}, loader.WithWatchLogger(s.logger))
	if err != nil {
		return err
	}
	s.watcher = w
	s.logger.Info("watching model", slog.String("path", path))
	return nil
}

func (s *session) ModelPath() string {
	return s.modelPath
}

func (s *session) Err() error {
	return s.lastErr
}

func (s *session) Wait() {
	s.importer.Wait()
}

func (s *session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		var errs []error
		if s.watcher != nil {
			errs = append(errs, s.watcher.Close())
		}
		s.importer.Close()
		if s.ownsDispatcher {
			s.dispatcher.Drain()
			s.dispatcher.Close()
		}
		s.unsubscribe()
		err = errors.Join(errs...)
		s.logger.Info("session closed")
	})
	return err
}
