// Package config loads the sandbox settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-sandbox/common"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid config")

	// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Config holds every tunable of the sandbox viewer.
type Config struct {
	Window  WindowConfig  `toml:"window" yaml:"window"`
	Gesture GestureConfig `toml:"gesture" yaml:"gesture"`
	Picker  PickerConfig  `toml:"picker" yaml:"picker"`
	Camera  CameraConfig  `toml:"camera" yaml:"camera"`
	Grid    GridConfig    `toml:"grid" yaml:"grid"`
	Gizmo   GizmoConfig   `toml:"gizmo" yaml:"gizmo"`
	Model   ModelConfig   `toml:"model" yaml:"model"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// WindowConfig sizes the main window.
type WindowConfig struct {
	Title   string `toml:"title" yaml:"title"`
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height" yaml:"height"`
	Profile bool   `toml:"profile" yaml:"profile"`
}

// GestureConfig tunes how input becomes rotation.
type GestureConfig struct {
	// Sensitivity converts drag pixels into radians.
	Sensitivity float32 `toml:"sensitivity" yaml:"sensitivity"`

	// TapSlop is how far in pixels a click may move and still be a tap.
	TapSlop float32 `toml:"tap_slop" yaml:"tap_slop"`

	// ScrollScale converts one scroll notch into magnification.
	ScrollScale float32 `toml:"scroll_scale" yaml:"scroll_scale"`

	// TwistStepDegrees is the yaw applied per twist key press.
	TwistStepDegrees float32 `toml:"twist_step_degrees" yaml:"twist_step_degrees"`
}

// PickerConfig tunes face classification.
type PickerConfig struct {
	Threshold float32 `toml:"threshold" yaml:"threshold"`
}

// CameraConfig configures the viewport camera and face transitions.
type CameraConfig struct {
	Strategy      string  `toml:"strategy" yaml:"strategy"`
	Distance      float32 `toml:"distance" yaml:"distance"`
	Duration      float32 `toml:"duration" yaml:"duration"`
	FovDegrees    float32 `toml:"fov_degrees" yaml:"fov_degrees"`
	MinFovDegrees float32 `toml:"min_fov_degrees" yaml:"min_fov_degrees"`
	MaxFovDegrees float32 `toml:"max_fov_degrees" yaml:"max_fov_degrees"`
	Near          float32 `toml:"near" yaml:"near"`
	Far           float32 `toml:"far" yaml:"far"`
}

// GridConfig shapes the ground grid.
type GridConfig struct {
	Visible   bool    `toml:"visible" yaml:"visible"`
	HalfLines int     `toml:"half_lines" yaml:"half_lines"`
	Spacing   float32 `toml:"spacing" yaml:"spacing"`
}

// GizmoConfig places the gizmo inset.
type GizmoConfig struct {
	Size       float32 `toml:"size" yaml:"size"`
	Distance   float32 `toml:"distance" yaml:"distance"`
	FovDegrees float32 `toml:"fov_degrees" yaml:"fov_degrees"`
	Viewport   int     `toml:"viewport" yaml:"viewport"`
	Margin     int     `toml:"margin" yaml:"margin"`
}

// ModelConfig controls mesh import.
type ModelConfig struct {
	TargetSize float32 `toml:"target_size" yaml:"target_size"`
	Workers    int     `toml:"workers" yaml:"workers"`
	Watch      bool    `toml:"watch" yaml:"watch"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	Color bool   `toml:"color" yaml:"color"`
}

// Default returns the settings the viewer runs with when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Sandbox",
			Width:  1280,
			Height: 800,
		},
		Gesture: GestureConfig{
			Sensitivity:      0.01,
			TapSlop:          4,
			ScrollScale:      0.1,
			TwistStepDegrees: 5,
		},
		Picker: PickerConfig{Threshold: 0.9},
		Camera: CameraConfig{
			Strategy:      camera.StrategyRotateScene.String(),
			Distance:      camera.DefaultDistance,
			Duration:      camera.DefaultDuration,
			FovDegrees:    60,
			MinFovDegrees: 5,
			MaxFovDegrees: 120,
			Near:          0.1,
			Far:           1000,
		},
		Grid: GridConfig{
			Visible:   true,
			HalfLines: 5,
			Spacing:   1,
		},
		Gizmo: GizmoConfig{
			Size:       2,
			Distance:   5,
			FovDegrees: 60,
			Viewport:   160,
			Margin:     16,
		},
		Model: ModelConfig{
			TargetSize: 10,
			Workers:    2,
		},
		Log: LogConfig{
			Level: "info",
			Color: true,
		},
	}
}

// Load reads a config file. An empty path or a missing file yields Default().
// Keys absent from the file keep their default values.
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//
// Returns:
//   - Config: the loaded and validated config
//   - error: error if the file cannot be parsed or fails validation
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(path, data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the format implied by name's extension.
//
// Parameters:
//   - name: a file name ending in .toml, .yaml or .yml
//   - data: the encoded config
//   - cfg: the config to fill
//
// Returns:
//   - error: error if the format is unknown or data is malformed
func Decode(name string, data []byte, cfg *Config) error {
	switch format(name) {
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode toml %s: %w", name, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode yaml %s: %w", name, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return nil
}

// Save writes cfg to path in the format implied by its extension, creating parent directories.
//
// Parameters:
//   - path: a .toml, .yaml or .yml file
//   - cfg: the config to write
//
// Returns:
//   - error: error if encoding or writing fails
func Save(path string, cfg Config) error {
	var data []byte
	var err error
	switch format(path) {
	case "toml":
		data, err = toml.Marshal(cfg)
	case "yaml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func format(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// Validate reports every out-of-range setting. Each error wraps ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	bad := func(field string, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: %s", ErrInvalid, field, fmt.Sprintf(format, args...)))
	}
	positive := func(field string, v float32) {
		if !common.Finite(v) || v <= 0 {
			bad(field, "must be positive, got %v", v)
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window", "size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	positive("gesture.sensitivity", c.Gesture.Sensitivity)
	if !common.Finite(c.Gesture.TapSlop) || c.Gesture.TapSlop < 0 {
		bad("gesture.tap_slop", "must not be negative, got %v", c.Gesture.TapSlop)
	}
	if !common.Finite(c.Gesture.ScrollScale) {
		bad("gesture.scroll_scale", "must be finite")
	}
	positive("gesture.twist_step_degrees", c.Gesture.TwistStepDegrees)
	if t := c.Picker.Threshold; !common.Finite(t) || t <= 0 || t >= 1 {
		bad("picker.threshold", "must be in (0, 1), got %v", t)
	}
	if _, err := camera.ParseStrategy(c.Camera.Strategy); err != nil {
		bad("camera.strategy", "%v", err)
	}
	positive("camera.distance", c.Camera.Distance)
	if d := c.Camera.Duration; !common.Finite(d) || d < 0 {
		bad("camera.duration", "must not be negative, got %v", d)
	}
	if lo, hi := c.Camera.MinFovDegrees, c.Camera.MaxFovDegrees; !(lo > 0 && lo <= hi && hi < 180) {
		bad("camera.fov", "limits must satisfy 0 < min <= max < 180, got %v..%v", lo, hi)
	} else if f := c.Camera.FovDegrees; f < lo || f > hi {
		bad("camera.fov_degrees", "must be within limits, got %v", f)
	}
	if !(c.Camera.Near > 0 && c.Camera.Near < c.Camera.Far) {
		bad("camera.near", "must satisfy 0 < near < far, got %v, %v", c.Camera.Near, c.Camera.Far)
	}
	if c.Grid.HalfLines < 0 {
		bad("grid.half_lines", "must not be negative, got %d", c.Grid.HalfLines)
	}
	positive("grid.spacing", c.Grid.Spacing)
	positive("gizmo.size", c.Gizmo.Size)
	positive("gizmo.distance", c.Gizmo.Distance)
	if f := c.Gizmo.FovDegrees; !(f > 0 && f < 180) {
		bad("gizmo.fov_degrees", "must be in (0, 180), got %v", f)
	}
	if c.Gizmo.Viewport <= 0 || c.Gizmo.Margin < 0 {
		bad("gizmo.viewport", "size must be positive and margin non-negative")
	}
	positive("model.target_size", c.Model.TargetSize)
	if c.Model.Workers < 1 {
		bad("model.workers", "must be at least 1, got %d", c.Model.Workers)
	}
	return errors.Join(errs...)
}

// ParsedStrategy returns the parsed camera strategy, falling back to rotate-scene.
func (c CameraConfig) ParsedStrategy() camera.Strategy {
	s, err := camera.ParseStrategy(c.Strategy)
	if err != nil {
		return camera.StrategyRotateScene
	}
	return s
}

// Fov returns the field of view and its limits in radians.
func (c CameraConfig) Fov() (fov, lo, hi float32) {
	return mgl32.DegToRad(c.FovDegrees), mgl32.DegToRad(c.MinFovDegrees), mgl32.DegToRad(c.MaxFovDegrees)
}

// TwistStep returns the per-press twist in radians.
func (g GestureConfig) TwistStep() float32 {
	return mgl32.DegToRad(g.TwistStepDegrees)
}

// Fov returns the gizmo camera's field of view in radians.
func (g GizmoConfig) Fov() float32 {
	return mgl32.DegToRad(g.FovDegrees)
}
