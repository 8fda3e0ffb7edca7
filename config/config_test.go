package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, camera.StrategyRotateScene, cfg.Camera.ParsedStrategy())
	assert.Equal(t, float32(0.9), cfg.Picker.Threshold)
	assert.Equal(t, float32(0.01), cfg.Gesture.Sensitivity)
	assert.Equal(t, camera.DefaultDistance, cfg.Camera.Distance)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOMLKeepsUnsetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.toml")
	data := `
[camera]
strategy = "move-camera"
duration = 0.5

[picker]
threshold = 0.8
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, camera.StrategyMoveCamera, cfg.Camera.ParsedStrategy())
	assert.Equal(t, float32(0.5), cfg.Camera.Duration)
	assert.Equal(t, float32(0.8), cfg.Picker.Threshold)
	assert.Equal(t, Default().Camera.Distance, cfg.Camera.Distance)
	assert.Equal(t, Default().Window, cfg.Window)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yml")
	data := "gesture:\n  sensitivity: 0.02\ngrid:\n  visible: false\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.02), cfg.Gesture.Sensitivity)
	assert.False(t, cfg.Grid.Visible)
	assert.Equal(t, Default().Gesture.TapSlop, cfg.Gesture.TapSlop)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.toml")
	require.NoError(t, os.WriteFile(path, []byte("[picker]\nthreshold = 1.5\n"), 0o644))

	cfg, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera\nstrategy ="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Camera.Strategy = camera.StrategyMoveCamera.String()
	cfg.Grid.HalfLines = 8
	cfg.Log.Level = "debug"

	for _, name := range []string{"nested/sandbox.toml", "nested/sandbox.yaml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, cfg), name)
		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, cfg, got, name)
	}

	assert.ErrorIs(t, Save(filepath.Join(dir, "sandbox.json"), cfg), ErrUnsupportedFormat)
}

func TestValidateCollectsEveryError(t *testing.T) {
	cfg := Default()
	cfg.Camera.Strategy = "teleport"
	cfg.Camera.MinFovDegrees = 90
	cfg.Camera.FovDegrees = 60
	cfg.Model.Workers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "camera.strategy")
	assert.Contains(t, err.Error(), "camera.fov_degrees")
	assert.Contains(t, err.Error(), "model.workers")
}

func TestRadianAccessors(t *testing.T) {
	cfg := Default()
	fov, lo, hi := cfg.Camera.Fov()
	assert.InDelta(t, mgl32.DegToRad(60), fov, 1e-6)
	assert.InDelta(t, mgl32.DegToRad(5), lo, 1e-6)
	assert.InDelta(t, mgl32.DegToRad(120), hi, 1e-6)
	assert.InDelta(t, mgl32.DegToRad(5), cfg.Gesture.TwistStep(), 1e-6)
	assert.InDelta(t, mgl32.DegToRad(60), cfg.Gizmo.Fov(), 1e-6)
}

func TestParsedStrategyFallsBack(t *testing.T) {
	c := CameraConfig{Strategy: "bogus"}
	assert.Equal(t, camera.StrategyRotateScene, c.ParsedStrategy())
}
