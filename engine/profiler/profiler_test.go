package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickSamplesOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProfiler(withClock(clock), WithInterval(time.Second), WithLogger(logger))

	for range 39 {
		now = now.Add(25 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.Stats().FPS)

	now = now.Add(25 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.InDelta(t, 40, p.Stats().FPS, 0.01)
	assert.Greater(t, p.Stats().SysMB, 0.0)
	assert.Contains(t, buf.String(), "msg=profiler")
	assert.Contains(t, buf.String(), "fps=")

	now = now.Add(time.Second / 2)
	assert.False(t, p.Tick(), "the window restarts after a sample")
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithLogger(nil))
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
}
