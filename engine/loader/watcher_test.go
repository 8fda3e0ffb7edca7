package loader

import (
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSettledChanges(t *testing.T) {
	path := writeSTL(t, "pyramid.stl", pyramidSTL)
	var calls atomic.Int32
	w, err := NewWatcher(path, func(string) { calls.Add(1) }, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(pyramidSTL), 0o644))
	}
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst collapses into one callback")
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	path := writeSTL(t, "pyramid.stl", pyramidSTL)
	var calls atomic.Int32
	w, err := NewWatcher(path, func(string) { calls.Add(1) }, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path+".bak", []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load())
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
