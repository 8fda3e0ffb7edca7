package dispatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainRunsInOrder(t *testing.T) {
	d := NewDispatcher()
	var got []int
	for i := range 3 {
		assert.True(t, d.Post(func() { got = append(got, i) }))
	}
	assert.Equal(t, 3, d.Pending())
	assert.Equal(t, 3, d.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Zero(t, d.Drain())
}

func TestPostDuringDrainRunsNextDrain(t *testing.T) {
	d := NewDispatcher()
	ran := 0
	d.Post(func() {
		d.Post(func() { ran++ })
	})
	assert.Equal(t, 1, d.Drain())
	assert.Zero(t, ran)
	assert.Equal(t, 1, d.Drain())
	assert.Equal(t, 1, ran)
}

func TestConcurrentPosts(t *testing.T) {
	d := NewDispatcher()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Post(func() {})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, d.Drain())
}

func TestCloseRejectsPosts(t *testing.T) {
	d := NewDispatcher()
	d.Post(func() { t.Fatal("dropped work must not run") })
	d.Close()
	assert.False(t, d.Post(func() {}))
	assert.False(t, NewDispatcher().Post(nil))
	assert.Zero(t, d.Drain())
}
