// Package dispatch marshals work from background goroutines onto the UI thread.
package dispatch

import "sync"

// Dispatcher is a FIFO queue of functions. Post may be called from any goroutine;
// Drain runs the queued functions on the goroutine that calls it, normally once per frame
// on the UI thread.
type Dispatcher interface {
	// Post enqueues fn. It returns false if the dispatcher is closed or fn is nil.
	//
	// Parameters:
	//   - fn: the function to run on the draining goroutine
	//
	// Returns:
	//   - bool: true if fn was queued
	Post(fn func()) bool

	// Drain runs every function queued before the call, in posting order.
	// Functions posted while draining run on the next Drain.
	//
	// Returns:
	//   - int: the number of functions run
	Drain() int

	// Pending returns the number of queued functions.
	//
	// Returns:
	//   - int: the queue length
	Pending() int

	// Close drops queued functions and rejects further posts.
	Close()
}

type dispatcher struct {
	mu     *sync.Mutex
	queue  []func()
	spare  []func()
	closed bool
}

var _ Dispatcher = &dispatcher{}

// NewDispatcher creates an empty dispatcher.
//
// Returns:
//   - Dispatcher: the newly created dispatcher
func NewDispatcher() Dispatcher {
	return &dispatcher{mu: &sync.Mutex{}}
}

func (d *dispatcher) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return false
	}
	d.queue = append(d.queue, fn)
	return true
}

func (d *dispatcher) Drain() int {
	d.mu.Lock()
	batch := d.queue
	d.queue = d.spare[:0]
	d.mu.Unlock()

	for _, fn := range batch {
		fn()
	}

	clear(batch)
	d.mu.Lock()
	d.spare = batch[:0]
	d.mu.Unlock()
	return len(batch)
}

func (d *dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.queue = nil
}
