package loader

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/model"
	"golang.org/x/sync/singleflight"
)

// DoneFunc receives the result of an import on the UI thread.
type DoneFunc func(m model.Model, err error)

type importer struct {
	loader     Loader
	dispatcher dispatch.Dispatcher
	lanes      []worker.DynamicWorkerPool
	group      singleflight.Group
	logger     *slog.Logger

	workers int
	nextID  atomic.Int64

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// Importer runs mesh imports off the UI thread.
// Every accepted request gets exactly one DoneFunc call, posted through the dispatcher so
// it runs on the thread that drains it. Concurrent requests for one path share a single
// read. Imports cannot be cancelled and report no progress.
type Importer interface {
	// Import loads path in the background, using the loader cache when possible.
	//
	// Parameters:
	//   - path: the mesh file
	//   - done: called on the UI thread with the result; may be nil
	//
	// Returns:
	//   - bool: false if the importer is closed and the request was dropped
	Import(path string, done DoneFunc) bool

	// Reload drops the cached model for path and imports it again.
	//
	// Parameters:
	//   - path: the mesh file
	//   - done: called on the UI thread with the result; may be nil
	//
	// Returns:
	//   - bool: false if the importer is closed and the request was dropped
	Reload(path string, done DoneFunc) bool

	// Wait blocks until every accepted import has posted its result.
	Wait()

	// Close rejects new requests, waits for running imports and stops the workers.
	Close()
}

var _ Importer = &importer{}

// NewImporter creates an importer that loads with l and posts results to d.
//
// Parameters:
//   - l: the loader that parses and caches meshes
//   - d: the UI-thread dispatcher
//   - options: functional options to configure the importer
//
// Returns:
//   - Importer: the newly created importer
func NewImporter(l Loader, d dispatch.Dispatcher, options ...ImporterBuilderOption) Importer {
	im := &importer{
		loader:     l,
		dispatcher: d,
		logger:     slog.Default(),
		workers:    max(runtime.NumCPU()/2, 1),
	}
	for _, option := range options {
		option(im)
	}
	// One worker per pool: workers share their pool's stop channel and drop ids that are
	// not their own, so Stop only reliably ends a pool of one.
	im.lanes = make([]worker.DynamicWorkerPool, im.workers)
	for i := range im.lanes {
		im.lanes[i] = worker.NewDynamicWorkerPool(1, 64, 1*time.Second)
	}
	return im
}

func (im *importer) Import(path string, done DoneFunc) bool {
	return im.submit(path, false, done)
}

func (im *importer) Reload(path string, done DoneFunc) bool {
	return im.submit(path, true, done)
}

func (im *importer) submit(path string, reload bool, done DoneFunc) bool {
	im.mu.Lock()
	if im.closed {
		im.mu.Unlock()
		return false
	}
	im.wg.Add(1)
	im.mu.Unlock()

	id := int(im.nextID.Add(1))
	im.lanes[id%len(im.lanes)].SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer im.wg.Done()
			m, err := im.load(path, reload)
			im.finish(path, m, err, done)
			return m, err
		},
	})
	return true
}

func (im *importer) load(path string, reload bool) (model.Model, error) {
	key := path
	if reload {
		key = "reload:" + path
	}
	v, err, shared := im.group.Do(key, func() (any, error) {
		start := time.Now()
		if reload {
			im.loader.Invalidate(path)
		}
		m, err := im.loader.Load(path)
		if err != nil {
			return nil, err
		}
		im.logger.Info("model imported",
			slog.String("path", path),
			slog.Int("indices", m.IndexCount()),
			slog.Duration("took", time.Since(start)),
		)
		return m, nil
	})
	if shared {
		im.logger.Debug("import shared with a concurrent request", slog.String("path", path))
	}
	if err != nil {
		return nil, err
	}
	return v.(model.Model), nil
}

// finish hands the single result of one request to the UI thread.
func (im *importer) finish(path string, m model.Model, err error, done DoneFunc) {
	if err != nil {
		im.logger.Error("model import failed", slog.String("path", path), slog.Any("error", err))
	}
	if done == nil {
		return
	}
	if im.dispatcher == nil || !im.dispatcher.Post(func() { done(m, err) }) {
		im.logger.Warn("import result dropped, dispatcher closed", slog.String("path", path))
	}
}

func (im *importer) Wait() {
	im.wg.Wait()
}

func (im *importer) Close() {
	im.mu.Lock()
	if im.closed {
		im.mu.Unlock()
		return
	}
	im.closed = true
	im.mu.Unlock()
	im.wg.Wait()
	for _, lane := range im.lanes {
		lane.Stop()
	}
}
