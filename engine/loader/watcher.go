package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a watched file must stay quiet before a change is reported.
const DefaultDebounce = 250 * time.Millisecond

type watcher struct {
	fs       *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(path string)
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// Watcher reports changes to one mesh file. Editors often replace files by writing a
// temporary file and renaming it, so the parent directory is watched and events are
// filtered by name. Bursts of events are collapsed into one callback.
type Watcher interface {
	// Path returns the watched file.
	Path() string

	// Close stops watching. Pending callbacks are discarded.
	//
	// Returns:
	//   - error: error from the underlying watcher
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher starts watching path. onChange runs on a background goroutine after the file
// has been written, created or renamed into place and then left alone for the debounce
// interval.
//
// Parameters:
//   - path: the file to watch
//   - onChange: called with path after each settled change
//   - options: functional options to configure the watcher
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the watch could not be established
func NewWatcher(path string, onChange func(path string), options ...WatcherBuilderOption) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &watcher{
		fs:       fs,
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}
	for _, option := range options {
		option(w)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *watcher) Path() string {
	return w.path
}

func (w *watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("model watcher error", slog.String("path", w.path), slog.Any("error", err))
		}
	}
}

func (w *watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}
	w.logger.Debug("model file changed", slog.String("path", w.path))
	if w.onChange != nil {
		w.onChange(w.path)
	}
}

func (w *watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
