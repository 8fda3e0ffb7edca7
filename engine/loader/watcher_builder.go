package loader

import (
	"log/slog"
	"time"
)

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*watcher)

// WithDebounce sets how long the file must stay quiet before onChange runs.
//
// Parameters:
//   - d: the debounce interval
//
// Returns:
//   - WatcherBuilderOption: a function that applies the debounce option to a watcher
func WithDebounce(d time.Duration) WatcherBuilderOption {
	return func(w *watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatchLogger sets the structured logger used for watcher diagnostics.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - WatcherBuilderOption: a function that applies the logger option to a watcher
func WithWatchLogger(logger *slog.Logger) WatcherBuilderOption {
	return func(w *watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}
