package sandbox

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-sandbox/config"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/loader"
)

// SessionBuilderOption is a functional option for configuring a Session.
type SessionBuilderOption func(*session)

// WithConfig builds the session from cfg instead of config.Default().
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - SessionBuilderOption: a function that sets the configuration
func WithConfig(cfg config.Config) SessionBuilderOption {
	return func(s *session) {
		s.cfg = cfg
	}
}

// WithProject sets the project name. Empty names fall back to DefaultProject.
//
// Parameters:
//   - name: the project name
//
// Returns:
//   - SessionBuilderOption: a function that sets the project name
func WithProject(name string) SessionBuilderOption {
	return func(s *session) {
		s.project = name
	}
}

// WithDispatcher posts import results to d, which the caller drains on the UI thread.
// Without it the session owns a dispatcher and drains it in Tick.
//
// Parameters:
//   - d: the UI-thread dispatcher
//
// Returns:
//   - SessionBuilderOption: a function that sets the dispatcher
func WithDispatcher(d dispatch.Dispatcher) SessionBuilderOption {
	return func(s *session) {
		s.dispatcher = d
	}
}

// WithLoader shares a mesh loader and its cache between sessions.
func WithLoader(l loader.Loader) SessionBuilderOption {
	return func(s *session) {
		s.loader = l
	}
}

// WithLogger sets the session logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) SessionBuilderOption {
	return func(s *session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
