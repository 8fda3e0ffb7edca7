// Package logx configures the process-wide slog logger for the sandbox.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Level is the verbosity the user selected. Messages below it are dropped.
// It can be changed while the program runs.
var Level = new(slog.LevelVar)

// LevelFromFlags returns the level corresponding to the given user flags.
// The flags are evaluated in order, so vv wins over q:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LevelFromString parses a level name such as "debug", "INFO" or "warn+2".
//
// Parameters:
//   - s: the level name
//
// Returns:
//   - slog.Level: the parsed level
//   - error: error if s is not a level name
func LevelFromString(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

type handlerConfig struct {
	level   slog.Leveler
	color   bool
	profile *termenv.Profile
	source  bool
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

// WithLevel sets the minimum level. Defaults to the package Level.
func WithLevel(l slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = l
	}
}

// WithColor toggles ANSI coloring of the level field.
func WithColor(on bool) HandlerOption {
	return func(c *handlerConfig) {
		c.color = on
	}
}

// WithProfile forces a terminal color profile instead of detecting one from the writer.
func WithProfile(p termenv.Profile) HandlerOption {
	return func(c *handlerConfig) {
		c.profile = &p
	}
}

// WithSource adds the calling file and line to each record.
func WithSource(on bool) HandlerOption {
	return func(c *handlerConfig) {
		c.source = on
	}
}

// NewHandler returns a text handler writing to w with an optionally colored level field.
//
// Parameters:
//   - w: the destination
//   - options: handler options
//
// Returns:
//   - slog.Handler: the handler
func NewHandler(w io.Writer, options ...HandlerOption) slog.Handler {
	cfg := &handlerConfig{level: Level, color: true}
	for _, opt := range options {
		opt(cfg)
	}

	opts := &slog.HandlerOptions{Level: cfg.level, AddSource: cfg.source}
	if !cfg.color {
		return slog.NewTextHandler(w, opts)
	}
	var out *termenv.Output
	if cfg.profile != nil {
		out = termenv.NewOutput(w, termenv.WithProfile(*cfg.profile))
	} else {
		out = termenv.NewOutput(w)
	}
	if out.Profile == termenv.Ascii {
		return slog.NewTextHandler(w, opts)
	}
	opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.LevelKey {
			return slog.Attr{}
		}
		return a
	}
	return &colorHandler{
		Handler: slog.NewTextHandler(w, opts),
		w:       w,
		out:     out,
		mu:      &sync.Mutex{},
	}
}

// colorHandler prefixes each record with a colored level and lets the wrapped
// text handler write the rest of the line.
type colorHandler struct {
	slog.Handler
	w   io.Writer
	out *termenv.Output
	mu  *sync.Mutex
}

var _ slog.Handler = &colorHandler{}

func (h *colorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := io.WriteString(h.w, ColorLevel(h.out, r.Level)+" "); err != nil {
		return err
	}
	return h.Handler.Handle(ctx, r)
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorHandler{Handler: h.Handler.WithAttrs(attrs), w: h.w, out: h.out, mu: h.mu}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	return &colorHandler{Handler: h.Handler.WithGroup(name), w: h.w, out: h.out, mu: h.mu}
}

// ColorLevel renders l in the color used for its severity.
func ColorLevel(out *termenv.Output, l slog.Level) string {
	s := out.String(l.String())
	switch {
	case l >= slog.LevelError:
		s = s.Foreground(termenv.ANSIBrightRed).Bold()
	case l >= slog.LevelWarn:
		s = s.Foreground(termenv.ANSIYellow)
	case l >= slog.LevelInfo:
		s = s.Foreground(termenv.ANSICyan)
	default:
		s = s.Foreground(termenv.ANSIBrightBlack)
	}
	return s.String()
}

// SetDefault installs a logger built by NewHandler as the slog default and sets Level to l.
//
// Parameters:
//   - w: the destination
//   - l: the minimum level
//   - color: whether to color the level field when w is a terminal
//
// Returns:
//   - *slog.Logger: the installed logger
func SetDefault(w io.Writer, l slog.Level, color bool) *slog.Logger {
	Level.Set(l)
	logger := slog.New(NewHandler(w, WithLevel(Level), WithColor(color)))
	slog.SetDefault(logger)
	return logger
}
