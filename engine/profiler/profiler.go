package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one sampling window of frame and memory statistics.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics and logs them once per interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	logger         *slog.Logger
	now            func() time.Time
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are sampled. Non-positive values are ignored.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the logger statistics are written to. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}

// withClock replaces time.Now for tests.
func withClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
		p.lastTime = now()
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: profiler options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame. When the interval has elapsed it samples
// FPS, heap usage, allocation rate and GC pauses, logs them at debug level and
// makes them available through Stats.
//
// Returns:
//   - bool: true if stats were sampled this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if s.GCCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%256] / 1000
		start := p.lastGCCount
		if s.GCCount-start > 256 {
			start = s.GCCount - 256
		}
		for i := start; i < s.GCCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Debug("profiler",
		"fps", s.FPS,
		"heap_mb", s.HeapMB,
		"alloc_mb_s", s.AllocRateMB,
		"gc", s.GCCount,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.last = s
	p.frameCount = 0
	p.lastTime = current
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Stats returns the most recent sample. It is zero until the first interval elapses.
func (p *Profiler) Stats() Stats {
	return p.last
}
