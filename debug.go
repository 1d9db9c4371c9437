package yuletide

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used for phase, tracker and config messages.
// A nil logger restores slog.Default.
func SetLogger(l *slog.Logger) {
	pkgLogger.Store(l)
}

// logger returns the package logger tagged with a component name.
func logger(component string) *slog.Logger {
	l := pkgLogger.Load()
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", component)
}

// debugStats holds per-frame timing and particle metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	gestureTime   time.Duration
	animateTime   time.Duration
	groupCount    int
	particleCount int
	phase         Phase
	progress      float64
}

// debugLog writes one frame's stats to the scene's debug output.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.gestureTime + stats.animateTime
	_, _ = fmt.Fprintf(s.debugOut,
		"[yuletide] gesture: %v | animate: %v | total: %v\n",
		stats.gestureTime, stats.animateTime, total)
	_, _ = fmt.Fprintf(s.debugOut,
		"[yuletide] groups: %d | particles: %d | phase: %v | progress: %.3f\n",
		stats.groupCount, stats.particleCount, stats.phase, stats.progress)
}

// SetDebugMode enables or disables per-frame timing stats.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetDebugOutput redirects debug stats. The default is os.Stderr.
func (s *Scene) SetDebugOutput(w io.Writer) {
	s.debugOut = w
}
