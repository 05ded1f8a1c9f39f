// Package trace is the globally togglable trace hook for the runtime.
// When disabled (the default) every call is a cheap no-op; when enabled,
// events go to a charmbracelet/log logger and to any registered sinks.
package trace

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Event is one traced runtime occurrence, e.g. a state transition.
type Event struct {
	Frame  uint64
	Kind   string // "enter", "exit", "pause", "resume", "dialog", ...
	Source string // machine or component name
	Detail string
	At     time.Time
}

// Sink receives events while tracing is enabled.
type Sink interface {
	Record(ev Event) error
}

var (
	enabled atomic.Bool
	frame   atomic.Uint64

	mu     sync.RWMutex
	logger = log.NewWithOptions(io.Discard, log.Options{})
	sinks  []Sink
)

// Enable turns tracing on and writes log lines to w.
// A nil writer keeps only the registered sinks.
func Enable(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		w = io.Discard
	}
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "trace",
		Level:           log.DebugLevel,
	})
	enabled.Store(true)
}

// Disable turns tracing off. Sinks stay registered.
func Disable() {
	enabled.Store(false)
}

// Enabled reports whether tracing is on.
func Enabled() bool {
	return enabled.Load()
}

// AddSink registers a sink for subsequent events.
func AddSink(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	sinks = append(sinks, s)
}

// ClearSinks removes all registered sinks.
func ClearSinks() {
	mu.Lock()
	defer mu.Unlock()
	sinks = nil
}

// SetFrame records the current loop frame so events can be stamped with it.
func SetFrame(f uint64) {
	frame.Store(f)
}

// Emitf is Emit with a formatted detail. Nothing is formatted while tracing
// is disabled.
func Emitf(kind, source, format string, args ...any) {
	if !enabled.Load() {
		return
	}
	Emit(kind, source, fmt.Sprintf(format, args...))
}

// Emit records an event if tracing is enabled.
// Sink failures are logged and otherwise ignored.
func Emit(kind, source, detail string) {
	if !enabled.Load() {
		return
	}

	ev := Event{
		Frame:  frame.Load(),
		Kind:   kind,
		Source: source,
		Detail: detail,
		At:     time.Now(),
	}

	mu.RLock()
	defer mu.RUnlock()

	logger.Debug(kind, "frame", ev.Frame, "source", source, "detail", detail)
	for _, s := range sinks {
		if err := s.Record(ev); err != nil {
			logger.Warn("trace sink failed", "error", err)
		}
	}
}
