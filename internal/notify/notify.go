// Package notify carries the short user-facing messages raised by editors,
// controllers and the transport gateway.
package notify

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Toast is one message shown to the user.
type Toast struct {
	Level   Level
	Title   string
	Message string
}

// Notifier displays toasts. Implementations must not block.
type Notifier interface {
	Notify(Toast)
}

// Func adapts a plain function to Notifier.
type Func func(Toast)

func (f Func) Notify(t Toast) { f(t) }

// Multi fans a toast out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(t Toast) {
	for _, n := range m {
		if n != nil {
			n.Notify(t)
		}
	}
}

// Discard drops every toast.
var Discard Notifier = Func(func(Toast) {})

// OrDiscard returns n, or Discard when n is nil. A nil pointer or func held
// in the interface counts as nil too.
func OrDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	switch v := reflect.ValueOf(n); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return Discard
		}
	}
	return n
}

// Recorder keeps every toast it receives. The zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of the recorded toasts.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Count returns how many recorded toasts have the given title.
func (r *Recorder) Count(title string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.toasts {
		if t.Title == title {
			n++
		}
	}
	return n
}

// Reset forgets recorded toasts.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = nil
}

// LogNotifier writes toasts to a structured logger, for non-interactive runs.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier returns a LogNotifier on logger, or on slog.Default when nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Notify(t Toast) {
	n.Logger.Log(context.Background(), t.Level.slogLevel(), "notification",
		"title", t.Title,
		"message", t.Message,
	)
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// Helpers for the common levels.

func Info(n Notifier, title, msg string)    { n.Notify(Toast{Level: LevelInfo, Title: title, Message: msg}) }
func Success(n Notifier, title, msg string) { n.Notify(Toast{Level: LevelSuccess, Title: title, Message: msg}) }
func Warning(n Notifier, title, msg string) { n.Notify(Toast{Level: LevelWarning, Title: title, Message: msg}) }
func Error(n Notifier, title, msg string)   { n.Notify(Toast{Level: LevelError, Title: title, Message: msg}) }
