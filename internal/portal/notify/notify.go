// Package notify is the fire-and-forget channel for user-facing messages.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Severity classifies a notification.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient message for the user.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier accepts notifications without acknowledging them.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Error builds an error notification with the standard "Error" title.
func Error(description string) Notification {
	return Notification{Title: "Error", Description: description, Severity: SeverityError}
}

// Success builds a success notification.
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: SeveritySuccess}
}

// WriterSink prints notifications as single lines.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, "%s %s: %s\n", marker(n.Severity), n.Title, n.Description)
}

func marker(sev Severity) string {
	switch sev {
	case SeveritySuccess:
		return "[ok]"
	case SeverityError:
		return "[!!]"
	default:
		return "[--]"
	}
}

// LogSink writes notifications to a slog logger at a level matching the severity.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(n Notification) {
	level := slog.LevelInfo
	if n.Severity == SeverityError {
		level = slog.LevelError
	}
	s.logger.LogAttrs(context.Background(), level, "notification",
		slog.String("title", n.Title),
		slog.String("description", n.Description),
		slog.String("severity", string(n.Severity)),
	)
}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.list...)
}

// Count returns how many notifications of the given severity were recorded.
func (r *Recorder) Count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.list {
		if item.Severity == sev {
			n++
		}
	}
	return n
}

// Fanout delivers to every notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, target := range f {
		if target != nil {
			target.Notify(n)
		}
	}
}
