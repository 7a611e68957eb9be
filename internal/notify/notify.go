// internal/notify/notify.go

// Package notify carries user-facing notification events from the
// domain layer out to whatever presentation surface embeds the client.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind classifies a notification
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification represents a toast/alert payload for the UI to render
type Notification struct {
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives notification events. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// LogNotifier writes notifications to the application log
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a notifier backed by the application logger
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification with structured fields
func (l *LogNotifier) Notify(n Notification) {
	entry := l.logger.WithFields(logrus.Fields{
		"kind":  n.Kind,
		"title": n.Title,
	})
	switch n.Kind {
	case KindError:
		entry.Warn(n.Message)
	default:
		entry.Info(n.Message)
	}
}

// Recorder collects notifications for inspection in tests
type Recorder struct {
	mu     sync.Mutex
	events []Notification
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify appends the notification to the recorded list
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, n)
}

// Events returns a copy of the recorded notifications
func (r *Recorder) Events() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.events))
	copy(out, r.events)
	return out
}
