// internal/domain/analytics/tracker.go

// Package analytics batches client usage events and ships them to the
// backend in the background. Tracking is fire-and-forget: a full buffer
// or a failed flush drops events rather than slowing the UI down.
package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is one tracked client action
type Event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Gateway ships event batches to the backend
type Gateway interface {
	SendEvents(ctx context.Context, events []Event) error
}

const (
	defaultBatchSize     = 20
	defaultFlushInterval = 30 * time.Second
	defaultBufferSize    = 256
	flushTimeout         = 10 * time.Second
)

// Tracker collects events and flushes them when the batch fills or the
// interval elapses, whichever comes first.
type Tracker struct {
	ch      chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	closed  sync.Once
	gateway Gateway
	logger  *logrus.Logger

	batchSize     int
	flushInterval time.Duration
}

// NewTracker creates a tracker and starts its background flusher
func NewTracker(gateway Gateway, logger *logrus.Logger) *Tracker {
	t := &Tracker{
		ch:            make(chan Event, defaultBufferSize),
		done:          make(chan struct{}),
		gateway:       gateway,
		logger:        logger,
		batchSize:     defaultBatchSize,
		flushInterval: defaultFlushInterval,
	}
	t.wg.Add(1)
	go t.run()
	return t
}

// Track records an event without blocking. Events are dropped when the
// buffer is full.
func (t *Tracker) Track(name string, properties map[string]any) {
	event := Event{
		Name:       name,
		Properties: properties,
		Timestamp:  time.Now().UTC(),
	}
	select {
	case t.ch <- event:
	default:
		if t.logger != nil {
			t.logger.WithField("event", name).Debug("analytics buffer full, event dropped")
		}
	}
}

// Close stops the flusher and ships any buffered events
func (t *Tracker) Close() {
	t.closed.Do(func() {
		close(t.done)
		t.wg.Wait()
	})
}

func (t *Tracker) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.flushInterval)
	defer ticker.Stop()

	batch := make([]Event, 0, t.batchSize)
	for {
		select {
		case event := <-t.ch:
			batch = append(batch, event)
			if len(batch) >= t.batchSize {
				t.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				t.flush(batch)
				batch = batch[:0]
			}
		case <-t.done:
			// Drain whatever is still buffered before exiting.
			for {
				select {
				case event := <-t.ch:
					batch = append(batch, event)
				default:
					if len(batch) > 0 {
						t.flush(batch)
					}
					return
				}
			}
		}
	}
}

func (t *Tracker) flush(batch []Event) {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	events := make([]Event, len(batch))
	copy(events, batch)

	if err := t.gateway.SendEvents(ctx, events); err != nil {
		if t.logger != nil {
			t.logger.WithError(err).WithField("count", len(events)).Warn("failed to ship analytics events")
		}
		return
	}
	if t.logger != nil {
		t.logger.WithField("count", len(events)).Debug("analytics events shipped")
	}
}
