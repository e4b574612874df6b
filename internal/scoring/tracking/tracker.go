// internal/scoring/tracking/tracker.go
// Package tracking records which scored items were surfaced to users.
// Tracking is strictly best-effort: a full buffer drops the event, a sink
// failure is logged and counted, and neither ever blocks or fails a scoring
// call.
package tracking

import (
	"context"
	"sync"
	"time"

	"marketplace-scoring/internal/common/logger"
	"marketplace-scoring/internal/common/metrics"
	"marketplace-scoring/internal/models"
)

// publishTimeout bounds a single sink publish so a stuck sink cannot wedge
// the worker.
const publishTimeout = 5 * time.Second

// Sink delivers exposure events to a destination.
type Sink interface {
	Publish(ctx context.Context, event models.ExposureEvent) error
}

// Tracker fans exposure events through a bounded buffer to a sink on a
// background goroutine.
type Tracker struct {
	events chan models.ExposureEvent
	sink   Sink
	logger logger.Logger

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewTracker starts the delivery worker. bufferSize bounds how many events
// may be in flight before new ones are dropped.
func NewTracker(sink Sink, bufferSize int, log logger.Logger) *Tracker {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	t := &Tracker{
		events: make(chan models.ExposureEvent, bufferSize),
		sink:   sink,
		logger: log.WithFields(map[string]interface{}{"component": "tracking"}),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

// Track enqueues an event. It never blocks: when the buffer is full, or the
// tracker is already closed, the event is dropped and counted.
func (t *Tracker) Track(event models.ExposureEvent) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		metrics.TrackingEventsDropped.Inc()
		return
	}
	select {
	case t.events <- event:
	default:
		metrics.TrackingEventsDropped.Inc()
		t.logger.Debug("exposure event dropped, buffer full", map[string]interface{}{
			"itemId": event.ItemID,
		})
	}
}

// Close stops intake, drains the buffer, and waits for the worker to finish.
func (t *Tracker) Close() {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		close(t.events)
		t.mu.Unlock()
		<-t.done
	})
}

func (t *Tracker) run() {
	defer close(t.done)
	for event := range t.events {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := t.sink.Publish(ctx, event); err != nil {
			metrics.TrackingPublishErrors.Inc()
			t.logger.Warn("exposure publish failed", map[string]interface{}{
				"itemId": event.ItemID,
				"error":  err.Error(),
			})
		}
		cancel()
	}
}
