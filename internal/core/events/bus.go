package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is something that happened to an extra. ExtraOf names the extra so
// every log line and handler can key on it.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	ExtraOf() string
}

type Handler func(ctx context.Context, event Event) error

// Publisher is the side of the bus that services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// EventBus fans extra lifecycle events out to in-process subscribers.
type EventBus struct {
	handlers map[string][]Handler
	logger   *slog.Logger
	mu       sync.RWMutex
	wg       sync.WaitGroup
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.logger.Info("event handler registered",
		"event_type", eventType,
		"total_handlers", len(eb.handlers[eventType]))
}

func (eb *EventBus) handlersFor(event Event) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return eb.handlers[event.EventType()]
}

func (eb *EventBus) eventLogger(event Event) *slog.Logger {
	return eb.logger.With(
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"extra_id", event.ExtraOf())
}

// Publish returns immediately. Handlers run on a context detached from the
// caller's cancellation, since the request that approved an extra ends long
// before its receipt is stored.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := eb.handlersFor(event)
	log := eb.eventLogger(event)
	if len(handlers) == 0 {
		log.Debug("no handlers for event type")
		return nil
	}
	log.Info("publishing event", "handlers_count", len(handlers))

	hctx := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		eb.wg.Add(1)
		go eb.dispatch(hctx, log, handler, event)
	}
	return nil
}

func (eb *EventBus) dispatch(ctx context.Context, log *slog.Logger, h Handler, event Event) {
	defer eb.wg.Done()
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("event handler panicked", "panic", rec)
		}
	}()

	if err := h(ctx, event); err != nil {
		log.Error("event handler failed", "error", err)
	}
}

// PublishSync runs handlers inline in subscription order and stops at the
// first error.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	handlers := eb.handlersFor(event)
	log := eb.eventLogger(event)
	if len(handlers) == 0 {
		log.Debug("no handlers for event type")
		return nil
	}
	log.Info("publishing event synchronously", "handlers_count", len(handlers))

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.Error("event handler failed", "error", err)
			return fmt.Errorf("handler failed for event %s of extra %s: %w", event.EventType(), event.ExtraOf(), err)
		}
	}
	return nil
}

// Wait blocks until every asynchronously dispatched handler has returned.
func (eb *EventBus) Wait() {
	eb.wg.Wait()
}
