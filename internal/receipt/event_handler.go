package receipt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/sistema-extras/internal/core/events"
)

type Enqueuer interface {
	Enqueue(job Job) error
}

type Invalidator interface {
	Invalidate(ctx context.Context, extraID string) error
}

type EventHandler struct {
	queue   Enqueuer
	service Invalidator
	logger  *slog.Logger
}

func NewEventHandler(queue Enqueuer, service Invalidator, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		queue:   queue,
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandleExtraApproved(ctx context.Context, event events.Event) error {
	approved, ok := event.(*events.ExtraApprovedEvent)
	if !ok {
		h.logger.Error("invalid event type for extra approved handler", "event_type", event.EventType())
		return fmt.Errorf("expected ExtraApprovedEvent, got %T", event)
	}

	if err := h.queue.Enqueue(Job{ExtraID: approved.ExtraID}); err != nil {
		// the receipt is rebuilt on the first read instead
		h.logger.Warn("receipt generation not queued",
			"error", err,
			"extra_id", approved.ExtraID,
			"event_id", approved.EventID())
		return nil
	}

	h.logger.Info("receipt generation queued",
		"extra_id", approved.ExtraID,
		"approved_by", approved.ApprovedBy,
		"event_id", approved.EventID())
	return nil
}

func (h *EventHandler) HandleExtraReset(ctx context.Context, event events.Event) error {
	reset, ok := event.(*events.ExtraResetEvent)
	if !ok {
		h.logger.Error("invalid event type for extra reset handler", "event_type", event.EventType())
		return fmt.Errorf("expected ExtraResetEvent, got %T", event)
	}

	if err := h.service.Invalidate(ctx, reset.ExtraID); err != nil {
		return fmt.Errorf("invalidate receipt for extra %s: %w", reset.ExtraID, err)
	}

	h.logger.Info("receipt invalidated", "extra_id", reset.ExtraID, "event_id", reset.EventID())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeExtraApproved, h.HandleExtraApproved)
	eventBus.Subscribe(events.EventTypeExtraReset, h.HandleExtraReset)

	h.logger.Info("receipt event handlers registered",
		"handlers", []string{events.EventTypeExtraApproved, events.EventTypeExtraReset})
}
