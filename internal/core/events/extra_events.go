package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeExtraApproved = "extra.approved"
	EventTypeExtraReset    = "extra.reset"
)

// Envelope carries the identity shared by every extra event.
type Envelope struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ExtraID   string    `json:"extra_id"`
}

func newEnvelope(eventType, extraID string) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		ExtraID:   extraID,
	}
}

func (e Envelope) EventType() string     { return e.Type }
func (e Envelope) EventID() string       { return e.ID }
func (e Envelope) OccurredAt() time.Time { return e.Timestamp }
func (e Envelope) ExtraOf() string       { return e.ExtraID }

// ExtraApprovedEvent is published once an extra reaches "aprovado".
type ExtraApprovedEvent struct {
	Envelope
	ApprovedBy string  `json:"approved_by"`
	Valor      float64 `json:"valor"`
}

func NewExtraApprovedEvent(extraID, approvedBy string, valor float64) *ExtraApprovedEvent {
	return &ExtraApprovedEvent{
		Envelope:   newEnvelope(EventTypeExtraApproved, extraID),
		ApprovedBy: approvedBy,
		Valor:      valor,
	}
}

// ExtraResetEvent is published when an edit sends an extra back to
// "pendente", which invalidates any receipt already issued.
type ExtraResetEvent struct {
	Envelope
	UserID string `json:"user_id"`
}

func NewExtraResetEvent(extraID, userID string) *ExtraResetEvent {
	return &ExtraResetEvent{
		Envelope: newEnvelope(EventTypeExtraReset, extraID),
		UserID:   userID,
	}
}
