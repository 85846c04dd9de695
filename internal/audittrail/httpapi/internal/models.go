package internal

import (
	"time"

	"veridor-server/internal/shared_kernel/audit"
)

type EventResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func ToEventResponse(event audit.Event) EventResponse {
	return EventResponse{
		ID:         event.ID,
		UserID:     event.UserID,
		Action:     event.Action,
		EntityKind: event.EntityKind,
		EntityID:   event.EntityID,
		OccurredAt: event.OccurredAt,
	}
}
