package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"veridor-server/internal/infra/pubsub"
	"veridor-server/internal/infra/utils"
)

// EventsTopic carries every audit event; the trail worker consumes it.
const EventsTopic pubsub.Topic = "audit_events"

// Event is the audit trail entry emitted for every mutating operation.
// Events are keyed by tenant so a single tenant's trail stays ordered.
type Event struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityKind string    `json:"entity_kind"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Recorder interface {
	Record(ctx context.Context, event Event) error
}

func NewRecorder(factory pubsub.PublisherFactory) (*PubSubRecorder, error) {
	publisher, err := factory.New(EventsTopic, Event{})
	if err != nil {
		return nil, fmt.Errorf("creating audit publisher: %w", err)
	}

	return &PubSubRecorder{publisher: publisher}, nil
}

var _ Recorder = (*PubSubRecorder)(nil)

type PubSubRecorder struct {
	publisher pubsub.Publisher
}

func (r *PubSubRecorder) Record(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = utils.GenerateUUID()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	slog.Debug("recording audit event",
		slog.String("action", event.Action),
		slog.String("entity_kind", event.EntityKind),
		slog.String("entity_id", event.EntityID))

	err := r.publisher.Publish(ctx, pubsub.Key(event.TenantID), event)
	if err != nil {
		return fmt.Errorf("publishing audit event: %w", err)
	}

	return nil
}
