package workers

import (
	"context"
	"fmt"
	"log/slog"

	"veridor-server/internal/audittrail/usecases"
	"veridor-server/internal/infra/async"
	"veridor-server/internal/infra/pubsub"
	"veridor-server/internal/shared_kernel/audit"
)

func NewTrailWorker(
	consumerFactory pubsub.ConsumerFactory,
	repository usecases.TrailRepository,
) *TrailWorker {
	return &TrailWorker{
		consumer:   consumerFactory.New(),
		repository: repository,
	}
}

var _ async.Worker = (*TrailWorker)(nil)

// TrailWorker drains the audit topic into the audit_trail table. Writes
// never wait on it, so a broker outage delays the trail instead of
// failing requests.
type TrailWorker struct {
	consumer   pubsub.Consumer
	repository usecases.TrailRepository
}

func (w *TrailWorker) Run(ctx context.Context, done func()) {
	defer done()

	handler := func(ctx context.Context, _ pubsub.Key, message pubsub.Prototype) error {
		event, ok := message.(audit.Event)
		if !ok {
			return fmt.Errorf("unexpected message type %T on topic %s", message, audit.EventsTopic)
		}

		if err := w.repository.Save(ctx, event); err != nil {
			return fmt.Errorf("persisting audit event: %w", err)
		}

		return nil
	}

	go func() {
		if err := w.consumer.Consume(audit.EventsTopic, handler, audit.Event{}); err != nil {
			slog.Error("consuming audit events", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()
	slog.Warn("audit trail worker cancelled")
}

func (w *TrailWorker) Shutdown() {}
