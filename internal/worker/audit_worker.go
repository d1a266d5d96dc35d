package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
)

// StartAuditWorker subscribes an audit logger to every event type.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			audit.Info(string(e.Type),
				zap.String("actor", e.Actor),
				zap.String("resource_id", e.ResourceID),
				zap.Time("at", e.Timestamp),
				zap.String("detail", e.Detail),
			)
			return nil
		})
	}
}
