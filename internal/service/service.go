package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/validation"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// publisher stamps and publishes audit events. A nil dispatcher drops them.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// translate maps validation and repository errors onto DomainErrors. Anything
// unrecognised is logged and hidden behind a 500.
func translate(logger *zap.Logger, op, resource string, err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		return apperrors.NewValidationError(validationErr.Field, validationErr.Reason)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource)
	}
	logger.Error("storage failure", zap.String("op", op), zap.Error(err))
	return apperrors.NewInternalError(err)
}
