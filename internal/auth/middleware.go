package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

const subjectKey = "auth_subject"

// FailureRecorder counts rejected requests by reason.
type FailureRecorder interface {
	RecordAuthFailure(reason string)
}

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	guard   *Guard
	logger  *zap.Logger
	metrics FailureRecorder
}

// NewAuthMiddleware constructs middleware. metrics may be nil.
func NewAuthMiddleware(guard *Guard, logger *zap.Logger, metrics FailureRecorder) *AuthMiddleware {
	return &AuthMiddleware{guard: guard, logger: logger, metrics: metrics}
}

// Handle enforces authentication. The client sees the same 401 for every
// failure; the reason is only logged and counted.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	subject, err := m.guard.Check(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		reason := string(FailureMalformed)
		var tokenErr *TokenError
		if errors.As(err, &tokenErr) {
			reason = string(tokenErr.Failure)
		}
		m.logger.Info("authentication rejected",
			zap.String("reason", reason),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if m.metrics != nil {
			m.metrics.RecordAuthFailure(reason)
		}
		return apperrors.NewUnauthorized(err)
	}

	c.Locals(subjectKey, subject)
	return c.Next()
}

// SubjectFromContext retrieves the authenticated subject.
func SubjectFromContext(c *fiber.Ctx) (domain.AuthenticatedSubject, bool) {
	subject, ok := c.Locals(subjectKey).(domain.AuthenticatedSubject)
	return subject, ok
}
