package auth

import (
	"strings"

	"github.com/spec-kit/catalog-service/internal/domain"
)

const bearerPrefix = "Bearer "

// Verifier checks a raw token string.
type Verifier interface {
	Verify(token string) (domain.AuthenticatedSubject, error)
}

// Guard turns an Authorization header value into an authenticated subject.
type Guard struct {
	verifier Verifier
}

// NewGuard builds a Guard over verifier.
func NewGuard(verifier Verifier) *Guard {
	return &Guard{verifier: verifier}
}

// Check requires header to carry the literal "Bearer " prefix followed by a
// token the verifier accepts. Every rejection is a *TokenError.
func (g *Guard) Check(header string) (domain.AuthenticatedSubject, error) {
	if header == "" {
		return domain.AuthenticatedSubject{}, &TokenError{Failure: FailureMissing}
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return domain.AuthenticatedSubject{}, &TokenError{Failure: FailureMalformed}
	}
	return g.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
}
