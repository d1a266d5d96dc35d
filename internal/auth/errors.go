package auth

import "fmt"

// Failure names why a bearer token was rejected.
type Failure string

const (
	FailureMissing          Failure = "missing"
	FailureEmpty            Failure = "empty"
	FailureMalformed        Failure = "malformed"
	FailureInvalidSignature Failure = "invalid_signature"
	FailureExpired          Failure = "expired"
)

// TokenError reports a rejected token or Authorization header.
type TokenError struct {
	Failure Failure
	Err     error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Failure, e.Err)
	}
	return "token " + string(e.Failure)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Is matches another *TokenError with the same Failure, so callers can write
// errors.Is(err, &TokenError{Failure: FailureExpired}).
func (e *TokenError) Is(target error) bool {
	t, ok := target.(*TokenError)
	return ok && t.Failure == e.Failure
}
