package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/catalog-service/internal/domain"
)

var (
	// ErrInvalidTTL is returned by Issue for a lifetime that is not positive.
	ErrInvalidTTL = errors.New("token ttl must be positive")
	// ErrEmptySubject is returned by Issue for a blank subject.
	ErrEmptySubject = errors.New("token subject must not be empty")
)

// TokenCodec issues and verifies HS256 tokens with a fixed secret.
// It is safe for concurrent use; nothing in it changes after construction.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customises a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces the wall clock used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a codec around secret.
func NewTokenCodec(secret []byte, opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	return c
}

// Issue signs a token for subject that expires ttl after now.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (domain.IssuedToken, error) {
	if strings.TrimSpace(subject) == "" {
		return domain.IssuedToken{}, ErrEmptySubject
	}
	if ttl <= 0 {
		return domain.IssuedToken{}, ErrInvalidTTL
	}

	issuedAt := c.now().Truncate(jwt.TimePrecision)
	expiresAt := issuedAt.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return domain.IssuedToken{}, err
	}
	return domain.IssuedToken{
		Token: domain.Token{
			Subject:   subject,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
		Signed: signed,
	}, nil
}

// IssueMinutes is Issue with the lifetime expressed in whole minutes.
func (c *TokenCodec) IssueMinutes(subject string, ttlMinutes int) (domain.IssuedToken, error) {
	if ttlMinutes <= 0 {
		return domain.IssuedToken{}, ErrInvalidTTL
	}
	return c.Issue(subject, time.Duration(ttlMinutes)*time.Minute)
}

// Verify checks the signature and expiry of token. Failures are always a
// *TokenError whose Failure tells empty, malformed, invalid signature and
// expired apart.
func (c *TokenCodec) Verify(token string) (domain.AuthenticatedSubject, error) {
	if strings.TrimSpace(token) == "" {
		return domain.AuthenticatedSubject{}, &TokenError{Failure: FailureEmpty}
	}

	var claims jwt.RegisteredClaims
	if _, err := c.parser.ParseWithClaims(token, &claims, c.keyFunc); err != nil {
		return domain.AuthenticatedSubject{}, &TokenError{Failure: classify(token, err), Err: err}
	}
	if claims.Subject == "" {
		return domain.AuthenticatedSubject{}, &TokenError{
			Failure: FailureMalformed,
			Err:     errors.New("token has no subject"),
		}
	}
	return domain.AuthenticatedSubject{Username: claims.Subject}, nil
}

func (c *TokenCodec) keyFunc(*jwt.Token) (interface{}, error) {
	return c.secret, nil
}

// classify maps a parser error onto a Failure. A malformed error is an
// invalid signature only when the header and claims decode exactly as the
// parser would decode them, which leaves the signature segment as the cause.
func classify(token string, err error) Failure {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return FailureInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return FailureExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		if headerAndClaimsIntact(token) {
			return FailureInvalidSignature
		}
		return FailureMalformed
	default:
		return FailureMalformed
	}
}

func headerAndClaimsIntact(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	var header map[string]any
	if !decodeSegment(parts[0], &header) {
		return false
	}
	var claims jwt.RegisteredClaims
	return decodeSegment(parts[1], &claims)
}

func decodeSegment(segment string, into any) bool {
	raw, err := base64.RawURLEncoding.Strict().DecodeString(segment)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, into) == nil
}
