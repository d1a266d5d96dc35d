package domain

import "time"

// Credentials are presented once per login attempt and never stored.
type Credentials struct {
	Username string
	Password string
}

// AuthenticatedSubject is the caller identity recovered from a valid token.
// It lives for a single request.
type AuthenticatedSubject struct {
	Username string
}

// Token describes the claims carried by an issued bearer token.
type Token struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken pairs the signed token string with its claims.
type IssuedToken struct {
	Token
	Signed string
}
