package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("unit-test-secret-with-enough-length")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func failureOf(t *testing.T, err error) Failure {
	t.Helper()
	var tokenErr *TokenError
	require.True(t, errors.As(err, &tokenErr), "expected *TokenError, got %T: %v", err, err)
	return tokenErr.Failure
}

func TestTokenCodec_IssueThenVerify(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenCodec(testSecret, WithClock(fixedClock(issuedAt)))

	for _, subject := range []string{"alice", "bob@example.com", "ünïcødé"} {
		for _, ttl := range []int{1, 15, 60 * 24} {
			issued, err := issuer.IssueMinutes(subject, ttl)
			require.NoError(t, err)
			assert.Equal(t, subject, issued.Subject)
			assert.Equal(t, issuedAt, issued.IssuedAt)
			assert.Equal(t, issuedAt.Add(time.Duration(ttl)*time.Minute), issued.ExpiresAt)

			beforeExpiry := issued.ExpiresAt.Add(-time.Second)
			verifier := NewTokenCodec(testSecret, WithClock(fixedClock(beforeExpiry)))
			got, err := verifier.Verify(issued.Signed)
			require.NoError(t, err)
			assert.Equal(t, subject, got.Username)
		}
	}
}

func TestTokenCodec_IssueRejectsBadInput(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	_, err := codec.IssueMinutes("alice", 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = codec.IssueMinutes("alice", -5)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = codec.Issue("alice", -time.Second)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	_, err = codec.IssueMinutes("   ", 15)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestTokenCodec_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issued, err := NewTokenCodec(testSecret, WithClock(fixedClock(issuedAt))).IssueMinutes("alice", 1)
	require.NoError(t, err)

	for _, now := range []time.Time{issued.ExpiresAt, issued.ExpiresAt.Add(time.Second), issued.ExpiresAt.Add(24 * time.Hour)} {
		_, err := NewTokenCodec(testSecret, WithClock(fixedClock(now))).Verify(issued.Signed)
		require.Error(t, err)
		assert.Equal(t, FailureExpired, failureOf(t, err))
		assert.ErrorIs(t, err, &TokenError{Failure: FailureExpired})
	}
}

func TestTokenCodec_FlippedSignatureCharacter(t *testing.T) {
	codec := NewTokenCodec(testSecret)
	issued, err := codec.IssueMinutes("alice", 15)
	require.NoError(t, err)

	dot := strings.LastIndex(issued.Signed, ".")
	require.Positive(t, dot)

	for i := dot + 1; i < len(issued.Signed); i++ {
		replacement := byte('A')
		if issued.Signed[i] == 'A' {
			replacement = 'B'
		}
		tampered := issued.Signed[:i] + string(replacement) + issued.Signed[i+1:]

		_, err := codec.Verify(tampered)
		require.Error(t, err, "position %d", i)
		assert.Equal(t, FailureInvalidSignature, failureOf(t, err), "position %d", i)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issued, err := NewTokenCodec([]byte("other-secret")).IssueMinutes("alice", 15)
	require.NoError(t, err)

	_, err = NewTokenCodec(testSecret).Verify(issued.Signed)
	assert.Equal(t, FailureInvalidSignature, failureOf(t, err))
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	for _, token := range []string{"invalidToken", "a.b", "a.b.c", "!!!.@@@.###", "x.y.z.w"} {
		_, err := codec.Verify(token)
		require.Error(t, err, token)
		assert.Equal(t, FailureMalformed, failureOf(t, err), token)
	}
}

func TestTokenCodec_Empty(t *testing.T) {
	codec := NewTokenCodec(testSecret)

	for _, token := range []string{"", "   ", "\t"} {
		_, err := codec.Verify(token)
		assert.Equal(t, FailureEmpty, failureOf(t, err))
	}
}

func TestTokenCodec_RequiresExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "alice"}).
		SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewTokenCodec(testSecret).Verify(signed)
	assert.Equal(t, FailureMalformed, failureOf(t, err))
}

func TestTokenCodec_RequiresSubject(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewTokenCodec(testSecret).Verify(signed)
	assert.Equal(t, FailureMalformed, failureOf(t, err))
}

func TestTokenCodec_BadClaimTypesAreMalformed(t *testing.T) {
	tests := map[string]jwt.MapClaims{
		"exp as text":   {"sub": "alice", "exp": "tomorrow"},
		"sub as number": {"sub": 42, "exp": time.Now().Add(time.Hour).Unix()},
	}
	for name, claims := range tests {
		t.Run(name, func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
			require.NoError(t, err)

			_, err = NewTokenCodec(testSecret).Verify(signed)
			assert.Equal(t, FailureMalformed, failureOf(t, err))
		})
	}
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	_, err = NewTokenCodec(testSecret).Verify(signed)
	assert.Equal(t, FailureInvalidSignature, failureOf(t, err))
}

func TestTokenCodec_CopiesSecret(t *testing.T) {
	secret := []byte("mutable-secret")
	codec := NewTokenCodec(secret)
	issued, err := codec.IssueMinutes("alice", 5)
	require.NoError(t, err)

	secret[0] = 'X'

	_, err = codec.Verify(issued.Signed)
	assert.NoError(t, err)
}
