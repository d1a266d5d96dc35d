package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestUser(t *testing.T) {
	u, err := User(UserInput{Username: ptr("alice"), Password: ptr("pw")})
	require.NoError(t, err)
	assert.Equal(t, domain.User{Username: "alice", Password: "pw"}, u)

	_, err = User(UserInput{Password: ptr("pw")})
	requireFieldError(t, err, "username")

	_, err = User(UserInput{Username: ptr("alice"), Password: ptr("")})
	requireFieldError(t, err, "password")
}
