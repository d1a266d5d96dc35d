package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

func newAuthService(t *testing.T, bootstrap domain.Credentials) (*AuthService, repository.UserRepository, *recorder) {
	t.Helper()
	users := repository.NewMemoryStore().Users()
	rec, dispatcher := newRecorder()
	svc := NewAuthService(AuthDependencies{
		UserRepo:   users,
		Hasher:     auth.PlainHasher{},
		Codec:      auth.NewTokenCodec([]byte("test-secret")),
		TokenTTL:   15 * time.Minute,
		Bootstrap:  bootstrap,
		Dispatcher: dispatcher,
		Logger:     nopLogger(),
	})
	return svc, users, rec
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	svc, users, rec := newAuthService(t, domain.Credentials{})
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &domain.User{Username: "alice", Password: "pw"}))

	issued, err := svc.Login(ctx, domain.Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", issued.Subject)
	assert.Equal(t, 15*time.Minute, issued.ExpiresAt.Sub(issued.IssuedAt))

	subject, err := svc.Authenticate("Bearer " + issued.Signed)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject.Username)

	_, err = svc.Authenticate("Bearer invalidToken")
	assert.ErrorIs(t, err, &auth.TokenError{Failure: auth.FailureMalformed})
	assert.Equal(t, []events.EventType{events.EventLoginSucceeded}, rec.seen())
}

func TestAuthService_LoginRejections(t *testing.T) {
	svc, users, rec := newAuthService(t, domain.Credentials{})
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &domain.User{Username: "alice", Password: "pw"}))

	for _, creds := range []domain.Credentials{
		{Username: "alice", Password: "wrong"},
		{Username: "bob", Password: "pw"},
		{Username: "", Password: ""},
	} {
		_, err := svc.Login(ctx, creds)
		domainErr := requireDomainError(t, err, apperrors.CodeUnauthorized)
		assert.Equal(t, "unauthorized", domainErr.Message)
	}
	assert.Len(t, rec.seen(), 3)
	for _, seen := range rec.seen() {
		assert.Equal(t, events.EventLoginFailed, seen)
	}
}

func TestAuthService_EnsureBootstrapUser(t *testing.T) {
	svc, users, _ := newAuthService(t, domain.Credentials{Username: "admin", Password: "admin"})
	ctx := context.Background()

	require.NoError(t, svc.EnsureBootstrapUser(ctx))
	require.NoError(t, svc.EnsureBootstrapUser(ctx))

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Login(ctx, domain.Credentials{Username: "admin", Password: "admin"})
	assert.NoError(t, err)
}

func TestAuthService_EnsureBootstrapUserDisabled(t *testing.T) {
	svc, users, _ := newAuthService(t, domain.Credentials{})
	require.NoError(t, svc.EnsureBootstrapUser(context.Background()))

	list, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
