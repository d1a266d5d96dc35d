package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

var errInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates login and bearer token checks.
type AuthService struct {
	users     repository.UserRepository
	hasher    auth.PasswordHasher
	codec     *auth.TokenCodec
	guard     *auth.Guard
	tokenTTL  time.Duration
	bootstrap domain.Credentials
	logger    *zap.Logger
	events    publisher
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Hasher     auth.PasswordHasher
	Codec      *auth.TokenCodec
	TokenTTL   time.Duration
	Bootstrap  domain.Credentials
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:     deps.UserRepo,
		hasher:    deps.Hasher,
		codec:     deps.Codec,
		guard:     auth.NewGuard(deps.Codec),
		tokenTTL:  deps.TokenTTL,
		bootstrap: deps.Bootstrap,
		logger:    deps.Logger,
		events:    publisher{dispatcher: deps.Dispatcher, logger: deps.Logger},
	}
}

// Login checks creds against the stored user and issues a token. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (domain.IssuedToken, error) {
	if creds.Username == "" || creds.Password == "" {
		return domain.IssuedToken{}, s.loginFailed(ctx, creds.Username, "missing credentials")
	}

	user, err := s.users.GetByUsername(ctx, creds.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.IssuedToken{}, s.loginFailed(ctx, creds.Username, "unknown user")
	}
	if err != nil {
		return domain.IssuedToken{}, translate(s.logger, "find user for login", userResource, err)
	}

	if err := s.hasher.Compare(user.Password, creds.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.IssuedToken{}, translate(s.logger, "compare password", userResource, err)
		}
		return domain.IssuedToken{}, s.loginFailed(ctx, creds.Username, "wrong password")
	}

	issued, err := s.codec.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return domain.IssuedToken{}, translate(s.logger, "issue token", userResource, err)
	}
	s.events.publish(ctx, events.Event{Type: events.EventLoginSucceeded, Actor: user.Username})
	return issued, nil
}

// Authenticate resolves an Authorization header value.
func (s *AuthService) Authenticate(header string) (domain.AuthenticatedSubject, error) {
	return s.guard.Check(header)
}

// Guard exposes the guard for middleware usage.
func (s *AuthService) Guard() *auth.Guard {
	return s.guard
}

// EnsureBootstrapUser creates the configured bootstrap user if it does not
// exist yet. It does nothing when no bootstrap credentials are set.
func (s *AuthService) EnsureBootstrapUser(ctx context.Context) error {
	if s.bootstrap.Username == "" || s.bootstrap.Password == "" {
		return nil
	}
	_, err := s.users.GetByUsername(ctx, s.bootstrap.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hashed, err := s.hasher.Hash(s.bootstrap.Password)
	if err != nil {
		return err
	}
	user := domain.User{Username: s.bootstrap.Username, Password: hashed}
	if err := s.users.Create(ctx, &user); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	s.logger.Info("bootstrap user ensured", zap.String("username", user.Username))
	return nil
}

func (s *AuthService) loginFailed(ctx context.Context, username, reason string) error {
	s.logger.Info("login rejected", zap.String("username", username), zap.String("reason", reason))
	s.events.publish(ctx, events.Event{Type: events.EventLoginFailed, Actor: username, Detail: reason})
	return apperrors.NewUnauthorized(errInvalidCredentials)
}
