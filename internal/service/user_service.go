package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/validation"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

const userResource = "user"

// UserService coordinates user account workflows. Stored passwords go through
// the configured hasher.
type UserService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	logger *zap.Logger
	events publisher
}

// NewUserService builds the service. dispatcher may be nil.
func NewUserService(users repository.UserRepository, hasher auth.PasswordHasher, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
		events: publisher{dispatcher: dispatcher, logger: logger},
	}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, translate(s.logger, "list users", userResource, err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, translate(s.logger, "get user", userResource, err)
	}
	return user, nil
}

// Create validates in, hashes the password and stores the user. The storage
// layer assigns the id.
func (s *UserService) Create(ctx context.Context, actor string, in validation.UserInput) (*domain.User, error) {
	user, err := s.prepare(in)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, s.writeError("create user", err)
	}

	s.events.publish(ctx, events.Event{Type: events.EventUserCreated, Actor: actor, ResourceID: formatUserID(user.ID)})
	return &user, nil
}

// Update replaces the username and password of the user with id.
func (s *UserService) Update(ctx context.Context, actor string, id int64, in validation.UserInput) (*domain.User, error) {
	user, err := s.prepare(in)
	if err != nil {
		return nil, err
	}
	user.ID = id
	if err := s.users.Update(ctx, &user); err != nil {
		return nil, s.writeError("update user", err)
	}

	s.events.publish(ctx, events.Event{Type: events.EventUserUpdated, Actor: actor, ResourceID: formatUserID(id)})
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, actor string, id int64) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return translate(s.logger, "delete user", userResource, err)
	}
	if !deleted {
		return apperrors.NewNotFound(userResource)
	}

	s.events.publish(ctx, events.Event{Type: events.EventUserDeleted, Actor: actor, ResourceID: formatUserID(id)})
	return nil
}

func (s *UserService) prepare(in validation.UserInput) (domain.User, error) {
	user, err := validation.User(in)
	if err != nil {
		return domain.User{}, translate(s.logger, "validate user", userResource, err)
	}
	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return domain.User{}, translate(s.logger, "hash password", userResource, err)
	}
	user.Password = hashed
	return user, nil
}

func (s *UserService) writeError(op string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewValidationError("username", "already exists")
	}
	return translate(s.logger, op, userResource, err)
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
