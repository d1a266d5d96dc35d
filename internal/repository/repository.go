package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/catalog-service/internal/domain"
)

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a record collides with a unique key
	// (product id, username).
	ErrDuplicate = errors.New("record already exists")
)

// ProductRepository defines persistence access for products.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository defines persistence access for users. Create assigns ID.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) (bool, error)
}
