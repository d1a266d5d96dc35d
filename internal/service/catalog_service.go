package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/validation"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

const productResource = "product"

// CatalogService coordinates product workflows.
type CatalogService struct {
	products repository.ProductRepository
	logger   *zap.Logger
	events   publisher
}

// NewCatalogService builds the service. dispatcher may be nil.
func NewCatalogService(products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger,
		events:   publisher{dispatcher: dispatcher, logger: logger},
	}
}

// List returns every product.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, translate(s.logger, "list products", productResource, err)
	}
	return products, nil
}

// Get returns a product by id. An id that is not a UUID cannot exist.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	canonical, ok := canonicalProductID(id)
	if !ok {
		return nil, apperrors.NewNotFound(productResource)
	}
	product, err := s.products.GetByID(ctx, canonical)
	if err != nil {
		return nil, translate(s.logger, "get product", productResource, err)
	}
	return product, nil
}

// Create validates in and stores a new product, assigning an id if none was
// supplied.
func (s *CatalogService) Create(ctx context.Context, actor string, in validation.ProductInput) (*domain.Product, error) {
	product, err := validation.ProductCreate(in)
	if err != nil {
		return nil, translate(s.logger, "validate product", productResource, err)
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	if err := s.products.Create(ctx, &product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError("id", "already exists")
		}
		return nil, translate(s.logger, "create product", productResource, err)
	}

	s.events.publish(ctx, events.Event{Type: events.EventProductCreated, Actor: actor, ResourceID: product.ID})
	return &product, nil
}

// Update applies the provided fields of in to the product with id.
func (s *CatalogService) Update(ctx context.Context, actor, id string, in validation.ProductInput) (*domain.Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := validation.ProductUpdate(*existing, in)
	if err != nil {
		return nil, translate(s.logger, "validate product", productResource, err)
	}
	if err := s.products.Update(ctx, &updated); err != nil {
		return nil, translate(s.logger, "update product", productResource, err)
	}

	s.events.publish(ctx, events.Event{Type: events.EventProductUpdated, Actor: actor, ResourceID: updated.ID})
	return &updated, nil
}

// Delete removes the product with id.
func (s *CatalogService) Delete(ctx context.Context, actor, id string) error {
	canonical, ok := canonicalProductID(id)
	if !ok {
		return apperrors.NewNotFound(productResource)
	}
	deleted, err := s.products.Delete(ctx, canonical)
	if err != nil {
		return translate(s.logger, "delete product", productResource, err)
	}
	if !deleted {
		return apperrors.NewNotFound(productResource)
	}

	s.events.publish(ctx, events.Event{Type: events.EventProductDeleted, Actor: actor, ResourceID: canonical})
	return nil
}

func canonicalProductID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
