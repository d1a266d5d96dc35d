package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
)

const (
	productCachePrefix = "catalog:product:"
	// tombstone marks a recently deleted product so that a reader holding a
	// pre-delete row cannot repopulate the entry.
	tombstone    = "-"
	tombstoneTTL = 30 * time.Second
)

// CachedProductRepository adds a Redis read-through cache for GetByID on top
// of another ProductRepository. Reads populate with SETNX; writes go through
// to the cache after the inner repository succeeds, and deletes leave a
// tombstone. A reader racing a writer therefore never overwrites the newer
// entry. Redis failures are logged and the inner repository is used instead.
type CachedProductRepository struct {
	inner  ProductRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProductRepository wraps inner.
func NewCachedProductRepository(inner ProductRepository, client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedProductRepository {
	return &CachedProductRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

type cachedProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (r *CachedProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.inner.List(ctx)
}

func (r *CachedProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productCachePrefix + id

	raw, err := r.client.Get(ctx, key).Bytes()
	populate := true
	switch {
	case err == nil && string(raw) == tombstone:
		populate = false
	case err == nil:
		var cached cachedProduct
		if uerr := json.Unmarshal(raw, &cached); uerr == nil {
			p := domain.Product(cached)
			return &p, nil
		}
		r.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
		r.evict(ctx, id)
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
	}

	p, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if populate {
		r.store(ctx, p, false)
	}
	return p, nil
}

func (r *CachedProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if err := r.inner.Create(ctx, p); err != nil {
		return err
	}
	r.store(ctx, p, true)
	return nil
}

func (r *CachedProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if err := r.inner.Update(ctx, p); err != nil {
		r.evict(ctx, p.ID)
		return err
	}
	r.store(ctx, p, true)
	return nil
}

func (r *CachedProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := r.inner.Delete(ctx, id)
	if err != nil {
		r.evict(ctx, id)
		return deleted, err
	}
	key := productCachePrefix + id
	if serr := r.client.Set(ctx, key, tombstone, r.tombstoneTTL()).Err(); serr != nil {
		r.logger.Warn("product cache tombstone failed", zap.String("key", key), zap.Error(serr))
		r.evict(ctx, id)
	}
	return deleted, nil
}

// store caches p. Readers only fill an empty slot; writers overwrite.
func (r *CachedProductRepository) store(ctx context.Context, p *domain.Product, overwrite bool) {
	key := productCachePrefix + p.ID
	payload, err := json.Marshal(cachedProduct(*p))
	if err != nil {
		return
	}
	if overwrite {
		err = r.client.Set(ctx, key, payload, r.ttl).Err()
	} else {
		err = r.client.SetNX(ctx, key, payload, r.ttl).Err()
	}
	if err != nil {
		r.logger.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
		if overwrite {
			r.evict(ctx, p.ID)
		}
	}
}

func (r *CachedProductRepository) tombstoneTTL() time.Duration {
	if r.ttl > 0 && r.ttl < tombstoneTTL {
		return r.ttl
	}
	return tombstoneTTL
}

func (r *CachedProductRepository) evict(ctx context.Context, id string) {
	if err := r.client.Del(ctx, productCachePrefix+id).Err(); err != nil {
		r.logger.Warn("product cache evict failed", zap.String("id", id), zap.Error(err))
	}
}
