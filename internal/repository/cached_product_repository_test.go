package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// unreachableRedis points at a closed local port so every command fails fast.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCachedProductRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore().Products()
	repo := NewCachedProductRepository(inner, unreachableRedis(t), time.Minute, zap.NewNop())

	p := &domain.Product{ID: "p1", Name: "A", Description: "d", Price: 1, Quantity: 1}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, *p, *got)

	p.Name = "B"
	require.NoError(t, repo.Update(ctx, p))
	got, err = repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	deleted, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedProductRepository_PropagatesInnerErrors(t *testing.T) {
	ctx := context.Background()
	repo := NewCachedProductRepository(NewMemoryStore().Products(), unreachableRedis(t), time.Minute, zap.NewNop())

	assert.ErrorIs(t, repo.Update(ctx, &domain.Product{ID: "missing"}), ErrNotFound)

	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "dup"}))
	assert.ErrorIs(t, repo.Create(ctx, &domain.Product{ID: "dup"}), ErrDuplicate)
}

// countingProducts counts GetByID calls reaching storage and can run a hook
// after the row is read but before it is returned.
type countingProducts struct {
	ProductRepository
	reads     int
	afterRead func()
}

func (c *countingProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	c.reads++
	p, err := c.ProductRepository.GetByID(ctx, id)
	if c.afterRead != nil {
		hook := c.afterRead
		c.afterRead = nil
		hook()
	}
	return p, err
}

func newCachedRepo(t *testing.T) (*CachedProductRepository, *countingProducts, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	inner := &countingProducts{ProductRepository: NewMemoryStore().Products()}
	return NewCachedProductRepository(inner, client, time.Minute, zap.NewNop()), inner, server
}

func TestCachedProductRepository_HitSkipsInner(t *testing.T) {
	ctx := context.Background()
	repo, inner, server := newCachedRepo(t)
	p := &domain.Product{ID: "p1", Name: "A", Description: "d", Price: 1, Quantity: 1}
	require.NoError(t, inner.ProductRepository.Create(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
	assert.Equal(t, 1, inner.reads)
	assert.True(t, server.Exists(productCachePrefix+"p1"))
	assert.Equal(t, time.Minute, server.TTL(productCachePrefix+"p1"))

	got, err = repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
	assert.Equal(t, 1, inner.reads)
}

func TestCachedProductRepository_UpdateWritesThrough(t *testing.T) {
	ctx := context.Background()
	repo, inner, _ := newCachedRepo(t)
	p := &domain.Product{ID: "p1", Name: "A", Description: "d", Price: 1, Quantity: 1}
	require.NoError(t, repo.Create(ctx, p))

	updated := *p
	updated.Name = "B"
	require.NoError(t, repo.Update(ctx, &updated))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Zero(t, inner.reads)
}

func TestCachedProductRepository_DeleteLeavesTombstone(t *testing.T) {
	ctx := context.Background()
	repo, _, server := newCachedRepo(t)
	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "p1", Name: "A", Price: 1}))

	deleted, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	value, err := server.Get(productCachePrefix + "p1")
	require.NoError(t, err)
	assert.Equal(t, tombstone, value)

	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	server.FastForward(tombstoneTTL + time.Second)
	assert.False(t, server.Exists(productCachePrefix+"p1"))
}

func TestCachedProductRepository_ReaderDoesNotOverwriteConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	repo, inner, _ := newCachedRepo(t)
	p := &domain.Product{ID: "p1", Name: "old", Price: 1}
	require.NoError(t, inner.ProductRepository.Create(ctx, p))

	// The update lands between the reader's storage read and its cache fill.
	inner.afterRead = func() {
		require.NoError(t, repo.Update(ctx, &domain.Product{ID: "p1", Name: "new", Price: 1}))
	}
	stale, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "old", stale.Name)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

func TestCachedProductRepository_ReaderDoesNotResurrectConcurrentDelete(t *testing.T) {
	ctx := context.Background()
	repo, inner, _ := newCachedRepo(t)
	require.NoError(t, inner.ProductRepository.Create(ctx, &domain.Product{ID: "p1", Name: "A", Price: 1}))

	inner.afterRead = func() {
		deleted, err := repo.Delete(ctx, "p1")
		require.NoError(t, err)
		require.True(t, deleted)
	}
	_, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedProductRepository_RecreateAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newCachedRepo(t)
	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "p1", Name: "A", Price: 1}))
	_, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, &domain.Product{ID: "p1", Name: "again", Price: 2}))
	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "again", got.Name)
}
