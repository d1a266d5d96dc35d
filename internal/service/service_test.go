package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

var errStorageDown = errors.New("connection refused")

func strPtr(s string) *string { return &s }

// spyProducts counts calls that reach storage and can fail them on demand.
type spyProducts struct {
	repository.ProductRepository
	mu    sync.Mutex
	calls int
	fail  error
}

func (s *spyProducts) hit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.fail
}

func (s *spyProducts) List(ctx context.Context) ([]domain.Product, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return s.ProductRepository.List(ctx)
}

func (s *spyProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return s.ProductRepository.GetByID(ctx, id)
}

func (s *spyProducts) Create(ctx context.Context, p *domain.Product) error {
	if err := s.hit(); err != nil {
		return err
	}
	return s.ProductRepository.Create(ctx, p)
}

func (s *spyProducts) Update(ctx context.Context, p *domain.Product) error {
	if err := s.hit(); err != nil {
		return err
	}
	return s.ProductRepository.Update(ctx, p)
}

func (s *spyProducts) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.hit(); err != nil {
		return false, err
	}
	return s.ProductRepository.Delete(ctx, id)
}

// recorder captures published event types.
type recorder struct {
	mu    sync.Mutex
	types []events.EventType
}

func newRecorder() (*recorder, events.Dispatcher) {
	r := &recorder{}
	d := events.NewInMemoryDispatcher()
	for _, t := range events.AllEventTypes {
		d.Subscribe(t, func(_ context.Context, e events.Event) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.types = append(r.types, e.Type)
			return nil
		})
	}
	return r, d
}

func (r *recorder) seen() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.EventType(nil), r.types...)
}

func requireDomainError(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

func nopLogger() *zap.Logger { return zap.NewNop() }
