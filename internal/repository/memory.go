package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// MemoryStore keeps products and users in process memory. A single mutex
// covers every operation so that existence checks and the writes that depend
// on them are atomic.
type MemoryStore struct {
	mu         sync.Mutex
	products   map[string]domain.Product
	order      []string
	users      map[int64]domain.User
	nextUserID int64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[string]domain.Product),
		users:      make(map[int64]domain.User),
		nextUserID: 1,
	}
}

// Products exposes the store as a ProductRepository.
func (s *MemoryStore) Products() ProductRepository {
	return memoryProducts{s}
}

// Users exposes the store as a UserRepository.
func (s *MemoryStore) Users() UserRepository {
	return memoryUsers{s}
}

type memoryProducts struct {
	s *MemoryStore
}

func (r memoryProducts) List(_ context.Context) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Product, 0, len(r.s.order))
	for _, id := range r.s.order {
		out = append(out, r.s.products[id])
	}
	return out, nil
}

func (r memoryProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r memoryProducts) Create(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.products[product.ID]; exists {
		return ErrDuplicate
	}
	r.s.products[product.ID] = *product
	r.s.order = append(r.s.order, product.ID)
	return nil
}

func (r memoryProducts) Update(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.products[product.ID]; !exists {
		return ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r memoryProducts) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.products[id]; !exists {
		return false, nil
	}
	delete(r.s.products, id)
	for i, existing := range r.s.order {
		if existing == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

type memoryUsers struct {
	s *MemoryStore
}

func (r memoryUsers) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.findByUsername(username); ok {
		return &u, nil
	}
	return nil, ErrNotFound
}

func (r memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.findByUsername(user.Username); taken {
		return ErrDuplicate
	}
	user.ID = r.s.nextUserID
	r.s.nextUserID++
	r.s.users[user.ID] = *user
	return nil
}

func (r memoryUsers) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.ID]; !exists {
		return ErrNotFound
	}
	if other, taken := r.s.findByUsername(user.Username); taken && other.ID != user.ID {
		return ErrDuplicate
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memoryUsers) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[id]; !exists {
		return false, nil
	}
	delete(r.s.users, id)
	return true, nil
}

// findByUsername must be called with mu held.
func (s *MemoryStore) findByUsername(username string) (domain.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}
