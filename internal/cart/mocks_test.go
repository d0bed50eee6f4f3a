package cart

import (
	"context"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/repository"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

// MemoryCartStore implements session.CartStore for testing
type MemoryCartStore struct {
	Carts   map[string]*domain.Cart
	SaveErr error
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{Carts: make(map[string]*domain.Cart)}
}

func (m *MemoryCartStore) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	cart, ok := m.Carts[sessionID]
	if !ok {
		return nil, session.ErrCartNotFound
	}
	return cart, nil
}

func (m *MemoryCartStore) Save(_ context.Context, cart *domain.Cart) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Carts[cart.SessionID] = cart
	return nil
}

func (m *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	delete(m.Carts, sessionID)
	return nil
}

// MockCatalog implements ProductGetter for testing
type MockCatalog struct {
	Products map[int64]*domain.Product
	Err      error
}

func NewMockCatalog(products ...*domain.Product) *MockCatalog {
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MockCatalog{Products: byID}
}

func (m *MockCatalog) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *MockCatalog) GetProductsByIDs(_ context.Context, ids []int64) ([]*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
