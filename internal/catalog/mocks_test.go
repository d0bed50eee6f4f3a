package catalog

import (
	"context"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/repository"
)

// MockProductRepo implements repository.ProductReader and
// repository.ProductAdmin for testing
type MockProductRepo struct {
	Products    []*domain.Product
	Err         error
	Created     *domain.Product
	Updated     *domain.Product
	Deactivated int64
	ReadCalls   int
}

func (m *MockProductRepo) GetActiveProducts(context.Context) ([]*domain.Product, error) {
	m.ReadCalls++
	return m.Products, m.Err
}

func (m *MockProductRepo) GetFeaturedProducts(context.Context, int) ([]*domain.Product, error) {
	m.ReadCalls++
	return m.Products, m.Err
}

func (m *MockProductRepo) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m *MockProductRepo) GetProductsByIDs(_ context.Context, ids []int64) ([]*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Product
	for _, p := range m.Products {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (m *MockProductRepo) GetAllProducts(context.Context) ([]*domain.Product, error) {
	return m.Products, m.Err
}

func (m *MockProductRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	m.Created = p
	return m.Err
}

func (m *MockProductRepo) UpdateProduct(_ context.Context, p *domain.Product) error {
	m.Updated = p
	return m.Err
}

func (m *MockProductRepo) DeactivateProduct(_ context.Context, id int64) error {
	m.Deactivated = id
	return m.Err
}

// MockListingCache is an in-memory ListingCache
type MockListingCache struct {
	Data       map[string][]*domain.Product
	GetErr     error
	SetErr     error
	DeleteKeys []string
}

func NewMockListingCache() *MockListingCache {
	return &MockListingCache{Data: make(map[string][]*domain.Product)}
}

func (m *MockListingCache) Get(_ context.Context, key string) ([]*domain.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	products, ok := m.Data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return products, nil
}

func (m *MockListingCache) Set(_ context.Context, key string, products []*domain.Product) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = products
	return nil
}

func (m *MockListingCache) Delete(_ context.Context, keys ...string) error {
	m.DeleteKeys = append(m.DeleteKeys, keys...)
	for _, k := range keys {
		delete(m.Data, k)
	}
	return nil
}
