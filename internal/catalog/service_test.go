package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

func testProduct(id int64, name string) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromFloat(19.99),
		IsActive: true,
	}
}

func TestActiveProducts_CacheMiss(t *testing.T) {
	repo := &MockProductRepo{Products: []*domain.Product{testProduct(1, "Laptop")}}
	cache := NewMockListingCache()
	svc := NewService(repo, repo, cache)

	products, err := svc.ActiveProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, repo.ReadCalls)
}

func TestActiveProducts_CacheHit(t *testing.T) {
	repo := &MockProductRepo{}
	cache := NewMockListingCache()
	cache.Data[keyActive] = []*domain.Product{testProduct(2, "Mouse")}
	svc := NewService(repo, repo, cache)

	products, err := svc.ActiveProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Mouse", products[0].Name)
	assert.Equal(t, 0, repo.ReadCalls, "cache hit must not touch the repository")
}

func TestActiveProducts_CacheErrorFallsThrough(t *testing.T) {
	repo := &MockProductRepo{Products: []*domain.Product{testProduct(1, "Laptop")}}
	cache := NewMockListingCache()
	cache.GetErr = errors.New("redis down")
	svc := NewService(repo, repo, cache)

	products, err := svc.ActiveProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestActiveProducts_RepoError(t *testing.T) {
	repo := &MockProductRepo{Err: errors.New("db down")}
	cache := NewMockListingCache()
	svc := NewService(repo, repo, cache)

	products, err := svc.ActiveProducts(context.Background())
	assert.Error(t, err)
	assert.Nil(t, products)
}

func TestCreateProduct_InvalidatesListings(t *testing.T) {
	repo := &MockProductRepo{}
	cache := NewMockListingCache()
	cache.Data[keyActive] = []*domain.Product{testProduct(1, "Stale")}
	svc := NewService(repo, repo, cache)

	p := testProduct(0, "New")
	err := svc.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p, repo.Created)
	assert.Contains(t, cache.DeleteKeys, keyActive)
	assert.Contains(t, cache.DeleteKeys, keyFeatured)
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	repo := &MockProductRepo{}
	svc := NewService(repo, repo, NewMockListingCache())

	p := testProduct(0, "Bad")
	p.Price = decimal.NewFromFloat(-1)
	err := svc.CreateProduct(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Nil(t, repo.Created)
}

func TestDeactivateProduct_InvalidatesListings(t *testing.T) {
	repo := &MockProductRepo{}
	cache := NewMockListingCache()
	svc := NewService(repo, repo, cache)

	err := svc.DeactivateProduct(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.Deactivated)
	assert.Contains(t, cache.DeleteKeys, keyActive)
}
