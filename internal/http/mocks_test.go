package http

import (
	"context"

	"github.com/Aniket760/E-Coomarse/internal/checkout"
	"github.com/Aniket760/E-Coomarse/internal/domain"
)

// CatalogMock implements Catalog
type CatalogMock struct {
	Products []*domain.Product
	Err      error
}

func (m CatalogMock) ActiveProducts(context.Context) ([]*domain.Product, error) {
	return m.Products, m.Err
}

func (m CatalogMock) FeaturedProducts(context.Context) ([]*domain.Product, error) {
	return m.Products, m.Err
}

// CartServiceMock implements CartService
type CartServiceMock struct {
	Priced     *domain.PricedCart
	Err        error
	AddedID    int64
	AddedQty   int
	UpdatedQty int
	RemovedID  int64
	Cleared    []string
}

func (m *CartServiceMock) AddItem(_ context.Context, _ string, productID int64, quantity int) error {
	if m.Err != nil {
		return m.Err
	}
	m.AddedID = productID
	m.AddedQty = quantity
	return nil
}

func (m *CartServiceMock) UpdateQuantity(_ context.Context, _ string, productID int64, quantity int) error {
	if m.Err != nil {
		return m.Err
	}
	m.UpdatedQty = quantity
	return nil
}

func (m *CartServiceMock) RemoveItem(_ context.Context, _ string, productID int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.RemovedID = productID
	return nil
}

func (m *CartServiceMock) Clear(_ context.Context, sessionID string) error {
	m.Cleared = append(m.Cleared, sessionID)
	return nil
}

func (m *CartServiceMock) GetCart(context.Context, string) (*domain.PricedCart, error) {
	if m.Priced != nil {
		return m.Priced, nil
	}
	return &domain.PricedCart{}, nil
}

// CatalogAdminMock implements CatalogAdmin
type CatalogAdminMock struct {
	Products    []*domain.Product
	Err         error
	Created     *domain.Product
	Updated     *domain.Product
	Deactivated int64
}

func (m *CatalogAdminMock) AllProducts(context.Context) ([]*domain.Product, error) {
	return m.Products, m.Err
}

func (m *CatalogAdminMock) CreateProduct(_ context.Context, p *domain.Product) error {
	if m.Err != nil {
		return m.Err
	}
	p.ID = 1
	m.Created = p
	return nil
}

func (m *CatalogAdminMock) UpdateProduct(_ context.Context, p *domain.Product) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updated = p
	return nil
}

func (m *CatalogAdminMock) DeactivateProduct(_ context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deactivated = id
	return nil
}

// CheckoutServiceMock implements CheckoutService
type CheckoutServiceMock struct {
	Result     *checkout.CheckoutResult
	CreateErr  error
	Order      *domain.Order
	VerifyErr  error
	LastVerify [3]string
}

func (m *CheckoutServiceMock) CreateOrder(_ context.Context, _ *checkout.CheckoutRequest) (*checkout.CheckoutResult, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.Result, nil
}

func (m *CheckoutServiceMock) VerifyPayment(_ context.Context, gatewayOrderID, paymentID, signature string) (*domain.Order, error) {
	m.LastVerify = [3]string{gatewayOrderID, paymentID, signature}
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	return m.Order, nil
}
