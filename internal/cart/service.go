package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/repository"
	"github.com/Aniket760/E-Coomarse/internal/session"
)

var (
	ErrInvalidProduct  = errors.New("product does not exist or is not active")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ProductGetter is the slice of the catalog the cart needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
}

type Service struct {
	store   session.CartStore
	catalog ProductGetter
}

func NewService(store session.CartStore, catalog ProductGetter) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
	}
}

func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) error {
	// quantities below one are clamped, not rejected, on add
	if quantity < 1 {
		quantity = 1
	}

	if err := s.requireActiveProduct(ctx, productID); err != nil {
		return err
	}

	cart, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now()
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   now,
		})
	}
	cart.UpdatedAt = now

	return s.store.Save(ctx, cart)
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if err := s.requireActiveProduct(ctx, productID); err != nil {
		return err
	}

	cart, err := s.loadOrNew(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now()
			return s.store.Save(ctx, cart)
		}
	}

	return ErrInvalidProduct
}

func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrCartNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.UpdatedAt = time.Now()

	return s.store.Save(ctx, cart)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// GetCart prices the session cart against the catalog as it is right now.
// Lines whose product was deleted or deactivated since they were added are
// skipped, matching the listing filter, so the view never shows a price the
// customer could not be charged.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*domain.PricedCart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrCartNotFound) {
		return &domain.PricedCart{Total: decimal.Zero}, nil
	}
	if err != nil {
		return nil, err
	}

	return s.price(ctx, cart)
}

func (s *Service) price(ctx context.Context, cart *domain.Cart) (*domain.PricedCart, error) {
	if len(cart.Items) == 0 {
		return &domain.PricedCart{Total: decimal.Zero}, nil
	}

	ids := make([]int64, len(cart.Items))
	for i, item := range cart.Items {
		ids[i] = item.ProductID
	}

	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch cart products: %w", err)
	}

	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		if p.IsActive {
			byID[p.ID] = p
		}
	}

	priced := &domain.PricedCart{Total: decimal.Zero}
	for _, item := range cart.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		priced.Items = append(priced.Items, domain.PricedCartItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
		})
		priced.Total = priced.Total.Add(lineTotal)
		priced.ItemCount += item.Quantity
	}

	return priced, nil
}

// Lines returns the raw session lines, unpriced. Checkout uses this to decide
// between EmptyCart and PriceMismatch.
func (s *Service) Lines(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrCartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (s *Service) requireActiveProduct(ctx context.Context, productID int64) error {
	p, err := s.catalog.GetProduct(ctx, productID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrInvalidProduct
	}
	if err != nil {
		return fmt.Errorf("fetch product: %w", err)
	}
	if !p.IsActive {
		return ErrInvalidProduct
	}
	return nil
}

func (s *Service) loadOrNew(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, session.ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{
			SessionID: sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}
