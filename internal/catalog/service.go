package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/Aniket760/E-Coomarse/internal/repository"
)

const (
	keyActive   = "active"
	keyFeatured = "featured"

	featuredLimit = 6
)

var ErrInvalidPrice = errors.New("product price must be non-negative")

// Service serves product listings through a cache-aside Redis layer and
// exposes the catalog mutation capability for the admin surface. Mutations
// invalidate both listings, so priced reads pick up admin changes on the
// next request.
type Service struct {
	reader repository.ProductReader
	admin  repository.ProductAdmin
	cache  ListingCache
	sfg    singleflight.Group // Prevents cache stampede
}

func NewService(reader repository.ProductReader, admin repository.ProductAdmin, cache ListingCache) *Service {
	return &Service{
		reader: reader,
		admin:  admin,
		cache:  cache,
	}
}

func (s *Service) ActiveProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.cachedListing(ctx, keyActive, func() ([]*domain.Product, error) {
		return s.reader.GetActiveProducts(ctx)
	})
}

func (s *Service) FeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.cachedListing(ctx, keyFeatured, func() ([]*domain.Product, error) {
		return s.reader.GetFeaturedProducts(ctx, featuredLimit)
	})
}

func (s *Service) cachedListing(ctx context.Context, key string, load func() ([]*domain.Product, error)) ([]*domain.Product, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, key)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		products, errLoad := load()
		if errLoad != nil {
			return nil, errLoad
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, key, products); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]*domain.Product), nil
}

// GetProduct and GetProductsByIDs bypass the listing cache: cart and checkout
// must see the price the catalog holds right now.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.reader.GetProduct(ctx, id)
}

func (s *Service) GetProductsByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	return s.reader.GetProductsByIDs(ctx, ids)
}

func (s *Service) AllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.admin.GetAllProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Price.LessThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	if err := s.admin.CreateProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	s.invalidateListings()
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if p.Price.LessThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	if err := s.admin.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidateListings()
	return nil
}

func (s *Service) DeactivateProduct(ctx context.Context, id int64) error {
	if err := s.admin.DeactivateProduct(ctx, id); err != nil {
		return err
	}
	s.invalidateListings()
	return nil
}

func (s *Service) invalidateListings() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, keyActive, keyFeatured); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
