package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aniket760/E-Coomarse/internal/domain"
)

type ListingCache interface {
	Get(ctx context.Context, key string) ([]*domain.Product, error)
	Set(ctx context.Context, key string, products []*domain.Product) error
	Delete(ctx context.Context, keys ...string) error
}

var ErrCacheMiss = errors.New("cache miss")

func NewRedisListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisListingCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisListingCache) Get(ctx context.Context, key string) ([]*domain.Product, error) {
	data, err := r.client.Get(ctx, listingKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []*domain.Product
	if err2 := json.Unmarshal(data, &products); err2 != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err2)
	}

	return products, nil
}

func (r RedisListingCache) Set(ctx context.Context, key string, products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal products failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, listingKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisListingCache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = listingKey(k)
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func listingKey(key string) string {
	return fmt.Sprintf("catalog:%s", key)
}
