package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
)

const saleKey = "catalog:sale"

// SaleCache caches the storewide sale value so the catalog does not hit the
// products table on every sale read.
type SaleCache struct {
	client  *redis.Client
	saleTTL time.Duration
}

// NewSaleCache creates a new Redis sale cache instance
func NewSaleCache(client *redis.Client, saleTTL time.Duration) *SaleCache {
	return &SaleCache{
		client:  client,
		saleTTL: saleTTL,
	}
}

// GetSale retrieves the cached storewide sale value
func (c *SaleCache) GetSale(ctx context.Context) (float64, error) {
	val, err := c.client.Get(ctx, saleKey).Float64()
	if err != nil {
		if err == redis.Nil {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return val, nil
}

// SetSale stores the storewide sale value in cache
func (c *SaleCache) SetSale(ctx context.Context, sale float64) error {
	return c.client.Set(ctx, saleKey, sale, c.saleTTL).Err()
}

// InvalidateSale removes the storewide sale value from cache
func (c *SaleCache) InvalidateSale(ctx context.Context) error {
	return c.client.Del(ctx, saleKey).Err()
}
