package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/SaiDecoratives/templehub-catalog/internal/domain"
)

func newTestCache(t *testing.T) (*SaleCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewSaleCache(client, 5*time.Minute), mr
}

func TestSaleCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.SetSale(ctx, 20))

	sale, err := cache.GetSale(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, sale)
}

func TestSaleCache_GetMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.GetSale(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.SetSale(ctx, 20))
	assert.NoError(t, cache.InvalidateSale(ctx))

	_, err := cache.GetSale(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleCache_TTLExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.SetSale(ctx, 20))

	mr.FastForward(6 * time.Minute)

	_, err := cache.GetSale(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
