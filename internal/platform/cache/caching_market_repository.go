// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"swing_backend/internal/feature/prices/domain/entity"
	"swing_backend/internal/feature/prices/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. External market APIs are both slow
// and rate limited, so a whole-year daily series is cached as one entry.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingMarketRepositoryがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetDailyTimeSeries retrieves a daily close series, checking cache first
// then falling back to the underlying market API.
func (c *CachingMarketRepository) GetDailyTimeSeries(ctx context.Context, ticker string, year int) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetDailyTimeSeries(ctx, ticker, year)
	}

	key := c.cacheKey(ticker, year)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the market API
	out, err := c.inner.GetDailyTimeSeries(ctx, ticker, year)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific ticker and year.
func (c *CachingMarketRepository) cacheKey(ticker string, year int) string {
	return fmt.Sprintf("%s:%s:%d", c.namespace, safe(ticker), year)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
