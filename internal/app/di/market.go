// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"swing_backend/internal/feature/prices/adapters/twelvedata"
	"swing_backend/internal/feature/prices/usecase"
	"swing_backend/internal/platform/cache"
	infrahttp "swing_backend/internal/platform/http"
)

// NewMarket creates a fully configured TwelveDataMarket with HTTP client.
func NewMarket() *twelvedata.TwelveDataMarket {
	cfg := twelvedata.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataMarket(cfg, httpClient)
}

// NewCachedMarket wraps the market repository with a Redis cache holding
// each daily series until the next UTC day boundary. A nil rdb disables
// caching and calls go straight to the external API.
func NewCachedMarket(rdb *redis.Client) usecase.MarketRepository {
	return cache.NewCachingMarketRepository(rdb, cache.TimeUntilNextMidnightUTC(), NewMarket(), "prices")
}
