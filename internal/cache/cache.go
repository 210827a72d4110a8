// Package cache provides a Redis-backed cache for provider responses so a
// batch scan does not refetch the benchmark and sector series for every
// symbol. The cache is optional: a nil *Cache is a valid no-op and every
// miss or Redis error falls through to the provider.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/momentum33/stock-analysis-system/internal/domain"
)

// Cache wraps a Redis client with JSON serialization and a fixed TTL.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func barsKey(symbol string) string {
	return "stockscan:bars:" + symbol
}

// GetBars returns the cached bar series for symbol, if present.
func (c *Cache) GetBars(ctx context.Context, symbol string) ([]domain.PriceBar, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, barsKey(symbol)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("cache read failed")
		}
		return nil, false
	}
	var bars []domain.PriceBar
	if err := json.Unmarshal(data, &bars); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("cache entry corrupt")
		return nil, false
	}
	return bars, true
}

// SetBars stores a bar series under the configured TTL.
func (c *Cache) SetBars(ctx context.Context, symbol string, bars []domain.PriceBar) {
	if c == nil {
		return
	}
	data, err := json.Marshal(bars)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, barsKey(symbol), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("cache write failed")
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
