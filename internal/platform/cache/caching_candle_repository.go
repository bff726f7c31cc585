// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"quant_backend/internal/feature/candles/domain/entity"
	"quant_backend/internal/feature/candles/usecase"
)

var _ usecase.CandleRepository = (*CachingCandleRepository)(nil)

// CachingCandleRepository decorates a CandleRepository with Redis caching
// of date-range reads. Writes go to the inner repository and drop every
// cached range of the affected symbols.
type CachingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
	now       func() time.Time
}

// NewCachingCandleRepository decorates a CandleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "candles".
// Entries never outlive the next daily refresh (see TimeUntilNextRefresh).
func NewCachingCandleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CandleRepository, namespace string) *CachingCandleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
		now:       time.Now,
	}
}

// UpsertBatch inserts or updates candles and invalidates related cache entries.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if err := c.inner.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	if c.rdb == nil || len(candles) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, cd := range candles {
		prefix := c.cacheKeyPrefix(cd.Symbol)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		// Best effort: a stale entry expires by TTL anyway
		if err := c.deleteByPattern(ctx, prefix+"*"); err != nil {
			slog.Warn("candle cache invalidation failed", "symbol", cd.Symbol, "error", err)
		}
	}
	return nil
}

// FindRange retrieves candles, checking cache first then falling back to the database.
func (c *CachingCandleRepository) FindRange(ctx context.Context, symbol string, start, end time.Time) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.FindRange(ctx, symbol, start, end)
	}

	key := c.cacheKey(symbol, start, end)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindRange(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.expiry()).Err()
	}

	return out, nil
}

// expiry caps the TTL at the next daily refresh.
func (c *CachingCandleRepository) expiry() time.Duration {
	if d := TimeUntilNextRefresh(c.now()); d < c.ttl {
		return d
	}
	return c.ttl
}

// cacheKey generates a cache key for a specific query. Zero bounds are kept as "-".
func (c *CachingCandleRepository) cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s%s:%s", c.cacheKeyPrefix(symbol), day(start), day(end))
}

// cacheKeyPrefix generates a prefix for invalidating every cached range of a symbol.
func (c *CachingCandleRepository) cacheKeyPrefix(symbol string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(symbol))
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("20060102")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCandleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
