// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"etf_catalog/internal/feature/etfcatalog/usecase"
)

const (
	issuersKey    = "issuers"
	categoriesKey = "categories"
)

// CachingFacetRepository decorates a FacetRepository with Redis caching.
// The distinct value lists are read by every page load and change only when the
// catalog is reloaded, so they are cached under a fixed key per facet.
type CachingFacetRepository struct {
	inner     usecase.FacetRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.FacetRepository = (*CachingFacetRepository)(nil)

// NewCachingFacetRepository decorates a FacetRepository with Redis caching.
// If ttl is 0, it defaults to 10 minutes. If namespace is empty, it uses "etf:facets".
func NewCachingFacetRepository(rdb *redis.Client, ttl time.Duration, inner usecase.FacetRepository, namespace string) *CachingFacetRepository {
	if ttl <= 0 {
		ttl = DefaultFacetTTL
	}
	if namespace == "" {
		namespace = "etf:facets"
	}
	return &CachingFacetRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// DistinctIssuers returns the raw issuer values, checking the cache first.
func (c *CachingFacetRepository) DistinctIssuers(ctx context.Context) ([]string, error) {
	return c.cached(ctx, issuersKey, c.inner.DistinctIssuers)
}

// DistinctCategories returns the raw category values, checking the cache first.
func (c *CachingFacetRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return c.cached(ctx, categoriesKey, c.inner.DistinctCategories)
}

// Invalidate removes every cached facet list under the namespace.
func (c *CachingFacetRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.deleteByPattern(ctx, c.namespace+":*")
}

func (c *CachingFacetRepository) cached(ctx context.Context, facet string, load func(context.Context) ([]string, error)) ([]string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load(ctx)
	}

	key := c.cacheKey(facet)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []string
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("facet cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to database
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the cache key for one facet.
func (c *CachingFacetRepository) cacheKey(facet string) string {
	return c.namespace + ":" + facet
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingFacetRepository) deleteByPattern(ctx context.Context, pattern string) error {
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
