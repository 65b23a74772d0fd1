// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"etf_catalog/internal/feature/etfcatalog/adapters"
	"etf_catalog/internal/feature/etfcatalog/transport/handler"
	"etf_catalog/internal/feature/etfcatalog/usecase"
	"etf_catalog/internal/platform/cache"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewFacetRepository creates a FacetRepository implementation.
// If Redis is available, the database repository is wrapped with a Redis cache.
// Otherwise, it reads the database directly.
func NewFacetRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.FacetRepository {
	repo := adapters.NewETFRepository(db)
	if rdb != nil {
		return cache.NewCachingFacetRepository(rdb, ttl, repo, "etf:facets")
	}
	return repo
}

// NewETFHandler wires the catalog usecases over one database repository.
func NewETFHandler(db *gorm.DB, facets usecase.FacetRepository) *handler.ETFHandler {
	repo := adapters.NewETFRepository(db)
	return handler.NewETFHandler(
		usecase.NewListingUsecase(repo),
		usecase.NewExportUsecase(repo),
		usecase.NewFacetUsecase(facets),
		usecase.NewLookupUsecase(repo),
	)
}
