// Package usecase implements the read-side business logic of the ETF catalog.
package usecase

import (
	"context"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"
)

// CatalogReader executes compiled plans against the backing store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CatalogReader interface {
	// Find returns the rows matching plan.Predicate, ordered and windowed by the plan.
	Find(ctx context.Context, plan query.Plan) ([]entity.ETF, error)
	// Count returns the number of rows matching the predicate, ignoring any window.
	Count(ctx context.Context, pred query.Predicate) (int64, error)
}

// FacetRepository enumerates raw values of the filterable columns across the whole catalog.
type FacetRepository interface {
	DistinctIssuers(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// ETFRepository looks ETFs up by their ticker.
type ETFRepository interface {
	// FindByTicker returns domain.ErrETFNotFound when no row has the ticker.
	FindByTicker(ctx context.Context, ticker string) (*entity.ETF, error)
	// FindByTickers returns the rows whose ticker is in the list, in no particular order.
	FindByTickers(ctx context.Context, tickers []string) ([]entity.ETF, error)
}
