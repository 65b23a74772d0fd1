package usecase

import (
	"context"
	"fmt"
	"net/url"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"

	"golang.org/x/sync/errgroup"
)

// ListResult is one page of the listing plus the size of the whole match set.
type ListResult struct {
	Items    []entity.ETF
	Total    int64
	Page     int
	PageSize int
}

// ListingUsecase serves paginated listings.
type ListingUsecase struct {
	reader CatalogReader
}

// NewListingUsecase creates a ListingUsecase over the given reader.
func NewListingUsecase(reader CatalogReader) *ListingUsecase {
	return &ListingUsecase{reader: reader}
}

// List compiles params and fetches the page and the total count concurrently.
// Both reads use the same plan. A read failure is returned as is, without retry.
func (u *ListingUsecase) List(ctx context.Context, params url.Values) (ListResult, error) {
	state, plan := query.Compile(params, query.DefaultListPageSize)

	var (
		items []entity.ETF
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = u.reader.Find(gctx, plan)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = u.reader.Count(gctx, plan.Predicate)
		return err
	})
	if err := g.Wait(); err != nil {
		return ListResult{}, fmt.Errorf("list etfs: %w", err)
	}

	return ListResult{
		Items:    items,
		Total:    total,
		Page:     state.Page,
		PageSize: state.PageSize,
	}, nil
}
