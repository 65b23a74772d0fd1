package usecase

import (
	"context"
	"fmt"
	"strings"

	"etf_catalog/internal/feature/etfcatalog/domain"
	"etf_catalog/internal/feature/etfcatalog/domain/entity"
)

// MaxCompareTickers caps how many ETFs a comparison shows.
const MaxCompareTickers = 12

// CompareResult holds the normalized requested tickers and the ETFs found for them,
// in request order.
type CompareResult struct {
	Tickers []string
	Items   []entity.ETF
}

// LookupUsecase serves detail and comparison views keyed by ticker.
type LookupUsecase struct {
	repo ETFRepository
}

// NewLookupUsecase creates a LookupUsecase.
func NewLookupUsecase(repo ETFRepository) *LookupUsecase {
	return &LookupUsecase{repo: repo}
}

// Get returns the ETF for a ticker, matched case-insensitively.
func (u *LookupUsecase) Get(ctx context.Context, ticker string) (*entity.ETF, error) {
	t := entity.NormalizeTicker(ticker)
	if t == "" {
		return nil, domain.ErrETFNotFound
	}
	return u.repo.FindByTicker(ctx, t)
}

// Compare resolves a comma-separated ticker list. Unknown tickers are dropped silently.
func (u *LookupUsecase) Compare(ctx context.Context, raw string) (CompareResult, error) {
	tickers := ParseTickers(raw)
	if len(tickers) == 0 {
		return CompareResult{Tickers: []string{}, Items: []entity.ETF{}}, nil
	}

	found, err := u.repo.FindByTickers(ctx, tickers)
	if err != nil {
		return CompareResult{}, fmt.Errorf("compare etfs: %w", err)
	}

	byTicker := make(map[string]entity.ETF, len(found))
	for _, e := range found {
		byTicker[e.Ticker] = e
	}
	items := make([]entity.ETF, 0, len(tickers))
	for _, t := range tickers {
		if e, ok := byTicker[t]; ok {
			items = append(items, e)
		}
	}
	return CompareResult{Tickers: tickers, Items: items}, nil
}

// ParseTickers normalizes a comma-separated ticker list: upper-cased, de-duplicated
// in first-seen order and capped at MaxCompareTickers.
func ParseTickers(raw string) []string {
	out := make([]string, 0, MaxCompareTickers)
	seen := make(map[string]struct{})
	for _, p := range strings.Split(raw, ",") {
		t := entity.NormalizeTicker(p)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == MaxCompareTickers {
			break
		}
	}
	return out
}
