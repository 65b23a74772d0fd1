package usecase_test

import (
	"context"
	"sync"
	"time"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"
)

// mockCatalogReader はCatalogReaderインターフェースのモック実装です。
// 受け取ったプランを記録します。
type mockCatalogReader struct {
	FindFunc  func(ctx context.Context, plan query.Plan) ([]entity.ETF, error)
	CountFunc func(ctx context.Context, pred query.Predicate) (int64, error)

	mu         sync.Mutex
	findPlans  []query.Plan
	countPreds []query.Predicate
}

func (m *mockCatalogReader) Find(ctx context.Context, plan query.Plan) ([]entity.ETF, error) {
	m.mu.Lock()
	m.findPlans = append(m.findPlans, plan)
	m.mu.Unlock()
	if m.FindFunc != nil {
		return m.FindFunc(ctx, plan)
	}
	return nil, nil
}

func (m *mockCatalogReader) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	m.mu.Lock()
	m.countPreds = append(m.countPreds, pred)
	m.mu.Unlock()
	if m.CountFunc != nil {
		return m.CountFunc(ctx, pred)
	}
	return 0, nil
}

// mockFacetRepository はFacetRepositoryインターフェースのモック実装です。
type mockFacetRepository struct {
	DistinctIssuersFunc    func(ctx context.Context) ([]string, error)
	DistinctCategoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockFacetRepository) DistinctIssuers(ctx context.Context) ([]string, error) {
	if m.DistinctIssuersFunc != nil {
		return m.DistinctIssuersFunc(ctx)
	}
	return nil, nil
}

func (m *mockFacetRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	if m.DistinctCategoriesFunc != nil {
		return m.DistinctCategoriesFunc(ctx)
	}
	return nil, nil
}

// mockETFRepository はETFRepositoryインターフェースのモック実装です。
type mockETFRepository struct {
	FindByTickerFunc  func(ctx context.Context, ticker string) (*entity.ETF, error)
	FindByTickersFunc func(ctx context.Context, tickers []string) ([]entity.ETF, error)
}

func (m *mockETFRepository) FindByTicker(ctx context.Context, ticker string) (*entity.ETF, error) {
	if m.FindByTickerFunc != nil {
		return m.FindByTickerFunc(ctx, ticker)
	}
	return nil, nil
}

func (m *mockETFRepository) FindByTickers(ctx context.Context, tickers []string) ([]entity.ETF, error) {
	if m.FindByTickersFunc != nil {
		return m.FindByTickersFunc(ctx, tickers)
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// sampleETFs はテスト用のETFデータを返します。
func sampleETFs() []entity.ETF {
	return []entity.ETF{
		{
			ID: "1", Ticker: "QQQ", Name: "Invesco QQQ Trust",
			Issuer: strPtr("Invesco"), Category: strPtr("Large Growth"),
			ExpenseBps: intPtr(20), AumUSD: int64Ptr(250_000_000_000), InceptionDate: datePtr(1999, time.March, 10),
		},
		{
			ID: "2", Ticker: "SPY", Name: "SPDR S&P 500 ETF Trust",
			Issuer: strPtr("State Street"), Category: strPtr("Large Blend"),
			ExpenseBps: intPtr(9), AumUSD: int64Ptr(500_000_000_000), InceptionDate: datePtr(1993, time.January, 22),
		},
	}
}
