package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"etf_catalog/internal/feature/etfcatalog/domain"
	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/transport/handler"
	"etf_catalog/internal/feature/etfcatalog/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockListingUsecase はListingUsecaseインターフェースのモック実装です。
type mockListingUsecase struct {
	ListFunc func(ctx context.Context, params url.Values) (usecase.ListResult, error)
}

func (m *mockListingUsecase) List(ctx context.Context, params url.Values) (usecase.ListResult, error) {
	return m.ListFunc(ctx, params)
}

// mockExportUsecase はExportUsecaseインターフェースのモック実装です。
type mockExportUsecase struct {
	ExportFunc func(ctx context.Context, params url.Values, w io.Writer) error
}

func (m *mockExportUsecase) Export(ctx context.Context, params url.Values, w io.Writer) error {
	return m.ExportFunc(ctx, params, w)
}

// mockFacetUsecase はFacetUsecaseインターフェースのモック実装です。
type mockFacetUsecase struct {
	IssuersFunc    func(ctx context.Context) ([]string, error)
	CategoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *mockFacetUsecase) Issuers(ctx context.Context) ([]string, error) {
	return m.IssuersFunc(ctx)
}

func (m *mockFacetUsecase) Categories(ctx context.Context) ([]string, error) {
	return m.CategoriesFunc(ctx)
}

// mockLookupUsecase はLookupUsecaseインターフェースのモック実装です。
type mockLookupUsecase struct {
	GetFunc     func(ctx context.Context, ticker string) (*entity.ETF, error)
	CompareFunc func(ctx context.Context, raw string) (usecase.CompareResult, error)
}

func (m *mockLookupUsecase) Get(ctx context.Context, ticker string) (*entity.ETF, error) {
	return m.GetFunc(ctx, ticker)
}

func (m *mockLookupUsecase) Compare(ctx context.Context, raw string) (usecase.CompareResult, error) {
	return m.CompareFunc(ctx, raw)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

var (
	created  = time.Date(2024, 5, 1, 9, 30, 15, 123_000_000, time.UTC)
	updated  = time.Date(2024, 5, 2, 18, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	incepted = time.Date(1993, 1, 22, 0, 0, 0, 0, time.UTC)
)

func spy() entity.ETF {
	return entity.ETF{
		ID: "6f1c7b5e-0000-4000-8000-000000000001", Ticker: "SPY", Name: "SPDR S&P 500 ETF Trust",
		Issuer: strPtr("State Street"), Category: strPtr("Large Blend"),
		ExpenseBps: intPtr(9), AumUSD: int64Ptr(500_000_000_000), InceptionDate: &incepted,
		CreatedAt: created, UpdatedAt: updated,
	}
}

const spyJSON = `{"id":"6f1c7b5e-0000-4000-8000-000000000001","ticker":"SPY","name":"SPDR S&P 500 ETF Trust",` +
	`"issuer":"State Street","category":"Large Blend","expenseBps":9,"aumUSD":500000000000,` +
	`"inceptionDate":"1993-01-22T00:00:00.000Z","createdAt":"2024-05-01T09:30:15.123Z","updatedAt":"2024-05-02T09:00:00.000Z"}`

func setupRouter(h *handler.ETFHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/etfs", h.List)
	r.GET("/api/etfs.csv", h.ExportCSV)
	r.GET("/api/etfs/:ticker", h.Get)
	r.GET("/api/compare", h.Compare)
	r.GET("/api/meta/issuers", h.Issuers)
	r.GET("/api/meta/categories", h.Categories)
	return r
}

func do(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// TestETFHandler_List は一覧APIのレスポンス形状とエラー処理を検証します。
func TestETFHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		mockList       func(ctx context.Context, params url.Values) (usecase.ListResult, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: passes raw parameters and shapes items",
			url:  "/api/etfs?q=spy&issuer=State+Street&pageSize=5",
			mockList: func(ctx context.Context, params url.Values) (usecase.ListResult, error) {
				assert.Equal(t, "spy", params.Get("q"))
				assert.Equal(t, "State Street", params.Get("issuer"))
				assert.Equal(t, "5", params.Get("pageSize"))
				return usecase.ListResult{Items: []entity.ETF{spy()}, Total: 1, Page: 1, PageSize: 5}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"items":[` + spyJSON + `],"total":1,"page":1,"pageSize":5}`,
		},
		{
			name: "success: absent fields are explicit nulls",
			url:  "/api/etfs",
			mockList: func(ctx context.Context, params url.Values) (usecase.ListResult, error) {
				return usecase.ListResult{
					Items:    []entity.ETF{{ID: "id-1", Ticker: "NEW", Name: "New Fund", CreatedAt: created, UpdatedAt: created}},
					Total:    1,
					Page:     1,
					PageSize: 50,
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"items":[{"id":"id-1","ticker":"NEW","name":"New Fund","issuer":null,"category":null,` +
				`"expenseBps":null,"aumUSD":null,"inceptionDate":null,"createdAt":"2024-05-01T09:30:15.123Z",` +
				`"updatedAt":"2024-05-01T09:30:15.123Z"}],"total":1,"page":1,"pageSize":50}`,
		},
		{
			name: "success: empty result is an empty array",
			url:  "/api/etfs?q=zzz",
			mockList: func(ctx context.Context, params url.Values) (usecase.ListResult, error) {
				return usecase.ListResult{Page: 1, PageSize: 50}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"items":[],"total":0,"page":1,"pageSize":50}`,
		},
		{
			name: "error: store failure",
			url:  "/api/etfs",
			mockList: func(ctx context.Context, params url.Values) (usecase.ListResult, error) {
				return usecase.ListResult{}, errors.New("list etfs: connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"list etfs: connection refused"}`,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handler.NewETFHandler(&mockListingUsecase{ListFunc: tt.mockList}, nil, nil, nil)
			w := do(setupRouter(h), tt.url)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestETFHandler_ExportCSV はCSVエクスポートのヘッダーと本文を検証します。
func TestETFHandler_ExportCSV(t *testing.T) {
	t.Parallel()

	var got url.Values
	export := &mockExportUsecase{
		ExportFunc: func(ctx context.Context, params url.Values, w io.Writer) error {
			got = params
			_, err := io.WriteString(w, "Ticker,Name\nSPY,\"A, B\"")
			return err
		},
	}
	h := handler.NewETFHandler(nil, export, nil, nil)

	w := do(setupRouter(h), "/api/etfs.csv?sort=aumUSD&dir=desc")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=etfs.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "Ticker,Name\nSPY,\"A, B\"", w.Body.String())
	assert.Equal(t, "aumUSD", got.Get("sort"))
	assert.Equal(t, "desc", got.Get("dir"))
}

// TestETFHandler_ExportCSV_Error はエクスポート失敗時に部分的なCSVを返さず500を返すことを検証します。
func TestETFHandler_ExportCSV_Error(t *testing.T) {
	t.Parallel()

	export := &mockExportUsecase{
		ExportFunc: func(ctx context.Context, params url.Values, w io.Writer) error {
			_, _ = io.WriteString(w, "Ticker,Name\n")
			return errors.New("export etfs: timeout")
		},
	}
	h := handler.NewETFHandler(nil, export, nil, nil)

	w := do(setupRouter(h), "/api/etfs.csv")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.JSONEq(t, `{"error":"export etfs: timeout"}`, w.Body.String())
}

// TestETFHandler_Get は詳細APIの成功・未検出・エラーを検証します。
func TestETFHandler_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		mockGet        func(ctx context.Context, ticker string) (*entity.ETF, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			url:  "/api/etfs/spy",
			mockGet: func(ctx context.Context, ticker string) (*entity.ETF, error) {
				assert.Equal(t, "spy", ticker)
				e := spy()
				return &e, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"item":` + spyJSON + `}`,
		},
		{
			name: "not found",
			url:  "/api/etfs/ZZZ",
			mockGet: func(ctx context.Context, ticker string) (*entity.ETF, error) {
				return nil, domain.ErrETFNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"etf not found"}`,
		},
		{
			name: "store failure",
			url:  "/api/etfs/SPY",
			mockGet: func(ctx context.Context, ticker string) (*entity.ETF, error) {
				return nil, errors.New("get etf: connection reset")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"get etf: connection reset"}`,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handler.NewETFHandler(nil, nil, nil, &mockLookupUsecase{GetFunc: tt.mockGet})
			w := do(setupRouter(h), tt.url)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestETFHandler_Compare は比較APIが要求ティッカーを返し、空の場合も配列を返すことを検証します。
func TestETFHandler_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		url          string
		mockCompare  func(ctx context.Context, raw string) (usecase.CompareResult, error)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success: unknown tickers are dropped from items",
			url:  "/api/compare?tickers=SPY,ZZZ",
			mockCompare: func(ctx context.Context, raw string) (usecase.CompareResult, error) {
				assert.Equal(t, "SPY,ZZZ", raw)
				return usecase.CompareResult{Tickers: []string{"SPY", "ZZZ"}, Items: []entity.ETF{spy()}}, nil
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"items":[` + spyJSON + `],"tickers":["SPY","ZZZ"]}`,
		},
		{
			name: "success: empty",
			url:  "/api/compare",
			mockCompare: func(ctx context.Context, raw string) (usecase.CompareResult, error) {
				return usecase.CompareResult{}, nil
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"items":[],"tickers":[]}`,
		},
		{
			name: "error",
			url:  "/api/compare?tickers=SPY",
			mockCompare: func(ctx context.Context, raw string) (usecase.CompareResult, error) {
				return usecase.CompareResult{}, errors.New("compare etfs: boom")
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"compare etfs: boom"}`,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handler.NewETFHandler(nil, nil, nil, &mockLookupUsecase{CompareFunc: tt.mockCompare})
			w := do(setupRouter(h), tt.url)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// TestETFHandler_Facets は発行体・カテゴリ一覧APIを検証します。
func TestETFHandler_Facets(t *testing.T) {
	t.Parallel()

	facets := &mockFacetUsecase{
		IssuersFunc: func(ctx context.Context) ([]string, error) {
			return []string{"BlackRock", "Vanguard"}, nil
		},
		CategoriesFunc: func(ctx context.Context) ([]string, error) {
			return nil, nil
		},
	}
	r := setupRouter(handler.NewETFHandler(nil, nil, facets, nil))

	w := do(r, "/api/meta/issuers")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"issuers":["BlackRock","Vanguard"]}`, w.Body.String())

	w = do(r, "/api/meta/categories")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":[]}`, w.Body.String())
}

// TestETFHandler_Facets_Error はファセット取得失敗時に500を返すことを検証します。
func TestETFHandler_Facets_Error(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("list issuers: connection refused")
	facets := &mockFacetUsecase{
		IssuersFunc:    func(ctx context.Context) ([]string, error) { return nil, dbErr },
		CategoriesFunc: func(ctx context.Context) ([]string, error) { return nil, dbErr },
	}
	r := setupRouter(handler.NewETFHandler(nil, nil, facets, nil))

	for _, target := range []string{"/api/meta/issuers", "/api/meta/categories"} {
		w := do(r, target)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, dbErr.Error(), body["error"])
	}
}
