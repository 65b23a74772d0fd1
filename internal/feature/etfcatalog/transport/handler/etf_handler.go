// Package handler はetfcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"etf_catalog/internal/feature/etfcatalog/domain"
	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/transport/http/dto"
	"etf_catalog/internal/feature/etfcatalog/usecase"
	"etf_catalog/internal/platform/http/middleware"

	"github.com/gin-gonic/gin"
)

// ListingUsecase は一覧取得のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ListingUsecase interface {
	List(ctx context.Context, params url.Values) (usecase.ListResult, error)
}

// ExportUsecase はCSVエクスポートのユースケースインターフェースです。
type ExportUsecase interface {
	Export(ctx context.Context, params url.Values, w io.Writer) error
}

// FacetUsecase は発行体・カテゴリ一覧のユースケースインターフェースです。
type FacetUsecase interface {
	Issuers(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

// LookupUsecase は詳細・比較のユースケースインターフェースです。
type LookupUsecase interface {
	Get(ctx context.Context, ticker string) (*entity.ETF, error)
	Compare(ctx context.Context, raw string) (usecase.CompareResult, error)
}

// ETFHandler はETFカタログのHTTPリクエストを処理します。
type ETFHandler struct {
	listing ListingUsecase
	export  ExportUsecase
	facets  FacetUsecase
	lookup  LookupUsecase
}

// NewETFHandler は新しい ETFHandler を作成します。
func NewETFHandler(listing ListingUsecase, export ExportUsecase, facets FacetUsecase, lookup LookupUsecase) *ETFHandler {
	return &ETFHandler{listing: listing, export: export, facets: facets, lookup: lookup}
}

// List は検索条件に一致するETFの1ページと総件数を返します。
//
// エンドポイント例:
// GET /api/etfs?q=spy&issuer=Vanguard,BlackRock&sort=expenseBps&dir=desc&page=1&pageSize=50
func (h *ETFHandler) List(c *gin.Context) {
	res, err := h.listing.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse{
		Items:    dto.NewETFItems(res.Items),
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	})
}

// ExportCSV は一覧と同じ条件で選ばれた行をCSVの添付ファイルとして返します。
// 出力はバッファしてから一度に送ります。失敗時はヘッダーを書く前に500を返します。
func (h *ETFHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.export.Export(c.Request.Context(), c.Request.URL.Query(), &buf); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=etfs.csv")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Get はティッカーに一致するETFを返します。見つからない場合は404を返します。
func (h *ETFHandler) Get(c *gin.Context) {
	e, err := h.lookup.Get(c.Request.Context(), c.Param("ticker"))
	if errors.Is(err, domain.ErrETFNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrETFNotFound.Error()})
		return
	}
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dto.DetailResponse{Item: dto.NewETFItem(*e)})
}

// Compare は指定されたティッカーのETFを指定順に返します。
//
// エンドポイント例:
// GET /api/compare?tickers=QQQ,SPY
func (h *ETFHandler) Compare(c *gin.Context) {
	res, err := h.lookup.Compare(c.Request.Context(), c.Query("tickers"))
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	tickers := res.Tickers
	if tickers == nil {
		tickers = []string{}
	}
	c.JSON(http.StatusOK, dto.CompareResponse{Items: dto.NewETFItems(res.Items), Tickers: tickers})
}

// Issuers はカタログ全体の発行体一覧を返します。
func (h *ETFHandler) Issuers(c *gin.Context) {
	issuers, err := h.facets.Issuers(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dto.IssuersResponse{Issuers: nonNil(issuers)})
}

// Categories はカタログ全体のカテゴリ一覧を返します。
func (h *ETFHandler) Categories(c *gin.Context) {
	categories, err := h.facets.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: nonNil(categories)})
}

func (h *ETFHandler) fail(c *gin.Context, status int, err error) {
	slog.Error("request failed",
		"request_id", middleware.RequestIDFrom(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
