package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"etf_catalog/internal/feature/etfcatalog/domain"
	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/query"
	"etf_catalog/internal/feature/etfcatalog/transport/http/dto"
)

// Client はETFカタログAPIを呼び出すHTTPクライアントです。
// 検索条件は常にquery.State.Valuesで符号化し、サーバーと同じパラメータ規約を使います。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// List は検索条件に一致する1ページ分のETFと総件数を取得します。
func (c *Client) List(ctx context.Context, s query.State) (dto.ListResponse, error) {
	var out dto.ListResponse
	err := c.getJSON(ctx, "/api/etfs", s.Values(), &out)
	return out, err
}

// Export は一覧と同じ検索条件でCSVを取得し、wに書き込みます。
func (c *Client) Export(ctx context.Context, s query.State, w io.Writer) error {
	res, err := c.do(ctx, "/api/etfs.csv", s.Values())
	if err != nil {
		return err
	}
	defer closeBody(res)

	if _, err := io.Copy(w, res.Body); err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	return nil
}

// Get はティッカーに一致するETFを取得します。存在しない場合はdomain.ErrETFNotFoundを返します。
// 空のティッカーはリクエストを送らずにdomain.ErrETFNotFoundを返します。
func (c *Client) Get(ctx context.Context, ticker string) (dto.ETFItem, error) {
	t := entity.NormalizeTicker(ticker)
	if t == "" {
		return dto.ETFItem{}, domain.ErrETFNotFound
	}
	var out dto.DetailResponse
	err := c.getJSON(ctx, "/api/etfs/"+url.PathEscape(t), nil, &out)
	return out.Item, err
}

// Compare は指定したティッカーのETFをサーバーが解釈した順に取得します。
func (c *Client) Compare(ctx context.Context, tickers []string) (dto.CompareResponse, error) {
	var out dto.CompareResponse
	err := c.getJSON(ctx, "/api/compare", url.Values{"tickers": {strings.Join(tickers, ",")}}, &out)
	return out, err
}

// Issuers は発行体の一覧を取得します。
func (c *Client) Issuers(ctx context.Context) ([]string, error) {
	var out dto.IssuersResponse
	if err := c.getJSON(ctx, "/api/meta/issuers", nil, &out); err != nil {
		return nil, err
	}
	return out.Issuers, nil
}

// Categories はカテゴリの一覧を取得します。
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out dto.CategoriesResponse
	if err := c.getJSON(ctx, "/api/meta/categories", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	res, err := c.do(ctx, path, q)
	if err != nil {
		return err
	}
	defer closeBody(res)

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do はGETリクエストを送り、2xx以外のレスポンスをエラーに変換します。
func (c *Client) do(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := c.cfg.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 400 {
		return res, nil
	}
	defer closeBody(res)

	var body dto.ErrorResponse
	_ = json.NewDecoder(res.Body).Decode(&body)
	if res.StatusCode == http.StatusNotFound && body.Error == domain.ErrETFNotFound.Error() {
		return nil, domain.ErrETFNotFound
	}
	if body.Error != "" {
		return nil, &HTTPError{StatusCode: res.StatusCode, Message: body.Error}
	}
	return nil, &HTTPError{StatusCode: res.StatusCode}
}

// HTTPError はサーバーがエラーステータスを返したことを表します。
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalogapi http %d", e.StatusCode)
	}
	return fmt.Sprintf("catalogapi http %d: %s", e.StatusCode, e.Message)
}

// IsStatus はerrが指定ステータスのHTTPErrorかどうかを返します。
func IsStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == status
}

func closeBody(res *http.Response) {
	if err := res.Body.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}
