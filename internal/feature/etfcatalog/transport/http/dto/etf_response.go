package dto

import (
	"time"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
)

// timestampLayout はISO-8601（UTC・ミリ秒）形式です。
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ETFItem はETF1件のレスポンスDTOです。欠損値はnullとして出力します。
type ETFItem struct {
	ID            string  `json:"id"`
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	Issuer        *string `json:"issuer"`        // 発行体
	Category      *string `json:"category"`      // カテゴリ
	ExpenseBps    *int    `json:"expenseBps"`    // 経費率（bps）
	AumUSD        *int64  `json:"aumUSD"`        // 純資産総額（USD）
	InceptionDate *string `json:"inceptionDate"` // 設定日
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ListResponse は一覧APIのレスポンスDTOです。
type ListResponse struct {
	Items    []ETFItem `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

// DetailResponse は詳細APIのレスポンスDTOです。
type DetailResponse struct {
	Item ETFItem `json:"item"`
}

// CompareResponse は比較APIのレスポンスDTOです。
type CompareResponse struct {
	Items   []ETFItem `json:"items"`
	Tickers []string  `json:"tickers"`
}

// IssuersResponse は発行体一覧のレスポンスDTOです。
type IssuersResponse struct {
	Issuers []string `json:"issuers"`
}

// CategoriesResponse はカテゴリ一覧のレスポンスDTOです。
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewETFItem はエンティティをレスポンスDTOに変換します。
func NewETFItem(e entity.ETF) ETFItem {
	item := ETFItem{
		ID:         e.ID,
		Ticker:     e.Ticker,
		Name:       e.Name,
		Issuer:     e.Issuer,
		Category:   e.Category,
		ExpenseBps: e.ExpenseBps,
		AumUSD:     e.AumUSD,
		CreatedAt:  FormatTimestamp(e.CreatedAt),
		UpdatedAt:  FormatTimestamp(e.UpdatedAt),
	}
	if e.InceptionDate != nil {
		d := FormatTimestamp(*e.InceptionDate)
		item.InceptionDate = &d
	}
	return item
}

// NewETFItems はエンティティのスライスを変換します。結果は常に非nilです。
func NewETFItems(rows []entity.ETF) []ETFItem {
	out := make([]ETFItem, 0, len(rows))
	for _, e := range rows {
		out = append(out, NewETFItem(e))
	}
	return out
}

// FormatTimestamp は時刻をUTCのミリ秒精度で整形します。設定日もこの形式で出力します。
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
