// Package watchlist はユーザーのウォッチリスト（お気に入りティッカーの集合）を扱います。
//
// ウォッチリストはクライアント側の状態であり、サーバーには送られません。
// 「ウォッチのみ」表示は取得済みページに対する後段フィルターです。
package watchlist

import (
	"context"
	"slices"

	"etf_catalog/internal/feature/etfcatalog/domain/entity"
	"etf_catalog/internal/feature/etfcatalog/transport/http/dto"
)

// Store はウォッチリストの永続化インターフェースです。
type Store interface {
	Load(ctx context.Context) (Set, error)
	Save(ctx context.Context, s Set) error
}

// Set は正規化（大文字化）済みティッカーの集合です。
type Set map[string]struct{}

// NewSet は指定されたティッカーから集合を作ります。空のティッカーは無視します。
func NewSet(tickers ...string) Set {
	s := make(Set, len(tickers))
	for _, t := range tickers {
		s.Add(t)
	}
	return s
}

// Add はティッカーを追加し、追加されたかどうかを返します。
func (s Set) Add(ticker string) bool {
	t := entity.NormalizeTicker(ticker)
	if t == "" {
		return false
	}
	if _, ok := s[t]; ok {
		return false
	}
	s[t] = struct{}{}
	return true
}

// Remove はティッカーを削除し、削除されたかどうかを返します。
func (s Set) Remove(ticker string) bool {
	t := entity.NormalizeTicker(ticker)
	if _, ok := s[t]; !ok {
		return false
	}
	delete(s, t)
	return true
}

// Toggle は含まれていれば削除、なければ追加し、操作後に含まれているかを返します。
func (s Set) Toggle(ticker string) bool {
	if s.Remove(ticker) {
		return false
	}
	return s.Add(ticker)
}

// Has はティッカーが含まれるかを返します。
func (s Set) Has(ticker string) bool {
	_, ok := s[entity.NormalizeTicker(ticker)]
	return ok
}

// Tickers は昇順に並べたティッカーを返します。
func (s Set) Tickers() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// FilterPage は取得済みページのうちウォッチリストに含まれる行だけを返します。
// 合計はフィルター後の件数で、カタログ全体の件数ではありません。
func FilterPage(items []dto.ETFItem, s Set) ([]dto.ETFItem, int64) {
	out := make([]dto.ETFItem, 0, len(items))
	for _, it := range items {
		if s.Has(it.Ticker) {
			out = append(out, it)
		}
	}
	return out, int64(len(out))
}
