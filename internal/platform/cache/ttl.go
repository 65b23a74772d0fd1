package cache

import (
	"os"
	"strings"
	"time"
)

// DefaultFacetTTL はファセットキャッシュのデフォルト有効期間です。
const DefaultFacetTTL = 10 * time.Minute

// FacetTTLFromEnv はFACET_CACHE_TTL（"90s"、"15m"などのtime.Duration形式）を読み込みます。
// 未設定・不正・0以下の値はDefaultFacetTTLになります。
func FacetTTLFromEnv() time.Duration {
	return ParseTTL(os.Getenv("FACET_CACHE_TTL"), DefaultFacetTTL)
}

// ParseTTL は期間文字列を解釈し、解釈できなければfallbackを返します。
func ParseTTL(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
