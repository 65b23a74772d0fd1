// Package domain defines domain-level errors for the etfcatalog feature.
package domain

import "errors"

var (
	// ErrETFNotFound indicates that no ETF exists for the requested ticker.
	// It is distinct from an empty search result, which is not an error.
	ErrETFNotFound = errors.New("etf not found")
)
