// Package query turns an untrusted URL parameter bag into a validated listing plan.
//
// Parsing never fails: malformed or adversarial input degrades to defaults. The listing
// and the CSV export both compile their plan here, so the two cannot select different rows
// for the same parameters.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Parameter names of the request contract shared by every consumer.
const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamTerm     = "q"
	ParamSort     = "sort"
	ParamDir      = "dir"
	ParamIssuer   = "issuer"
	ParamCategory = "category"
)

const (
	// DefaultListPageSize is the page size of the JSON listing when none is given.
	DefaultListPageSize = 50
	// DefaultExportPageSize is the page size of the CSV export when none is given.
	DefaultExportPageSize = 10
	// DefaultClientPageSize is the page size the interactive client starts with.
	DefaultClientPageSize = 10
)

// State is the canonical, always-valid form of a search request.
type State struct {
	Page       int
	PageSize   int
	Term       string
	Sort       SortKey
	Dir        Direction
	Issuers    []string
	Categories []string
}

// Parse normalizes a raw parameter bag into a State.
// defaultPageSize is the endpoint's default; a non-positive value falls back to DefaultListPageSize.
func Parse(values url.Values, defaultPageSize int) State {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultListPageSize
	}
	return State{
		Page:       positiveInt(values.Get(ParamPage), 1),
		PageSize:   positiveInt(values.Get(ParamPageSize), defaultPageSize),
		Term:       strings.TrimSpace(values.Get(ParamTerm)),
		Sort:       ParseSortKey(values.Get(ParamSort)),
		Dir:        ParseDirection(values.Get(ParamDir)),
		Issuers:    SplitList(values.Get(ParamIssuer)),
		Categories: SplitList(values.Get(ParamCategory)),
	}
}

// positiveInt parses a base-10 integer in the 32-bit range, returning fallback
// when the text is not a number, not positive, or above math.MaxInt32.
// Both paging values stay below 2^31 so the skip offset fits in an int64.
func positiveInt(raw string, fallback int) int {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || n <= 0 {
		return fallback
	}
	return int(n)
}

// SplitList splits a comma-separated list, trimming entries and dropping empty
// ones and repeats. The first occurrence of each value keeps its position.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
