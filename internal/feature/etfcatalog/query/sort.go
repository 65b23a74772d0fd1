package query

import "strings"

// SortKey is the closed set of columns a listing can be ordered by.
// The zero value is SortTicker.
type SortKey int

const (
	SortTicker SortKey = iota
	SortName
	SortIssuer
	SortExpenseBps
	SortAumUSD
	SortInceptionDate
)

// sortKeyNames maps each SortKey to its wire spelling.
var sortKeyNames = [...]string{
	SortTicker:        "ticker",
	SortName:          "name",
	SortIssuer:        "issuer",
	SortExpenseBps:    "expenseBps",
	SortAumUSD:        "aumUSD",
	SortInceptionDate: "inceptionDate",
}

// SortKeys returns every accepted sort key in declaration order.
func SortKeys() []SortKey {
	return []SortKey{SortTicker, SortName, SortIssuer, SortExpenseBps, SortAumUSD, SortInceptionDate}
}

// ParseSortKey resolves a raw parameter against the whitelist.
// Unknown values, including other column names, resolve to SortTicker.
func ParseSortKey(raw string) SortKey {
	switch strings.TrimSpace(raw) {
	case "name":
		return SortName
	case "issuer":
		return SortIssuer
	case "expenseBps":
		return SortExpenseBps
	case "aumUSD":
		return SortAumUSD
	case "inceptionDate":
		return SortInceptionDate
	default:
		return SortTicker
	}
}

// String returns the wire spelling of the key.
func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return sortKeyNames[SortTicker]
	}
	return sortKeyNames[k]
}

// Column returns the storage column backing the key.
// The mapping is fixed; an out-of-range key falls back to the ticker column.
func (k SortKey) Column() string {
	switch k {
	case SortName:
		return "name"
	case SortIssuer:
		return "issuer"
	case SortExpenseBps:
		return "expense_bps"
	case SortAumUSD:
		return "aum_usd"
	case SortInceptionDate:
		return "inception_date"
	default:
		return "ticker"
	}
}

// Direction is the ordering direction of a listing.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection maps "desc" (any casing) to Descending and everything else to Ascending.
func ParseDirection(raw string) Direction {
	if strings.EqualFold(strings.TrimSpace(raw), "desc") {
		return Descending
	}
	return Ascending
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Desc reports whether the direction is descending.
func (d Direction) Desc() bool {
	return d == Descending
}
