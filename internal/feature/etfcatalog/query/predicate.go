package query

import "strings"

// TextField is a column the free-text term is matched against.
type TextField int

const (
	FieldTicker TextField = iota
	FieldName
	FieldIssuer
)

// textFields lists the searchable columns in match order.
var textFields = []TextField{FieldTicker, FieldName, FieldIssuer}

// Column returns the storage column for the field.
func (f TextField) Column() string {
	switch f {
	case FieldName:
		return "name"
	case FieldIssuer:
		return "issuer"
	default:
		return "ticker"
	}
}

// TextMatch is a case-sensitive substring condition: Field contains Needle.
type TextMatch struct {
	Field  TextField
	Needle string
}

// Predicate is the compiled matching rule.
// Text conditions are OR-ed together; the resulting group, Issuers and Categories are AND-ed.
// An empty slice places no constraint on that part.
type Predicate struct {
	Text       []TextMatch
	Issuers    []string
	Categories []string
}

// MatchAll reports whether the predicate places no constraint at all.
func (p Predicate) MatchAll() bool {
	return len(p.Text) == 0 && len(p.Issuers) == 0 && len(p.Categories) == 0
}

// textMatches expands a trimmed term into the original, lower-cased and upper-cased
// variants against ticker, name and issuer. Stores whose substring match is case-sensitive
// therefore still find "spy" in "SPY".
func textMatches(term string) []TextMatch {
	if term == "" {
		return nil
	}
	variants := []string{term, strings.ToLower(term), strings.ToUpper(term)}
	out := make([]TextMatch, 0, len(textFields)*len(variants))
	for _, f := range textFields {
		for _, v := range variants {
			out = append(out, TextMatch{Field: f, Needle: v})
		}
	}
	return out
}
