package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Values encodes the state back into URL parameters.
// Defaults other than pageSize are omitted, so Parse(s.Values(), n) == s for any n.
// Filter values that themselves contain commas cannot be represented.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.PageSize > 0 {
		v.Set(ParamPageSize, strconv.Itoa(s.PageSize))
	}
	if s.Term != "" {
		v.Set(ParamTerm, s.Term)
	}
	if s.Sort != SortTicker {
		v.Set(ParamSort, s.Sort.String())
	}
	if s.Dir == Descending {
		v.Set(ParamDir, s.Dir.String())
	}
	if len(s.Issuers) > 0 {
		v.Set(ParamIssuer, strings.Join(s.Issuers, ","))
	}
	if len(s.Categories) > 0 {
		v.Set(ParamCategory, strings.Join(s.Categories, ","))
	}
	return v
}

// WithSort selects a sort column. Selecting the current column again flips the
// direction; a new column starts ascending. The page resets to 1.
func (s State) WithSort(k SortKey) State {
	if s.Sort == k {
		if s.Dir == Ascending {
			s.Dir = Descending
		} else {
			s.Dir = Ascending
		}
	} else {
		s.Sort = k
		s.Dir = Ascending
	}
	s.Page = 1
	return s
}

// WithPage moves to page n; non-positive values select page 1.
func (s State) WithPage(n int) State {
	if n < 1 {
		n = 1
	}
	s.Page = n
	return s
}

// WithPageSize changes the page size and resets the page. Non-positive sizes are ignored.
func (s State) WithPageSize(n int) State {
	if n < 1 {
		return s
	}
	s.PageSize = n
	s.Page = 1
	return s
}

// WithTerm replaces the free-text term and resets the page.
func (s State) WithTerm(term string) State {
	s.Term = strings.TrimSpace(term)
	s.Page = 1
	return s
}

// WithIssuers replaces the issuer filter and resets the page.
func (s State) WithIssuers(issuers ...string) State {
	s.Issuers = SplitList(strings.Join(issuers, ","))
	s.Page = 1
	return s
}

// WithCategories replaces the category filter and resets the page.
func (s State) WithCategories(categories ...string) State {
	s.Categories = SplitList(strings.Join(categories, ","))
	s.Page = 1
	return s
}
