package query

import "net/url"

// Plan is the executable form of a State handed unchanged to a catalog reader.
type Plan struct {
	Predicate Predicate
	Sort      SortKey
	Dir       Direction
	Skip      int
	Take      int
}

// Plan compiles the state into a predicate, an ordering and a pagination window.
func (s State) Plan() Plan {
	return Plan{
		Predicate: Predicate{
			Text:       textMatches(s.Term),
			Issuers:    s.Issuers,
			Categories: s.Categories,
		},
		Sort: s.Sort,
		Dir:  s.Dir,
		Skip: (s.Page - 1) * s.PageSize,
		Take: s.PageSize,
	}
}

// Compile parses values and compiles the result in one step.
func Compile(values url.Values, defaultPageSize int) (State, Plan) {
	s := Parse(values, defaultPageSize)
	return s, s.Plan()
}
