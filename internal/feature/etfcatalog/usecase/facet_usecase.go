package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FacetUsecase lists the distinct filter values offered by the client.
// Values always reflect the full catalog, independent of any active query.
type FacetUsecase struct {
	repo FacetRepository
	tag  language.Tag
}

// NewFacetUsecase creates a FacetUsecase that sorts values with English collation.
func NewFacetUsecase(repo FacetRepository) *FacetUsecase {
	return &FacetUsecase{repo: repo, tag: language.English}
}

// Issuers returns the distinct, trimmed, non-empty issuers in collation order.
func (u *FacetUsecase) Issuers(ctx context.Context) ([]string, error) {
	raw, err := u.repo.DistinctIssuers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list issuers: %w", err)
	}
	return u.normalize(raw), nil
}

// Categories returns the distinct, trimmed, non-empty categories in collation order.
func (u *FacetUsecase) Categories(ctx context.Context) ([]string, error) {
	raw, err := u.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return u.normalize(raw), nil
}

// normalize trims and de-duplicates values exactly (no case folding) and sorts them.
// A Collator is not safe for concurrent use, so one is built per call.
func (u *FacetUsecase) normalize(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	collate.New(u.tag).SortStrings(out)
	return out
}
