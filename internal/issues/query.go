package issues

import (
	"sort"
	"strings"

	"contribhub/internal/domain"
)

// SortMode selects the ordering of a filtered catalog.
type SortMode string

const (
	SortCommentsDesc SortMode = "comments-desc"
	SortCommentsAsc  SortMode = "comments-asc"
	SortNewest       SortMode = "newest"
	SortOldest       SortMode = "oldest"
)

// FilterAll disables difficulty filtering.
const FilterAll = "all"

// Query is the ephemeral view state driving filtering and sorting. It is
// consumed as a pure input; applying the same query to the same catalog
// always yields the same result.
type Query struct {
	Search     string
	Difficulty string // FilterAll or a domain.Difficulty value
	Sort       SortMode
}

// Matches reports whether the issue satisfies the query: an empty search or
// a case-insensitive substring match on title, description or repo, and a
// difficulty filter of "all" or an exact match.
func Matches(is domain.Issue, q Query) bool {
	if q.Difficulty != "" && q.Difficulty != FilterAll && string(is.Difficulty) != q.Difficulty {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(is.Title), needle) ||
		strings.Contains(strings.ToLower(is.Description), needle) ||
		strings.Contains(strings.ToLower(is.Repo), needle)
}

// Apply filters and sorts the catalog without mutating it. Sorting is
// stable: issues with equal sort keys keep their relative catalog order, so
// pagination stays deterministic across re-renders. An unrecognized sort
// mode keeps the catalog order as-is.
func Apply(catalog []domain.Issue, q Query) []domain.Issue {
	out := make([]domain.Issue, 0, len(catalog))
	for _, is := range catalog {
		if Matches(is, q) {
			out = append(out, is)
		}
	}

	switch q.Sort {
	case SortCommentsDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Comments > out[j].Comments })
	case SortCommentsAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Comments < out[j].Comments })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	}
	return out
}
