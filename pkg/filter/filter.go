// Package filter decides which catalog records are visible under a
// category selection and a free-text query.
//
// Matches is the pure predicate. Controller owns one surface's filter
// state and recomputes the visible records synchronously on every change.
// A Controller is not safe for concurrent use; each render surface owns
// its own.
package filter

import (
	"strings"

	"github.com/harborline/mariner/pkg/catalogs"
)

// State is the category and query pair driving visibility.
type State struct {
	Category catalogs.Category `json:"category" yaml:"category"`
	Query    string            `json:"query" yaml:"query"`
}

// DefaultState returns the state a surface starts with: all categories,
// no text filter.
func DefaultState() State {
	return State{Category: catalogs.CategoryAll}
}

// IsDefault reports whether s restricts nothing.
func (s State) IsDefault() bool {
	return s.Category == catalogs.CategoryAll && s.Query == ""
}

// Matches reports whether r is visible under s. The category test passes
// for CategoryAll or an exact match. The text test passes for an empty
// query or a case-insensitive substring of the title or description. The
// query is used verbatim, so a whitespace-only query searches for that
// whitespace.
func Matches(r *catalogs.Record, s State) bool {
	return matchesCategory(r, s.Category) && matchesQuery(r, strings.ToLower(s.Query))
}

func matchesCategory(r *catalogs.Record, c catalogs.Category) bool {
	return c == catalogs.CategoryAll || r.Category == c
}

// matchesQuery expects needle already lower-cased.
func matchesQuery(r *catalogs.Record, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Description), needle)
}

// Apply returns the records of store visible under s, in store order.
func Apply(store *catalogs.Store, s State) []catalogs.Record {
	needle := strings.ToLower(s.Query)
	out := make([]catalogs.Record, 0, store.Len())
	store.Each(func(_ int, r *catalogs.Record) bool {
		if matchesCategory(r, s.Category) && matchesQuery(r, needle) {
			out = append(out, r.Clone())
		}
		return true
	})
	return out
}
