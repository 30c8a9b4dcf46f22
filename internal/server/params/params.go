// Package params parses the query parameters shared by the catalog
// endpoints: category, q, offset, page and page_size.
package params

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/filter"
)

// Query holds the parsed parameters of a list request.
type Query struct {
	State    filter.State
	Offset   int
	PageSize int
}

// ParseFilter extracts the filter state. The category is not checked
// against a taxonomy here; the filter controller does that.
func ParseFilter(r *http.Request) filter.State {
	q := r.URL.Query()
	state := filter.DefaultState()
	if c := q.Get("category"); c != "" {
		state.Category = catalogs.Category(c)
	}
	state.Query = q.Get("q")
	return state
}

// Parse extracts the filter state and the window position. offset wins
// over page when both are present; page is 1-based.
func Parse(r *http.Request) (Query, error) {
	q := r.URL.Query()
	query := Query{
		State:    ParseFilter(r),
		PageSize: constants.DefaultPageSize,
	}

	var err error
	if query.PageSize, err = parseInt(q, "page_size", constants.DefaultPageSize); err != nil {
		return Query{}, err
	}
	if query.PageSize < 1 || query.PageSize > constants.MaxPageSize {
		return Query{}, errors.NewValidationError("page_size", query.PageSize,
			"must be between 1 and "+strconv.Itoa(constants.MaxPageSize))
	}

	if q.Has("offset") {
		if query.Offset, err = parseInt(q, "offset", 0); err != nil {
			return Query{}, err
		}
		if query.Offset < 0 {
			return Query{}, errors.NewValidationError("offset", query.Offset, "must not be negative")
		}
		return query, nil
	}

	page, err := parseInt(q, "page", 1)
	if err != nil {
		return Query{}, err
	}
	if page < 1 {
		return Query{}, errors.NewValidationError("page", page, "must be at least 1")
	}
	query.Offset = (page - 1) * query.PageSize
	return query, nil
}

// CacheKey returns a canonical form of the request's recognized
// parameters, independent of their order in the URL.
func CacheKey(r *http.Request) string {
	q := r.URL.Query()
	canon := url.Values{}
	for _, k := range []string{"category", "q", "offset", "page", "page_size"} {
		if q.Has(k) {
			canon.Set(k, q.Get(k))
		}
	}
	return canon.Encode()
}

func parseInt(q url.Values, key string, def int) (int, error) {
	s := q.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError(key, s, "must be an integer")
	}
	return n, nil
}
