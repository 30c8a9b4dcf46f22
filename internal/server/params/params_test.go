package params

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/pkg/catalogs"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		url      string
		category catalogs.Category
		query    string
	}{
		{"/forms", catalogs.CategoryAll, ""},
		{"/forms?category=medical", catalogs.FormMedical, ""},
		{"/forms?q=leave", catalogs.CategoryAll, "leave"},
		{"/forms?category=leave&q=Annual", catalogs.FormLeave, "Annual"},
		{"/forms?q=%20", catalogs.CategoryAll, " "},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			state := ParseFilter(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.category, state.Category)
			assert.Equal(t, tt.query, state.Query)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		url      string
		offset   int
		pageSize int
	}{
		{"/spots", 0, constants.DefaultPageSize},
		{"/spots?offset=4", 4, constants.DefaultPageSize},
		{"/spots?offset=3&page_size=2", 3, 2},
		{"/spots?page=2", constants.DefaultPageSize, constants.DefaultPageSize},
		{"/spots?page=3&page_size=5", 10, 5},
		{"/spots?offset=1&page=9", 1, constants.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			q, err := Parse(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.offset, q.Offset)
			assert.Equal(t, tt.pageSize, q.PageSize)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, url := range []string{
		"/spots?offset=-1",
		"/spots?offset=abc",
		"/spots?page=0",
		"/spots?page=x",
		"/spots?page_size=0",
		"/spots?page_size=1000",
	} {
		t.Run(url, func(t *testing.T) {
			_, err := Parse(httptest.NewRequest("GET", url, nil))
			if !errors.IsValidationError(err) {
				t.Errorf("Parse(%s) error = %v, want validation error", url, err)
			}
		})
	}
}

func TestCacheKey_IgnoresOrderAndUnknownParams(t *testing.T) {
	a := CacheKey(httptest.NewRequest("GET", "/forms?q=leave&category=leave&utm=x", nil))
	b := CacheKey(httptest.NewRequest("GET", "/forms?category=leave&q=leave", nil))
	assert.Equal(t, a, b)
}
