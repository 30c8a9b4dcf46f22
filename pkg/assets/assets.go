// Package assets turns record asset filenames into fetchable paths.
package assets

import "strings"

// DefaultBaseURL is where form PDFs are served from when nothing else is
// configured.
const DefaultBaseURL = "/static/forms/"

// Resolver joins a base URL and an asset filename.
type Resolver struct {
	BaseURL string
}

// NewResolver returns a resolver for base, falling back to DefaultBaseURL.
func NewResolver(base string) Resolver {
	if base == "" {
		base = DefaultBaseURL
	}
	return Resolver{BaseURL: base}
}

// Resolve returns BaseURL + filename with exactly one slash between them.
// An empty filename resolves to an empty string.
func (r Resolver) Resolve(filename string) string {
	if filename == "" {
		return ""
	}
	if r.BaseURL == "" {
		return filename
	}
	return strings.TrimSuffix(r.BaseURL, "/") + "/" + strings.TrimPrefix(filename, "/")
}
