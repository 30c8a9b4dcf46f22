package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies an API key to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth applies nothing. The public weather endpoint needs no key.
type NoAuth struct{}

// Apply implements Authenticator.
func (a *NoAuth) Apply(_ *http.Request, _ string) {}

// BearerAuth sends the key as a bearer token.
type BearerAuth struct{}

// Apply implements Authenticator.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}

// HeaderAuth sends the key in a custom header.
type HeaderAuth struct {
	Header string
}

// Apply implements Authenticator.
func (a *HeaderAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set(a.Header, apiKey)
}

// QueryAuth sends the key as a query parameter.
type QueryAuth struct {
	Param string
}

// Apply implements Authenticator.
func (a *QueryAuth) Apply(req *http.Request, apiKey string) {
	if req.URL == nil {
		return
	}
	query := req.URL.Query()
	query.Set(a.Param, apiKey)
	req.URL.RawQuery = query.Encode()
}

// ParseAuth maps a config value ("", "none", "bearer", "header:<name>",
// "query:<param>") to an Authenticator.
func ParseAuth(mode string) Authenticator {
	if mode == "bearer" {
		return &BearerAuth{}
	}
	if name, ok := strings.CutPrefix(mode, "header:"); ok && name != "" {
		return &HeaderAuth{Header: name}
	}
	if param, ok := strings.CutPrefix(mode, "query:"); ok && param != "" {
		return &QueryAuth{Param: param}
	}
	return &NoAuth{}
}
