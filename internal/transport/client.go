// Package transport is the HTTP client used to reach external condition
// sources (weather, exchange rates).
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
	"github.com/harborline/mariner/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// Client performs JSON requests against one upstream source.
type Client struct {
	http   *http.Client
	auth   Authenticator
	apiKey string
	source string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithAuth sets the authenticator and the key it applies.
func WithAuth(auth Authenticator, apiKey string) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
		c.apiKey = apiKey
	}
}

// New creates a client for the named source.
func New(source string, opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: DefaultHTTPTimeout},
		auth:   &NoAuth{},
		source: source,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the name used in errors and logs.
func (c *Client) Source() string {
	return c.source
}

// Do performs a request with authentication and JSON headers applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		// *url.Error prints the full URL, which may carry the key.
		cause := err
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			cause = urlErr.Err
		}
		target := endpoint(req.URL)
		return nil, &errors.APIError{
			Source:   c.source,
			Endpoint: target,
			Message:  req.Method + " " + target + ": " + cause.Error(),
			Err:      cause,
		}
	}
	return resp, nil
}

// GetJSON fetches url and decodes a 200 JSON body into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewValidationError("url", url, err.Error())
	}

	logging.FromContext(ctx).Debug().
		Str("source", c.source).
		Str("url", endpoint(req.URL)).
		Msg("Fetching upstream")

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return c.decode(ctx, resp, target)
}

func (c *Client) decode(ctx context.Context, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("source", c.source).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.WrapAPI(c.source, resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Source:     c.source,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint(resp.Request.URL),
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapAPI(c.source, resp.StatusCode, errors.WrapParse("json", "response", err))
	}
	return nil
}

// endpoint renders u without its query, fragment and user info.
func endpoint(u *url.URL) string {
	clean := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path, RawPath: u.RawPath}
	return clean.String()
}
