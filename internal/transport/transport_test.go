package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/pkg/errors"
)

func TestAuthenticators(t *testing.T) {
	newReq := func() *http.Request {
		u, _ := url.Parse("https://example.com/latest?base=USD")
		return &http.Request{URL: u, Header: make(http.Header)}
	}

	req := newReq()
	(&NoAuth{}).Apply(req, "k")
	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}

	req = newReq()
	(&BearerAuth{}).Apply(req, "k")
	if got := req.Header.Get("Authorization"); got != "Bearer k" {
		t.Errorf("Authorization = %q", got)
	}

	req = newReq()
	(&HeaderAuth{Header: "x-api-key"}).Apply(req, "k")
	if got := req.Header.Get("x-api-key"); got != "k" {
		t.Errorf("x-api-key = %q", got)
	}

	req = newReq()
	(&QueryAuth{Param: "apikey"}).Apply(req, "k")
	if req.URL.Query().Get("apikey") != "k" || req.URL.Query().Get("base") != "USD" {
		t.Errorf("query = %q", req.URL.RawQuery)
	}

	(&QueryAuth{Param: "apikey"}).Apply(&http.Request{Header: make(http.Header)}, "k")
}

func TestParseAuth(t *testing.T) {
	assert.IsType(t, &NoAuth{}, ParseAuth(""))
	assert.IsType(t, &BearerAuth{}, ParseAuth("bearer"))
	assert.Equal(t, &HeaderAuth{Header: "x-key"}, ParseAuth("header:x-key"))
	assert.Equal(t, &QueryAuth{Param: "k"}, ParseAuth("query:k"))
	assert.IsType(t, &NoAuth{}, ParseAuth("header:"))
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"value": 42}`))
		case "/bad":
			_, _ = w.Write([]byte(`{"value":`))
		default:
			http.Error(w, "nope", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := New("test", WithAuth(&HeaderAuth{Header: "x-api-key"}, "secret"), WithHTTPClient(srv.Client()))
	assert.Equal(t, "test", c.Source())

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL+"/ok", &out))
	assert.Equal(t, 42, out.Value)

	err := c.GetJSON(context.Background(), srv.URL+"/down", &out)
	require.Error(t, err)
	assert.True(t, errors.IsUpstreamUnavailable(err))
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	err = c.GetJSON(context.Background(), srv.URL+"/bad", &out)
	assert.True(t, errors.IsUpstreamUnavailable(err))
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestGetJSON_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New("test").GetJSON(ctx, srv.URL, &struct{}{})
	assert.True(t, errors.IsUpstreamUnavailable(err))
}

func TestDo_ErrorOmitsQueryKey(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := New("rates", WithAuth(&QueryAuth{Param: "apikey"}, "SUPERSECRET"))
	err := c.GetJSON(context.Background(), addr+"/v6/latest/USD?base=USD", &struct{}{})
	require.Error(t, err)
	assert.True(t, errors.IsUpstreamUnavailable(err))
	assert.NotContains(t, err.Error(), "SUPERSECRET")

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, addr+"/v6/latest/USD", apiErr.Endpoint)
	if strings.Contains(apiErr.Message, "apikey") {
		t.Errorf("Message leaks the query: %q", apiErr.Message)
	}
}

func TestDo_StatusErrorOmitsQueryKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New("rates", WithAuth(&QueryAuth{Param: "apikey"}, "SUPERSECRET"), WithHTTPClient(srv.Client()))
	err := c.GetJSON(context.Background(), srv.URL+"/latest", &struct{}{})

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, srv.URL+"/latest", apiErr.Endpoint)
	assert.NotContains(t, err.Error(), "SUPERSECRET")
}
