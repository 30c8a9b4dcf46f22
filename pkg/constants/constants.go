// Package constants provides shared constants used throughout mariner:
// timeouts, intervals, limits and file permissions.
package constants

import "time"

// Timeouts.
const (
	// DefaultHTTPTimeout bounds a single request to an external data source.
	DefaultHTTPTimeout = 10 * time.Second

	// ReadTimeout is the default HTTP server read timeout.
	ReadTimeout = 10 * time.Second

	// WriteTimeout is the default HTTP server write timeout.
	WriteTimeout = 10 * time.Second

	// IdleTimeout is the default HTTP server idle timeout.
	IdleTimeout = 120 * time.Second

	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout = 10 * time.Second
)

// Intervals.
const (
	// DefaultRefreshInterval is how often port conditions are refetched.
	DefaultRefreshInterval = 60 * time.Second

	// MinRefreshInterval is the shortest interval the refresher accepts.
	MinRefreshInterval = time.Second

	// DefaultCacheTTL is the API response cache lifetime.
	DefaultCacheTTL = 30 * time.Second

	// RateLimiterCleanupInterval is how often idle per-client limiters are dropped.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// File permissions.
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limits.
const (
	// DefaultPageSize is the number of records visible at once in a carousel.
	DefaultPageSize = 4

	// MaxPageSize caps page_size on the HTTP API.
	MaxPageSize = 100

	// DefaultRateLimit is requests per minute per client on the HTTP API.
	DefaultRateLimit = 120

	// WebSocketSendBuffer is the per-client outbound message buffer.
	WebSocketSendBuffer = 256

	// SSEClientBuffer is the per-client outbound event buffer.
	SSEClientBuffer = 16
)
