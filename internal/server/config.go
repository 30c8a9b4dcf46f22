package server

import (
	"time"

	"github.com/harborline/mariner/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// PathPrefix is prepended to every API route.
	PathPrefix string

	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is requests per minute per client IP (0 to disable).
	RateLimit int
	CacheTTL  time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// PagesEnabled mounts the HTML pages at /forms, /ships and /ports/{slug}.
	PagesEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		PathPrefix:   "/api/v1",
		CORSEnabled:  false,
		CORSOrigins:  []string{},
		RateLimit:    constants.DefaultRateLimit,
		CacheTTL:     constants.DefaultCacheTTL,
		ReadTimeout:  constants.ReadTimeout,
		WriteTimeout: constants.WriteTimeout,
		IdleTimeout:  constants.IdleTimeout,
		PagesEnabled: true,
	}
}
