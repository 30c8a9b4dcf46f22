// Package appcontext defines what commands need from the application.
// The App in cmd/mariner/app implements Interface; tests use Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/harborline/mariner"
)

// Interface is the application context handed to commands.
type Interface interface {
	// Client returns the shared mariner client, creating it on first use.
	Client() (mariner.Client, error)

	// ClientWithOptions creates a separate client from the configured
	// options followed by opts.
	ClientWithOptions(opts ...mariner.Option) (mariner.Client, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the --format value; empty means detect.
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
