package mariner

import (
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/harborline/mariner/pkg/conditions"
	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
)

// Option is a function that configures a Client.
type Option func(*options) error

// options holds the configuration applied by New.
type options struct {
	fsys            fs.FS
	dataDir         string
	assetBaseURL    string
	source          conditions.Source
	weatherURL      string
	ratesURL        string
	ratesBase       string
	ratesKey        string
	ratesAuth       string
	httpClient      *http.Client
	refreshInterval time.Duration
	refreshDisabled bool
	staleGuard      bool
	logger          *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		refreshInterval: constants.DefaultRefreshInterval,
		staleGuard:      true,
	}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithDataDir loads content from a directory instead of the embedded set.
func WithDataDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return nil
		}
		info, err := os.Stat(dir)
		if err != nil {
			return errors.WrapIO("stat", dir, err)
		}
		if !info.IsDir() {
			return errors.NewValidationError("data_dir", dir, "is not a directory")
		}
		o.dataDir = dir
		return nil
	}
}

// WithFS loads content from fsys. It takes precedence over WithDataDir.
func WithFS(fsys fs.FS) Option {
	return func(o *options) error {
		o.fsys = fsys
		return nil
	}
}

// WithAssetBaseURL sets the base URL form PDFs resolve against.
func WithAssetBaseURL(base string) Option {
	return func(o *options) error {
		o.assetBaseURL = base
		return nil
	}
}

// WithConditionsSource replaces the weather and rates sources.
func WithConditionsSource(src conditions.Source) Option {
	return func(o *options) error {
		o.source = src
		return nil
	}
}

// WithWeatherURL overrides the weather endpoint.
func WithWeatherURL(url string) Option {
	return func(o *options) error {
		o.weatherURL = url
		return nil
	}
}

// WithRatesURL overrides the exchange-rate endpoint and base currency.
func WithRatesURL(url, base string) Option {
	return func(o *options) error {
		o.ratesURL = url
		o.ratesBase = base
		return nil
	}
}

// WithRatesKey sets the API key of the exchange-rate endpoint. auth
// names how it is sent: "bearer", "header:<name>" or "query:<param>".
func WithRatesKey(key, auth string) Option {
	return func(o *options) error {
		o.ratesKey = key
		o.ratesAuth = auth
		return nil
	}
}

// WithHTTPClient sets the client used by the default condition sources.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithRefreshInterval configures how often port conditions are refetched.
func WithRefreshInterval(interval time.Duration) Option {
	return func(o *options) error {
		if interval < constants.MinRefreshInterval {
			return &errors.ValidationError{
				Field:   "refresh_interval",
				Value:   interval,
				Message: "must be at least " + constants.MinRefreshInterval.String(),
			}
		}
		o.refreshInterval = interval
		return nil
	}
}

// WithRefreshDisabled keeps conditions from refreshing in the background.
// Conditions can still be fetched on demand.
func WithRefreshDisabled() Option {
	return func(o *options) error {
		o.refreshDisabled = true
		return nil
	}
}

// WithStaleGuard controls whether out-of-order condition responses are
// dropped. Enabled by default.
func WithStaleGuard(enabled bool) Option {
	return func(o *options) error {
		o.staleGuard = enabled
		return nil
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
