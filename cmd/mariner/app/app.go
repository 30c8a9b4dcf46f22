// Package app wires configuration, logging and the mariner client for the
// CLI and hands them to commands through appcontext.Interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/internal/appcontext"
	"github.com/harborline/mariner/pkg/errors"
)

// App holds the dependencies shared by every command.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	mu     sync.RWMutex
	client mariner.Client
}

var _ appcontext.Interface = (*App)(nil)

// New creates an App with configuration loaded from the environment and
// the default config file.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	a.config = config

	logger := NewLogger(config)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string { return a.config.Format }

// Client returns the shared client, creating it on first use.
func (a *App) Client() (mariner.Client, error) {
	a.mu.RLock()
	if c := a.client; c != nil {
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	c, err := mariner.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.NewConfigError("client", "cannot load content", err)
	}
	a.client = c
	return c, nil
}

// ClientWithOptions creates a separate client from the configured options
// followed by opts.
func (a *App) ClientWithOptions(opts ...mariner.Option) (mariner.Client, error) {
	c, err := mariner.New(append(a.clientOptions(), opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("client", "cannot load content", err)
	}
	return c, nil
}

// Shutdown stops the conditions refresh of the shared client.
func (a *App) Shutdown(context.Context) error {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()
	if c != nil {
		c.RefreshOff()
	}
	return nil
}

func (a *App) clientOptions() []mariner.Option {
	cfg := a.config
	opts := []mariner.Option{
		mariner.WithLogger(a.logger),
		mariner.WithDataDir(cfg.DataDir),
		mariner.WithAssetBaseURL(cfg.AssetBaseURL),
		mariner.WithStaleGuard(cfg.StaleGuard),
	}
	if cfg.RefreshEnabled {
		opts = append(opts, mariner.WithRefreshInterval(cfg.RefreshInterval))
	} else {
		opts = append(opts, mariner.WithRefreshDisabled())
	}
	if cfg.WeatherURL != "" {
		opts = append(opts, mariner.WithWeatherURL(cfg.WeatherURL))
	}
	if cfg.RatesURL != "" || cfg.RatesBase != "" {
		opts = append(opts, mariner.WithRatesURL(cfg.RatesURL, cfg.RatesBase))
	}
	if cfg.RatesAPIKey != "" {
		opts = append(opts, mariner.WithRatesKey(cfg.RatesAPIKey, cfg.RatesAuth))
	}
	return opts
}

// Option configures an App.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets the client, skipping lazy creation.
func WithClient(c mariner.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
