package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/harborline/mariner"
	"github.com/harborline/mariner/pkg/logging"
)

// Mock implements Interface for tests. Nil function fields return zero
// values; a nil LoggerFunc returns a no-op logger.
type Mock struct {
	ClientFunc            func() (mariner.Client, error)
	ClientWithOptionsFunc func(...mariner.Option) (mariner.Client, error)
	LoggerFunc            func() *zerolog.Logger
	Format                string
	VersionString         string
}

var _ Interface = (*Mock)(nil)

// Client implements Interface.
func (m *Mock) Client() (mariner.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// ClientWithOptions implements Interface.
func (m *Mock) ClientWithOptions(opts ...mariner.Option) (mariner.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return m.Client()
}

// Logger implements Interface.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat implements Interface.
func (m *Mock) OutputFormat() string { return m.Format }

// Version implements Interface.
func (m *Mock) Version() string { return m.VersionString }

// Commit implements Interface.
func (m *Mock) Commit() string { return "" }

// Date implements Interface.
func (m *Mock) Date() string { return "" }

// BuiltBy implements Interface.
func (m *Mock) BuiltBy() string { return "" }
