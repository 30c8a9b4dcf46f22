package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
)

// isolate points HOME and the working directory at an empty temp dir so
// no real config or .env file is read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.True(t, config.RefreshEnabled)
	assert.True(t, config.StaleGuard)
	assert.Equal(t, constants.DefaultRefreshInterval, config.RefreshInterval)
	assert.Empty(t, config.LogLevel, "LogLevel stays empty so -v/-q apply")
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfig_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("MARINER_DATA_DIR", "/srv/content")
	t.Setenv("MARINER_REFRESH_INTERVAL", "5m")
	t.Setenv("MARINER_STALE_GUARD", "false")
	t.Setenv("MARINER_RATES_BASE", "USD")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/content", config.DataDir)
	assert.Equal(t, 5*time.Minute, config.RefreshInterval)
	assert.False(t, config.StaleGuard)
	assert.Equal(t, "USD", config.RatesBase)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig_File(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "mariner.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
data_dir: ./content
asset_base_url: https://cdn.example.org/forms
refresh_enabled: false
weather_url: http://weather.test/v1/forecast
`), 0o600))

	config, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, file, config.ConfigFile)
	assert.Equal(t, "./content", config.DataDir)
	assert.Equal(t, "https://cdn.example.org/forms", config.AssetBaseURL)
	assert.False(t, config.RefreshEnabled)
	assert.Equal(t, "http://weather.test/v1/forecast", config.WeatherURL)
}

func TestLoadConfig_HomeFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mariner.yaml"), []byte("rates_base: GBP\n"), 0o600))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "GBP", config.RatesBase)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfig("/nonexistent/mariner.yaml")
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadConfig_IntervalTooShort(t *testing.T) {
	isolate(t)
	t.Setenv("MARINER_REFRESH_INTERVAL", "100ms")

	_, err := LoadConfig("")
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "refresh_interval")
}

func TestLoadConfig_EnvFilePrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MARINER_RATES_BASE=EUR\nMARINER_ASSET_BASE_URL=https://env.example.org\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("MARINER_RATES_BASE=NOK\n"), 0o600))
	// godotenv sets process variables; register them for cleanup.
	t.Setenv("MARINER_RATES_BASE", "")
	t.Setenv("MARINER_ASSET_BASE_URL", "")
	require.NoError(t, os.Unsetenv("MARINER_RATES_BASE"))
	require.NoError(t, os.Unsetenv("MARINER_ASSET_BASE_URL"))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "NOK", config.RatesBase)
	assert.Equal(t, "https://env.example.org", config.AssetBaseURL)
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "warn"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "warn", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "json", "trace")
	assert.False(t, config.Verbose)
	assert.True(t, config.Quiet)
	assert.True(t, config.NoColor, "--no-color cannot be turned off once set")
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "trace", config.LogLevel)
}
