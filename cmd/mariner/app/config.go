package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/harborline/mariner/pkg/constants"
	"github.com/harborline/mariner/pkg/errors"
)

// EnvPrefix prefixes the environment variables of the config keys,
// e.g. MARINER_DATA_DIR.
const EnvPrefix = "MARINER"

// Config holds the application configuration loaded from flags,
// environment variables, .env files and ~/.mariner.yaml.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the file that was read, if any.
	ConfigFile string

	// Content and conditions
	DataDir         string
	AssetBaseURL    string
	RefreshEnabled  bool
	RefreshInterval time.Duration
	StaleGuard      bool
	WeatherURL      string
	RatesURL        string
	RatesBase       string
	RatesAPIKey     string
	RatesAuth       string

	// Logging
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables
//  3. .env.local, then .env
//  4. file, or ~/.mariner.yaml and ./.mariner.yaml when file is empty
//  5. Defaults
func LoadConfig(file string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("refresh_enabled", true)
	v.SetDefault("refresh_interval", constants.DefaultRefreshInterval)
	v.SetDefault("stale_guard", true)
	v.SetDefault("format", "")

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "cannot read "+file, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".mariner")
		// A missing default config file is fine.
		_ = v.ReadInConfig()
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		DataDir:         v.GetString("data_dir"),
		AssetBaseURL:    v.GetString("asset_base_url"),
		RefreshEnabled:  v.GetBool("refresh_enabled"),
		RefreshInterval: v.GetDuration("refresh_interval"),
		StaleGuard:      v.GetBool("stale_guard"),
		WeatherURL:      v.GetString("weather_url"),
		RatesURL:        v.GetString("rates_url"),
		RatesBase:       v.GetString("rates_base"),
		RatesAPIKey:     v.GetString("rates_api_key"),
		RatesAuth:       v.GetString("rates_auth"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.RefreshInterval < constants.MinRefreshInterval {
		return nil, errors.NewConfigError("config",
			"refresh_interval must be at least "+constants.MinRefreshInterval.String(), nil)
	}
	return config, nil
}

// UpdateFromFlags applies parsed command flags, which take precedence
// over every other source. Empty strings leave the loaded value alone.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads .env.local then .env. godotenv never overrides a
// variable that is already set, so the real environment wins over both
// and .env.local wins over .env.
func loadEnvFiles() {
	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
