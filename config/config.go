// Package config loads the drip settings.
//
// Settings are layered, later wins: built-in defaults, an optional yaml or toml
// file, a .env file, environment variables and finally command-line flags,
// applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Provider names.
const (
	Yahoo  = "yahoo"
	EODHD  = "eodhd"
	Alpaca = "alpaca"
)

// EnvPrefix prefixes the drip specific environment variables, e.g. DRIP_PROVIDER.
const EnvPrefix = "DRIP"

// Config holds every setting of the drip commands.
//
// Settings are read from DRIP_ prefixed environment variables (DRIP_PROVIDER...).
// Provider credentials are also read from their usual environment variables
// (EODHD_API_KEY, APCA_API_KEY_ID...) when the prefixed one is not set.
type Config struct {
	Provider      string              `yaml:"provider" toml:"provider" split_words:"true"`
	CacheDir      string              `yaml:"cache_dir" toml:"cache_dir" split_words:"true"`
	Start         date.Date           `yaml:"start" toml:"start" split_words:"true"`
	End           date.Date           `yaml:"end" toml:"end" split_words:"true"`
	InitialShares decimal.Decimal     `yaml:"initial_shares" toml:"initial_shares" split_words:"true"`
	Sanitize      drip.SanitizePolicy `yaml:"sanitize" toml:"sanitize" split_words:"true"`
	Adjusted      bool                `yaml:"adjusted" toml:"adjusted" split_words:"true"`

	// envconfig falls back to the tag name without prefix.
	EODHDKey      string `yaml:"eodhd_api_key" toml:"eodhd_api_key" envconfig:"EODHD_API_KEY"`
	AlpacaKey     string `yaml:"alpaca_api_key" toml:"alpaca_api_key" envconfig:"APCA_API_KEY_ID"`
	AlpacaSecret  string `yaml:"alpaca_api_secret" toml:"alpaca_api_secret" envconfig:"APCA_API_SECRET_KEY"`
	AlpacaDataURL string `yaml:"alpaca_data_url" toml:"alpaca_data_url" envconfig:"APCA_API_DATA_URL"`
	AlpacaFeed    string `yaml:"alpaca_feed" toml:"alpaca_feed" split_words:"true"`
	GeminiModel   string `yaml:"gemini_model" toml:"gemini_model" split_words:"true"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Provider:      Yahoo,
		CacheDir:      os.TempDir(),
		Start:         drip.DefaultStart,
		End:           drip.DefaultEnd,
		InitialShares: decimal.NewFromInt(1),
		Sanitize:      drip.DropInvalid,
		AlpacaFeed:    "iex",
		GeminiModel:   "gemini-2.5-flash",
	}
}

// Load returns the defaults overridden by the file at path (if not empty), then
// by the environment. A .env file in the current directory is loaded first if present.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return &cfg, nil
}

// decodeFile decodes a yaml or toml file, depending on its extension.
func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("cannot parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("cannot parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file %q, want .yaml, .yml or .toml", path)
	}
	return nil
}

// Query returns the query for ticker over the configured range.
func (c *Config) Query(ticker string) drip.Query {
	return drip.NewQuery(ticker, c.Start, c.End)
}

// Options returns the analysis options.
func (c *Config) Options() drip.Options {
	return drip.Options{InitialShares: c.InitialShares, Sanitize: c.Sanitize}
}

// Validate checks the provider is known and has its credentials, and that the range is valid.
func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case Yahoo:
	case EODHD:
		if c.EODHDKey == "" {
			errs = append(errs, errors.New("eodhd provider requires EODHD_API_KEY"))
		}
	case Alpaca:
		if c.AlpacaKey == "" || c.AlpacaSecret == "" {
			errs = append(errs, errors.New("alpaca provider requires APCA_API_KEY_ID and APCA_API_SECRET_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q, want %s, %s or %s", c.Provider, Yahoo, EODHD, Alpaca))
	}
	if err := date.Between(c.Start, c.End).Validate(); err != nil {
		errs = append(errs, err)
	}
	if !c.InitialShares.IsPositive() {
		errs = append(errs, fmt.Errorf("%w: got %s", drip.ErrInvalidShares, c.InitialShares))
	}
	return errors.Join(errs...)
}
