package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultEnvFile is read before the environment is processed, when present
const DefaultEnvFile = ".env"

// Storage backends for emitted files
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for plotkit
type Config struct {
	// Output configuration
	OutputDir string `env:"PLOTKIT_OUTPUT_DIR,default=./output"`
	Storage   string `env:"PLOTKIT_STORAGE,default=local"`
	Minify    bool   `env:"PLOTKIT_MINIFY,default=true"`

	// GCS configuration (only for PLOTKIT_STORAGE=gcs)
	GCSBucket string `env:"GCS_BUCKET"`
	GCSPrefix string `env:"GCS_PREFIX"`

	// Rendering configuration
	Theme      string `env:"PLOTKIT_THEME,default=white"`
	AssetsHost string `env:"PLOTKIT_ASSETS_HOST,default=https://go-echarts.github.io/go-echarts-assets/assets/"`

	// Remote dataset fetching
	HTTPTimeout time.Duration `env:"PLOTKIT_HTTP_TIMEOUT,default=30s"`
	HTTPRetries int           `env:"PLOTKIT_HTTP_RETRIES,default=3"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from the environment, reading DefaultEnvFile first
// when it exists
func Load(ctx context.Context) (*Config, error) {
	return LoadWithEnvFile(ctx, DefaultEnvFile)
}

// LoadWithEnvFile loads configuration after applying the given dotenv file.
// Variables already present in the environment win over the file. A missing
// file is not an error.
func LoadWithEnvFile(ctx context.Context, envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageLocal:
		if c.OutputDir == "" {
			return fmt.Errorf("invalid config: PLOTKIT_OUTPUT_DIR must not be empty for local storage")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("invalid config: GCS_BUCKET is required when PLOTKIT_STORAGE=gcs")
		}
	default:
		return fmt.Errorf("invalid config: unsupported PLOTKIT_STORAGE %q (want %q or %q)", c.Storage, StorageLocal, StorageGCS)
	}
	if c.HTTPRetries < 0 {
		return fmt.Errorf("invalid config: PLOTKIT_HTTP_RETRIES must be >= 0, got %d", c.HTTPRetries)
	}
	return nil
}
