package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers understood by the client.
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds runtime configuration for the portal client.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	APIBaseURL string        `envconfig:"PORTAL_API_URL" required:"true"`
	APITimeout time.Duration `envconfig:"PORTAL_API_TIMEOUT" default:"20s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	StoragePrefix string `envconfig:"STORAGE_PREFIX" default:"portal"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	DefaultLanguage string `envconfig:"PORTAL_LANGUAGE" default:"en"`

	WatchRateLimit int `envconfig:"WATCH_RATE_LIMIT" default:"60"`
}

// LoadEnvFiles copies variables from the given dotenv files into the process
// environment. Variables already set win; missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, errors.New("api base url must be provided")
	}
	switch cfg.StorageDriver {
	case StorageMemory, StorageRedis:
	default:
		return nil, errors.New("storage driver must be memory or redis")
	}
	return &cfg, nil
}

// IsProduction returns true when the client runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
