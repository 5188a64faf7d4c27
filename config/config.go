package config

import (
	"errors"
	"fmt"
	"github.com/go-kit/log/level"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"io/fs"
	"time"
)

// Config settings for the converter, read from the environment
type Config struct {
	API      API    `env-prefix:"CONVERTER_API_"`
	DB       DB     `env-prefix:"CONVERTER_DB_"`
	LogLevel string `env:"CONVERTER_LOG_LEVEL" env-default:"warn" env-description:"debug, info, warn or error"`
}

// API the exchange rate service
type API struct {
	URL     string        `env:"URL" env-default:"https://api.exchangerate.host" env-description:"exchange rate service base url"`
	Key     string        `env:"KEY" env-description:"access key, sent as access_key when set"`
	Timeout time.Duration `env:"TIMEOUT" env-default:"5s" env-description:"timeout for each service request"`
}

// DB the rate table database
type DB struct {
	DSN     string `env:"DSN" env-default:"postgres://localhost:5432/currency?sslmode=disable" env-description:"postgres connection string"`
	Migrate bool   `env:"MIGRATE" env-default:"true" env-description:"create and seed the rate table on start"`
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the .env file.
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.API.URL == "" {
		return nil, errors.New("CONVERTER_API_URL must not be empty")
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("CONVERTER_API_TIMEOUT must be positive, got %v", cfg.API.Timeout)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Level converts LogLevel into a go-kit level filter option
func (c *Config) Level() (level.Option, error) {
	switch c.LogLevel {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("CONVERTER_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
}

// Usage describes every variable Config reads
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return text
}
