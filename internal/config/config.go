package config

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// devJWTSecret is only used outside production when JWT_SECRET is unset
const devJWTSecret = "default_super_secret_key"

// Config holds runtime configuration for the API
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	DBFile      string `envconfig:"DB_FILE" default:"data/mock_db.json"`
	DBDSN       string `envconfig:"DB_DSN"`

	JWTSecret    string        `envconfig:"JWT_SECRET"`
	JWTExpiresIn time.Duration `envconfig:"JWT_EXPIRES_IN" default:"1h"`
	BcryptCost   int           `envconfig:"BCRYPT_COST" default:"10"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173,http://localhost:5000"`

	AuthRateLimitRPS   float64 `envconfig:"AUTH_RATE_LIMIT_RPS" default:"5"`
	AuthRateLimitBurst int     `envconfig:"AUTH_RATE_LIMIT_BURST" default:"10"`
}

// Load reads configs/.env when present and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET environment variable is required in production mode")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	switch c.StoreDriver {
	case DriverFile:
		if c.DBFile == "" {
			return errors.New("DB_FILE is required for the file store")
		}
	case DriverPostgres, DriverSQLite:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for the %s store", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.AuthRateLimitRPS <= 0 || c.AuthRateLimitBurst <= 0 {
		return errors.New("auth rate limit must be positive")
	}
	return nil
}

// IsProduction returns true when the API runs in production
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// AllowAllOrigins reports whether CORS is open to any origin
func (c *Config) AllowAllOrigins() bool {
	return slices.Contains(c.CORSAllowedOrigins, "*")
}
