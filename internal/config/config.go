package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is everything the server reads from its environment.
type Config struct {
	AppEnv          string `validate:"required"`
	HTTPAddr        string `validate:"required"`
	DBDriver        string `validate:"oneof=sqlite postgres"`
	DBDSN           string `validate:"required"`
	ExtendedSchema  bool
	RateLimitRPS    float64       `validate:"gte=0"`
	RateLimitBurst  int           `validate:"gte=0"`
	CORSOrigins     []string      `validate:"min=1,dive,required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

// Default returns the configuration used when no variables are set.
// The SQLite file defaults to database.db in the working directory.
func Default() Config {
	return Config{
		AppEnv:          "development",
		HTTPAddr:        ":8080",
		DBDriver:        DriverSQLite,
		DBDSN:           "database.db",
		RateLimitRPS:    5,
		RateLimitBurst:  10,
		CORSOrigins:     []string{"*"},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads an optional .env file, overlays the process environment on
// the defaults and validates the result. A missing envFile is not an error
// unless it was named explicitly.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("APP_ENV"); ok && v != "" {
		cfg.AppEnv = v
	}
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		cfg.HTTPAddr = v
	}
	if v, ok := lookup("DB_DRIVER"); ok && v != "" {
		cfg.DBDriver = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("DB_DSN"); ok && v != "" {
		cfg.DBDSN = v
	}
	if v, ok := lookup("EXTENDED_SCHEMA"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("EXTENDED_SCHEMA: %w", err)
		}
		cfg.ExtendedSchema = b
	}
	if v, ok := lookup("RATE_LIMIT_RPS"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = f
	}
	if v, ok := lookup("RATE_LIMIT_BURST"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = n
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct rules above.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
