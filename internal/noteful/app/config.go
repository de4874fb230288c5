package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/noteful/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	SessionsDatabase = "database"
	SessionsRedis    = "redis"
)

type Config struct {
	AccessTokenSecret  string        // Optional: HMAC secret for access tokens (default: random per process)
	RefreshTokenSecret string        // Optional: HMAC secret for refresh tokens (default: random per process)
	AccessTokenLife    time.Duration // Access token lifetime (default: 15m)
	RefreshTokenLife   time.Duration // Refresh token lifetime (default: 7d)

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // Path to SQLite database file (default: ./noteful.db)
	DatabaseURL    string // Postgres connection string, required for postgres

	SessionBackend string // Where refresh tokens live: database or redis (default: database)
	RedisAddr      string // Redis address (default: localhost:6379)
	RedisPassword  string
	RedisDB        int

	PepperFile string // Path to file containing pepper for password hashing (default: ./pepper)
	CORSOrigin string // Allowed CORS origin (default: *)

	SeedUsername string // Optional: user created at startup when missing
	SeedPassword string

	HousekeepingInterval time.Duration // Stale refresh token sweep for the database backend (default: 1h)

	Env                 string        // Environment (dev, staging, production) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8000)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenLife:    getEnvDurationOrDefault("ACCESS_TOKEN_LIFE", jwtx.DefaultAccessTokenTTL),
		RefreshTokenLife:   getEnvDurationOrDefault("REFRESH_TOKEN_LIFE", jwtx.DefaultRefreshTokenTTL),

		DatabaseDriver: strings.ToLower(getEnvOrDefault("DATABASE_DRIVER", DriverSQLite)),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "noteful.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		SessionBackend: strings.ToLower(getEnvOrDefault("SESSION_BACKEND", SessionsDatabase)),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvIntOrDefault("REDIS_DB", 0),

		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "*"),

		SeedUsername: os.Getenv("SEED_USERNAME"),
		SeedPassword: os.Getenv("SEED_PASSWORD"),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		// NODE_ENV is accepted as a fallback for ENV.
		Env:                 getEnvOrDefault("ENV", getEnvOrDefault("NODE_ENV", "dev")),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Production reports whether error details must be kept out of responses.
func (c Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "production", "prod":
		return true
	}
	return false
}

// Validate checks the settings that would otherwise fail later, or worse,
// silently.
func (c Config) Validate() error {
	var errs []error

	if c.AccessTokenLife <= 0 {
		errs = append(errs, fmt.Errorf("ACCESS_TOKEN_LIFE must be positive, got %s", c.AccessTokenLife))
	}
	if c.RefreshTokenLife <= 0 {
		errs = append(errs, fmt.Errorf("REFRESH_TOKEN_LIFE must be positive, got %s", c.RefreshTokenLife))
	}
	if c.AccessTokenSecret != "" && c.AccessTokenSecret == c.RefreshTokenSecret {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ"))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.SessionBackend {
	case SessionsDatabase:
	case SessionsRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis session backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}

	if (c.SeedUsername == "") != (c.SeedPassword == "") {
		errs = append(errs, errors.New("SEED_USERNAME and SEED_PASSWORD must be set together"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
