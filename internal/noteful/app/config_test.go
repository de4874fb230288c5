package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"ACCESS_TOKEN_SECRET", "REFRESH_TOKEN_SECRET", "ACCESS_TOKEN_LIFE", "REFRESH_TOKEN_LIFE",
		"DATABASE_DRIVER", "SESSION_BACKEND", "PORT", "ENV", "NODE_ENV", "CORS_ORIGIN",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 15*time.Minute, cfg.AccessTokenLife)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenLife)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, SessionsDatabase, cfg.SessionBackend)
	require.Equal(t, 8000, cfg.Port)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "*", cfg.CORSOrigin)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_LIFE", "30")
	t.Setenv("REFRESH_TOKEN_LIFE", "48h")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/noteful")
	t.Setenv("SESSION_BACKEND", "REDIS")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENV", "")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "not-a-number")

	cfg := LoadConfig()
	require.Equal(t, 30*time.Minute, cfg.AccessTokenLife, "integers are minutes")
	require.Equal(t, 48*time.Hour, cfg.RefreshTokenLife)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, SessionsRedis, cfg.SessionBackend)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, 8000, cfg.Port, "unparsable values fall back to the default")
	require.True(t, cfg.Production())
	require.NoError(t, cfg.Validate())
}

func validConfig() Config {
	return Config{
		AccessTokenLife:  time.Minute,
		RefreshTokenLife: time.Hour,
		DatabaseDriver:   DriverSQLite,
		DatabaseFile:     "noteful.db",
		SessionBackend:   SessionsDatabase,
		Port:             8000,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"shared secrets", func(c *Config) {
			c.AccessTokenSecret, c.RefreshTokenSecret = "same", "same"
		}, "must differ"},
		{"zero access life", func(c *Config) { c.AccessTokenLife = 0 }, "ACCESS_TOKEN_LIFE"},
		{"negative refresh life", func(c *Config) { c.RefreshTokenLife = -time.Second }, "REFRESH_TOKEN_LIFE"},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "DATABASE_DRIVER"},
		{"postgres without url", func(c *Config) { c.DatabaseDriver = DriverPostgres }, "DATABASE_URL"},
		{"unknown backend", func(c *Config) { c.SessionBackend = "memcached" }, "SESSION_BACKEND"},
		{"redis without addr", func(c *Config) { c.SessionBackend = SessionsRedis }, "REDIS_ADDR"},
		{"seed without password", func(c *Config) { c.SeedUsername = "ryan" }, "SEED_PASSWORD"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.DatabaseDriver = "mysql"
		cfg.Port = 0
		err := cfg.Validate()
		require.Error(t, err)
		require.Equal(t, 2, strings.Count(err.Error(), "\n")+1)
	})
}

func TestInitCodecs(t *testing.T) {
	t.Run("configured secrets", func(t *testing.T) {
		cfg := validConfig()
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret = "a-secret", "r-secret"

		access, refresh, err := InitCodecs(cfg, slogx.Discard())
		require.NoError(t, err)
		require.Equal(t, time.Minute, access.TTL())
		require.Equal(t, time.Hour, refresh.TTL())

		// A second process with the same secrets accepts the token.
		again, _, err := InitCodecs(cfg, slogx.Discard())
		require.NoError(t, err)
		tok, _, err := access.Issue("ryan", "sid")
		require.NoError(t, err)
		_, err = again.Verify(tok)
		require.NoError(t, err)
	})

	t.Run("ephemeral secrets differ per process", func(t *testing.T) {
		cfg := validConfig()

		access, refresh, err := InitCodecs(cfg, slogx.Discard())
		require.NoError(t, err)
		other, _, err := InitCodecs(cfg, slogx.Discard())
		require.NoError(t, err)

		tok, _, err := access.Issue("ryan", "sid")
		require.NoError(t, err)
		_, err = other.Verify(tok)
		require.Error(t, err)
		_, err = refresh.Verify(tok)
		require.Error(t, err)
	})
}
