package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
)

type Config struct {
	DBDriver      string
	DBDSN         string
	ServerPort    string
	SessionSecret string

	// header set by the authenticating proxy, recorded as the actor in the audit log
	IdentityHeader string

	LogLevel  string
	LogFormat string

	// optional TOML file with likelihood/consequence names
	MatrixLabelsPath  string
	DashboardCacheTTL time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDriver:         os.Getenv("DB_DRIVER"),
		DBDSN:            os.Getenv("DB_DSN"),
		ServerPort:       os.Getenv("SERVER_PORT"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		IdentityHeader:   os.Getenv("IDENTITY_HEADER"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		MatrixLabelsPath: os.Getenv("MATRIX_LABELS"),
	}

	if cfg.DBDSN == "" {
		return nil, goerr.New("DB_DSN is not set")
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	switch cfg.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, goerr.New("DB_DRIVER must be postgres, mysql or sqlite", goerr.V("driver", cfg.DBDriver))
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		return nil, goerr.New("SESSION_SECRET is not set")
	}
	if cfg.IdentityHeader == "" {
		cfg.IdentityHeader = "X-Forwarded-User"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	cfg.DashboardCacheTTL = 30 * time.Second
	if raw := os.Getenv("DASHBOARD_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl < 0 {
			return nil, goerr.New("DASHBOARD_CACHE_TTL must be a non-negative duration", goerr.V("value", raw))
		}
		cfg.DashboardCacheTTL = ttl
	}

	return cfg, nil
}
