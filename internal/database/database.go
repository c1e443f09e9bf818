// Package database opens the PostgreSQL pool backing the reference-data
// loader. The four reference tables load once at startup and are immutable
// afterwards, so the pool stays small and is closed as soon as the load
// finishes.
package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds connection settings for the reference-data database.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// MaxConns bounds the pool. The reference tables load sequentially,
	// so a couple of connections suffice.
	MaxConns int32

	// ConnectTimeout bounds the initial dial and the readiness ping.
	ConnectTimeout time.Duration
}

// ConfigFromEnv reads connection settings from DB_* environment variables.
func ConfigFromEnv() Config {
	port, _ := strconv.Atoi(envOr("DB_PORT", "5432"))
	maxConns, _ := strconv.Atoi(envOr("DB_MAX_CONNS", "2"))
	connectTimeout, _ := time.ParseDuration(envOr("DB_CONNECT_TIMEOUT", "10s"))

	return Config{
		Host:           envOr("DB_HOST", "localhost"),
		Port:           port,
		User:           envOr("DB_USER", "cargoscope"),
		Password:       envOr("DB_PASSWORD", "localdev"),
		Database:       envOr("DB_NAME", "cargoscope"),
		SSLMode:        envOr("DB_SSL_MODE", "disable"),
		MaxConns:       int32(maxConns), //nolint:gosec // small env-supplied pool bound
		ConnectTimeout: connectTimeout,
	}
}

// ConnectionString renders the pgx connection URL. Credentials are escaped,
// so passwords with URL metacharacters survive the round trip.
func (c Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Connect opens the pool and verifies the database is reachable before the
// reference-data load starts against it.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
