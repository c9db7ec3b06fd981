package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// PoolSettings sizes the pgx connection pool. Zero values fall back to
// defaults tuned for a single-guild bot: a handful of concurrent
// interaction handlers plus the background timers and sweeps.
type PoolSettings struct {
	MaxConns int32
	MinConns int32
}

const (
	defaultMaxConns = 8
	defaultMinConns = 2

	connectTimeout    = 5 * time.Second
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = time.Minute
)

// DB wraps the pgx pool the repositories run on
type DB struct {
	*pgxpool.Pool
}

// NewConnection builds the connection pool and verifies it with a ping
func NewConnection(ctx context.Context, databaseURL string, settings PoolSettings) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if settings.MaxConns <= 0 {
		settings.MaxConns = defaultMaxConns
	}
	if settings.MinConns <= 0 {
		settings.MinConns = defaultMinConns
	}
	if settings.MinConns > settings.MaxConns {
		settings.MinConns = settings.MaxConns
	}

	cfg.MaxConns = settings.MaxConns
	cfg.MinConns = settings.MinConns
	cfg.MaxConnIdleTime = maxConnIdleTime
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(log.Fields{
		"maxConns": settings.MaxConns,
		"minConns": settings.MinConns,
	}).Info("Database pool established")

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}
