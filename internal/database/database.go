// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

// Package database is the gateway to the external PostgreSQL database.
//
// The database owns all durable logic: rating aggregation runs in a trigger
// on Review inserts, per-user statistics live in user_stats_view, and the
// director/actor/genre searches are set-returning functions. This package
// only executes parameterized statements against that contract and maps rows
// into models types; it never recomputes an aggregate.
//
// Connections come from a pgxpool with bounded acquire and per-statement
// timeouts, so a slow database call cannot block a render indefinitely.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anirudhkashyap/sidrama/internal/config"
	"github.com/anirudhkashyap/sidrama/internal/logging"
	"github.com/anirudhkashyap/sidrama/internal/metrics"
)

// DB wraps the connection pool and the circuit breaker guarding calls into
// the external set-returning functions.
type DB struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
	breaker      *procBreaker
}

// New opens the connection pool and verifies connectivity.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.AcquireTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.AcquireTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	queryTimeout := cfg.QueryTimeout
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}

	logging.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Name).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("Database pool established")

	return &DB{
		pool:         pool,
		queryTimeout: queryTimeout,
		breaker:      newProcBreaker("catalog-functions"),
	}, nil
}

// Close releases the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// opCtx derives a statement-scoped context with the configured query timeout.
// The returned cancel also records the operation's duration, so every gateway
// method that defers it feeds db_query_duration_seconds.
func (db *DB) opCtx(ctx context.Context, op string) (context.Context, context.CancelFunc) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, db.queryTimeout)
	return ctx, func() {
		metrics.ObserveDBQuery(op, time.Since(start))
		cancel()
	}
}
