// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgres opens the pgx pool shared by every YaMDB repository and
provides the transaction helper they build on.

Each statement runs under a span of the caller's trace (see [queryTracer]) and
a server-side statement_timeout, so a slow query fails on its own instead of
holding a connection past the request deadline.
*/
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectTimeout = 5 * time.Second
	pingTimeout    = 2 * time.Second
)

// PoolSettings sizes the pool. Zero MaxConns and StatementTimeout take the
// values of [DefaultPoolSettings]; zero MinConns means no idle connections.
type PoolSettings struct {
	MaxConns         int32
	MinConns         int32
	StatementTimeout time.Duration
}

// DefaultPoolSettings suits the API server.
func DefaultPoolSettings() PoolSettings {
	return PoolSettings{MaxConns: 25, MinConns: 5, StatementTimeout: 30 * time.Second}
}

func (settings PoolSettings) withDefaults() PoolSettings {
	defaults := DefaultPoolSettings()
	if settings.MaxConns <= 0 {
		settings.MaxConns = defaults.MaxConns
	}
	if settings.MinConns < 0 || settings.MinConns > settings.MaxConns {
		settings.MinConns = min(defaults.MinConns, settings.MaxConns)
	}
	if settings.StatementTimeout <= 0 {
		settings.StatementTimeout = defaults.StatementTimeout
	}
	return settings
}

// NewPool connects to dsn and pings the server before returning.
func NewPool(ctx context.Context, dsn string, settings PoolSettings, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	settings = settings.withDefaults()
	poolConfig.MaxConns = settings.MaxConns
	poolConfig.MinConns = settings.MinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.Tracer = newQueryTracer()

	statementTimeout := fmt.Sprintf("SET statement_timeout = %d", settings.StatementTimeout.Milliseconds())
	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		_, err := connection.Exec(ctx, statementTimeout)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(settings.MaxConns)),
		slog.Int("min_conns", int(settings.MinConns)),
		slog.Duration("statement_timeout", settings.StatementTimeout),
	)

	return pool, nil
}

// Ping checks the pool can reach the server within a short deadline.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
