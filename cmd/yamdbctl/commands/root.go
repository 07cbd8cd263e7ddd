// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package commands implements the yamdbctl command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/cmd/yamdbctl/output"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
)

// errNoDatabase is returned when neither --db nor DATABASE_URL is set.
var errNoDatabase = errors.New("database URL missing: pass --db or set DATABASE_URL")

func errBadNumber(raw string) error {
	return fmt.Errorf("%q is not a valid number", raw)
}

// options carries the global flags shared by every subcommand.
type options struct {
	databaseURL   string
	migrationsDir string
	verbose       bool
	pool          pgstore.PoolSettings
}

// logger returns a stderr logger, quiet unless --verbose is set.
func (opts *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// connect opens a pool on the configured database.
func (opts *options) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if opts.databaseURL == "" {
		return nil, errNoDatabase
	}
	return pgstore.NewPool(ctx, opts.databaseURL, opts.pool, opts.logger())
}

// NewRootCmd builds the command tree with defaults taken from cfg.
func NewRootCmd(cfg *config.CLIConfig) *cobra.Command {
	opts := &options{pool: cfg.PoolSettings()}

	root := &cobra.Command{
		Use:   "yamdbctl",
		Short: "YaMDB maintenance tool",
		Long: `yamdbctl performs maintenance tasks against a YaMDB database.

Connection settings default to the DATABASE_URL and MIGRATION_PATH
environment variables used by the API server.`,
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.databaseURL, "db", cfg.DatabaseURL, "Database connection URL")
	root.PersistentFlags().StringVar(&opts.migrationsDir, "migrations-dir", cfg.MigrationPath, "Directory holding the SQL migrations")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	root.AddCommand(newMigrateCmd(opts), newUserCmd(opts))

	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	cfg, err := config.LoadCLI()
	if err != nil {
		fail(os.Stderr, err)
	}

	if err := NewRootCmd(cfg).Execute(); err != nil {
		fail(os.Stderr, err)
	}
}

func fail(w io.Writer, err error) {
	output.Error(w, "%s", err)
	os.Exit(1)
}

// contextOf returns the command context, falling back to Background outside Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func wrap(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", step, err)
}
