// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package migration applies the SQL files under data/migrations with golang-migrate.

The API server calls [RunUp] before it accepts traffic. The yamdbctl tool
opens a [Runner] for the finer operations: status, stepping down, and forcing
the version after a failed migration was repaired by hand.
*/
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty is returned when the last migration stopped halfway.
var ErrDirty = errors.New("migration: database is dirty; repair the schema and force the version")

// Runner wraps one golang-migrate instance. Close it when done.
type Runner struct {
	migrator *migrate.Migrate
	logger   *slog.Logger
}

// Open prepares a runner for the migrations in dir against dsn.
func Open(dsn, dir string, logger *slog.Logger) (*Runner, error) {
	migrator, err := migrate.New("file://"+dir, pgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	return &Runner{migrator: migrator, logger: logger}, nil
}

// Close releases the source and the database connection.
func (runner *Runner) Close() {
	sourceErr, dbErr := runner.migrator.Close()
	if sourceErr != nil {
		runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
	}
	if dbErr != nil {
		runner.logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
	}
}

// Status reports the applied version (0 when none) and whether it is dirty.
func (runner *Runner) Status() (version uint, dirty bool, err error) {
	version, dirty, err = runner.migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to read version: %w", err)
	}
	return version, dirty, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (runner *Runner) Up() error {
	from, err := runner.cleanVersion()
	if err != nil {
		return err
	}

	if err := runner.migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := runner.Status()
	runner.logger.Info("migration_up_finished", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// Down reverts the last steps migrations.
func (runner *Runner) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}

	from, err := runner.cleanVersion()
	if err != nil {
		return err
	}

	if err := runner.migrator.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration: down failed: %w", err)
	}

	to, _, _ := runner.Status()
	runner.logger.Info("migration_down_finished", slog.Uint64("from_version", uint64(from)), slog.Uint64("to_version", uint64(to)))
	return nil
}

// Force records version as applied and clears the dirty flag without running SQL.
func (runner *Runner) Force(version int) error {
	if err := runner.migrator.Force(version); err != nil {
		return fmt.Errorf("migration: force failed: %w", err)
	}
	runner.logger.Warn("migration_version_forced", slog.Int("version", version))
	return nil
}

func (runner *Runner) cleanVersion() (uint, error) {
	version, dirty, err := runner.Status()
	if err != nil {
		return 0, err
	}
	if dirty {
		return version, fmt.Errorf("%w (version %d)", ErrDirty, version)
	}
	return version, nil
}

// RunUp opens a runner, applies pending migrations, and closes it.
func RunUp(dsn, dir string, logger *slog.Logger) error {
	runner, err := Open(dsn, dir, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	return runner.Up()
}

// pgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme
// the golang-migrate driver registers. Other forms pass through.
func pgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (adapter *migrateLogger) Printf(format string, args ...any) {
	adapter.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (adapter *migrateLogger) Verbose() bool {
	return adapter.logger.Enabled(context.Background(), slog.LevelDebug)
}
