// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/cmd/yamdbctl/output"
	"github.com/taibuivan/yamdb/internal/platform/migration"
)

func newMigrateCmd(opts *options) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Manage the database schema.

Subcommands:
  up            - Apply pending migrations
  down [N]      - Revert the last N migrations (default 1)
  status        - Show the applied version
  force VERSION - Mark VERSION as applied and clear the dirty flag`,
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRunner(opts, "migrate up", func(runner *migration.Runner) error {
					if err := runner.Up(); err != nil {
						return err
					}
					output.Success(cmd.OutOrStdout(), "schema is up to date")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down [N]",
			Short: "Revert applied migrations",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					parsed, err := strconv.Atoi(args[0])
					if err != nil || parsed < 1 {
						return wrap("migrate down", errBadNumber(args[0]))
					}
					steps = parsed
				}

				return withRunner(opts, "migrate down", func(runner *migration.Runner) error {
					if err := runner.Down(steps); err != nil {
						return err
					}
					output.Success(cmd.OutOrStdout(), "reverted %d migration(s)", steps)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the applied migration version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRunner(opts, "migrate status", func(runner *migration.Runner) error {
					version, dirty, err := runner.Status()
					if err != nil {
						return err
					}

					w := cmd.OutOrStdout()
					output.Field(w, "version", version)
					output.Field(w, "dirty", dirty)
					if dirty {
						output.Warning(w, "the last migration failed halfway; repair the schema, then run migrate force")
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Set the recorded version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return wrap("migrate force", errBadNumber(args[0]))
				}

				return withRunner(opts, "migrate force", func(runner *migration.Runner) error {
					if err := runner.Force(version); err != nil {
						return err
					}
					output.Success(cmd.OutOrStdout(), "version forced to %d", version)
					return nil
				})
			},
		},
	)

	return migrate
}

// withRunner opens a migration runner for the duration of fn.
func withRunner(opts *options, step string, fn func(runner *migration.Runner) error) error {
	if opts.databaseURL == "" {
		return errNoDatabase
	}

	runner, err := migration.Open(opts.databaseURL, opts.migrationsDir, opts.logger())
	if err != nil {
		return wrap(step, err)
	}
	defer runner.Close()

	return wrap(step, fn(runner))
}
