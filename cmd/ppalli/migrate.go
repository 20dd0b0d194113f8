// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"strconv"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ppalli/ppalli/internal/store"
)

// migratorFactory opens the migrator used by the migrate subcommands.
// Tests replace it.
var migratorFactory = defaultMigratorFactory

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long:  `Apply, revert and inspect the embedded PostgreSQL migrations.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m SchemaMigrator, _ []string) error {
				if err := m.Up(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations, dropping every table",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m SchemaMigrator, _ []string) error {
				if err := m.Down(); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "steps N",
			Short: "Apply N migrations, or revert when N is negative",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(cmd *cobra.Command, m SchemaMigrator, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return oops.Code("MIGRATION_INVALID_STEPS").With("steps", args[0]).Wrap(err)
				}
				if err := m.Steps(n); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "force VERSION",
			Short: "Mark VERSION as applied without running it",
			Args:  cobra.ExactArgs(1),
			RunE: withMigrator(func(cmd *cobra.Command, m SchemaMigrator, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return oops.Code("MIGRATION_INVALID_VERSION").With("version", args[0]).Wrap(err)
				}
				if err := m.Force(v); err != nil {
					return err
				}
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m SchemaMigrator, _ []string) error {
				return printVersion(cmd, m)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List pending migrations",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(cmd *cobra.Command, m SchemaMigrator, _ []string) error {
				if err := printVersion(cmd, m); err != nil {
					return err
				}
				pending, err := m.Pending()
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					cmd.Println("no pending migrations")
					return nil
				}
				for _, v := range pending {
					cmd.Printf("pending %s\n", store.Name(v))
				}
				return nil
			}),
		},
	)

	return cmd
}

type migratorFunc func(cmd *cobra.Command, m SchemaMigrator, args []string) error

// withMigrator loads the config, opens a migrator and closes it after fn.
func withMigrator(fn migratorFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Database.URL == "" {
			return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
		}

		m, err := migratorFactory(cfg.Database.URL)
		if err != nil {
			return err
		}
		runErr := fn(cmd, m, args)
		if closeErr := m.Close(); closeErr != nil && runErr == nil {
			return closeErr
		}
		return runErr
	}
}

func printVersion(cmd *cobra.Command, m SchemaMigrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	switch {
	case v == 0:
		cmd.Println("schema version: none")
	case dirty:
		cmd.Printf("schema version: %s (dirty)\n", store.Name(v))
	default:
		cmd.Printf("schema version: %s\n", store.Name(v))
	}
	return nil
}
