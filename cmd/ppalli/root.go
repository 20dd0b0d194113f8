// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ppalli/ppalli/internal/config"
	"github.com/ppalli/ppalli/internal/logging"
)

// NewRootCmd creates the root command for the ppalli CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ppalli",
		Short: "ppalli - account registration service",
		Long: `ppalli registers user accounts over HTTP, stores passwords with
versioned encodings and mints time-sorted 64-bit identifiers.`,
		SilenceUsage: true,
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCredentialCmd())
	cmd.AddCommand(NewIDCmd())
	cmd.AddCommand(NewConfigCmd())

	return cmd
}

// loadConfig reads configuration using the persistent flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return nil, err //nolint:wrapcheck // flag is always registered
	}
	return config.Load(path, cmd.Flags())
}

// newLogger builds the process logger from cfg.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Service: "ppalli",
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
	}, w), nil
}
