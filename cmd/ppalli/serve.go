// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PPALLI Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/ppalli/ppalli/internal/config"
	"github.com/ppalli/ppalli/internal/credential"
	"github.com/ppalli/ppalli/internal/idgen"
	"github.com/ppalli/ppalli/internal/store"
	"github.com/ppalli/ppalli/internal/user"
	userpg "github.com/ppalli/ppalli/internal/user/postgres"
	"github.com/ppalli/ppalli/internal/web"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the account API, plus the metrics and health server when
metrics.addr is set. Stops gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("auto-migrate") {
				cfg.Database.AutoMigrate = autoMigrate
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServeWithDeps(ctx, cfg, cmd, nil)
		},
	}

	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "apply pending migrations before serving")

	return cmd
}

// runServeWithDeps runs the server until ctx is cancelled or a listener
// fails. If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *config.Config, cmd *cobra.Command, deps *ServeDeps) error {
	deps = deps.withDefaults()

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if cfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database.url is required")
	}

	encoder, err := cfg.Credential.Encoder()
	if err != nil {
		return oops.Code("CREDENTIAL_CONFIG_INVALID").Wrap(err)
	}

	if cfg.Database.AutoMigrate {
		if err := applyMigrations(deps, cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	connectOpts := store.DefaultConnectOptions
	connectOpts.MaxRetries = cfg.Database.ConnectRetries
	db, err := deps.DatabaseFactory(ctx, cfg.Database.URL, connectOpts)
	if err != nil {
		return err
	}
	defer db.Close()

	users := user.NewService(userpg.NewUserRepository(db), encoder, user.WithLogger(logger))
	handler := web.NewHandler(web.Deps{Users: users, Logger: logger})

	api := deps.APIServerFactory(cfg.HTTP.Addr, handler, logger)
	apiErr, err := api.Start()
	if err != nil {
		return oops.Code("API_START_FAILED").Wrap(err)
	}

	var obs Server
	var obsErr <-chan error
	if cfg.Metrics.Addr != "" {
		obs = deps.ObservabilityServerFactory(cfg.Metrics.Addr, version,
			func(ctx context.Context) error { return db.Ping(ctx) },
			idgen.RegisterMetrics,
			credential.RegisterMetrics,
			web.RegisterMetrics,
		)
		obsErr, err = obs.Start()
		if err != nil {
			stopServer(api, "api", logger)
			return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
		}
	}

	cmd.Println("ppalli serving on", api.Addr())
	logger.Info("ppalli ready",
		"api_addr", api.Addr(),
		"credential_version", encoder.ActiveVersion(),
	)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-apiErr:
		runErr = oops.Code("API_SERVER_FAILED").Wrap(err)
	case err := <-obsErr:
		runErr = oops.Code("OBSERVABILITY_SERVER_FAILED").Wrap(err)
	}

	logger.Info("shutting down...")
	stopServer(api, "api", logger)
	if obs != nil {
		stopServer(obs, "observability", logger)
	}
	logger.Info("shutdown complete")
	return runErr
}

func stopServer(s Server, name string, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		logger.Warn("error stopping server", "server", name, "error", err)
	}
}

func applyMigrations(deps *ServeDeps, url string, logger *slog.Logger) error {
	m, err := deps.MigratorFactory(url)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			logger.Warn("error closing migrator", "error", closeErr)
		}
	}()

	pending, err := m.Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		logger.Info("database schema is up to date")
		return nil
	}
	logger.Info("applying migrations", "pending", pending)
	return m.Up()
}
