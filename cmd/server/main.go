// Package main is the Book-Brain server. It serves the HTTP API, runs
// database migrations and mints development tokens.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/donmarco3/Book-Brain/internal/config"
	"github.com/donmarco3/Book-Brain/internal/platform/auth"
	"github.com/donmarco3/Book-Brain/internal/platform/logger"
	"github.com/donmarco3/Book-Brain/internal/platform/postgres"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// loadConfig is replaced in tests.
var loadConfig = config.Load

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Book-Brain reading notes API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		&cobra.Command{
			Use:       "migrate [up|down|status]",
			Short:     "Apply or inspect database migrations",
			Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
			RunE:      runMigrate,
		},
		newTokenCmd(),
	)
	return root
}

func newTokenCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a user with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil || userID == uuid.Nil {
				return errors.New("--user must be a valid UUID")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokenService(cfg.Auth)
			if err != nil {
				return err
			}
			token, err := tokens.GenerateToken(cmd.Context(), userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user UUID to put in the token subject")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// setup loads configuration and installs the logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("redis_enabled", cfg.Cache.RedisURL != ""))
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", app.listenAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.listenAddr(), err)
	}
	return app.serveHTTP(ctx, ln)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := postgres.MigrateUp
	if len(args) == 1 {
		command = args[0]
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %s driver, configured driver is %q",
			config.DriverPostgres, cfg.Database.Driver)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := postgres.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return postgres.Migrate(ctx, db, command, log)
}
