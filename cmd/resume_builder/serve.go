package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/storage"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes REST endpoints for managing and editing resumes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *root.cfg
			if port != 0 {
				cfg.Port = port
			}
			return runServe(cmd, &cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config and PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or 'database_url' config is required")
	}

	// Fail on missing secrets before touching the database
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	files, err := storage.New(ctx, &cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	jwtService := server.NewJWTService(jwtConfig)
	resumes := server.NewResumeService(database, files, passwordConfig, jwtService, logger)
	limiter := ratelimit.NewLimiter(ratelimit.LoadConfig())

	srv := server.New(server.Config{
		Port:       cfg.Port,
		CORSOrigin: cfg.CORSOrigin,
	}, resumes, jwtService, limiter, logger)

	return srv.Start(ctx)
}
