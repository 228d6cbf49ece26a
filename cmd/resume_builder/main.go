// Package main provides the resume builder CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	verbose    bool

	// cfg is loaded before any command runs
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "resume_builder",
		Short: "Resume Builder CLI and HTTP API server",
		Long:  "Resume Builder creates, validates and edits resume documents and serves them over a REST API.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.LogLevel = "debug"
			}
			logger, err := cfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			opts.cfg = cfg
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print details and debug logs")

	cmd.AddCommand(
		newNewCmd(opts),
		newValidateCmd(opts),
		newTargetsCmd(opts),
		newMoveCmd(opts),
		newCheckLayoutCmd(opts),
		newServeCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file when given, applies the environment and
// fills the remaining fields with defaults.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
