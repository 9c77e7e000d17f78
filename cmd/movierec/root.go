package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/j-veylop/movierec-dashboard-tui/internal/config"
	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	debug        bool
	configPath   string
	artifactsDir string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "movierec",
		Short: "Terminal dashboard for the MovieLens recommender evaluation",
		Long: `movierec presents the exploratory analysis and the evaluation results of a
MovieLens 25M recommender study in the terminal.

Without a subcommand it starts the dashboard. Pages:
  1 Intro  2 Exploration  3 Preprocessing  4 Classical  5 Advanced
  6 Results  7 About

Keys: 1-7 or Tab/Shift+Tab switch pages, r reloads the evaluation results,
? toggles help, q quits.

Configuration is read from .env files, ~/.config/movierec/config.yaml (or
--config / MOVIEREC_CONFIG) and MOVIEREC_* environment variables.`,
		Version:      version.Info(),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(opts)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.artifactsDir, "artifacts", "", "Directory holding the evaluation artifacts")

	cmd.AddCommand(newDashboardCommand(opts))
	cmd.AddCommand(newExploreCommand())
	cmd.AddCommand(newNotifyCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

// loadConfig loads the configuration and applies the command line overrides.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.artifactsDir != "" {
		dir, err := filepath.Abs(opts.artifactsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", opts.artifactsDir, err)
		}
		cfg.ArtifactsDir = dir
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// initLogger routes logs to the configured file.
func initLogger(cfg *config.Config) (io.Closer, error) {
	closer, err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return closer, nil
}
