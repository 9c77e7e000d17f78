package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/config"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/services"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs/about"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs/advanced"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs/classical"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs/exploration"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs/prose"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs/results"
	"github.com/j-veylop/movierec-dashboard-tui/internal/version"
)

func newDashboardCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Start the dashboard (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(opts)
		},
	}
}

// runDashboard wires services and pages and runs the Bubble Tea program.
func runDashboard(opts *globalOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logCloser, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()
	logger.Info("starting", "version", version.Info(), "artifacts", cfg.ArtifactsDir)

	pages, err := content.Load()
	if err != nil {
		return fmt.Errorf("failed to load page content: %w", err)
	}

	// Starts the artifact watcher; pages load their data through it.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)
	model.SetTabs(newTabs(model.State(), pages, cfg))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// newTabs builds the pages in app.TabID order.
func newTabs(state *app.State, c *content.Content, cfg *config.Config) []app.Tab {
	return []app.Tab{
		prose.New(c.Page(content.PageIntro), "overview"),
		exploration.New(state, c),
		prose.New(c.Page(content.PagePreprocessing), "steps"),
		classical.New(state, c, cfg.Cutoffs),
		advanced.New(state, c),
		results.New(state, c),
		about.New(state, c, cfg),
	}
}
