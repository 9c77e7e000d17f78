// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	store "github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/config"
	"github.com/j-veylop/movierec-dashboard-tui/internal/db"
	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	"github.com/j-veylop/movierec-dashboard-tui/internal/notify"
	"github.com/j-veylop/movierec-dashboard-tui/internal/services/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/services/exploration"
	"github.com/j-veylop/movierec-dashboard-tui/internal/warehouse"
)

// summaryRetention is how long unused cached summaries are kept.
const summaryRetention = 30 * 24 * time.Hour

type (
	// ArtifactsReloadedEvent is emitted whenever the artifact bundle is replaced.
	ArtifactsReloadedEvent struct {
		Bundle *store.Bundle
		Reason string
	}

	// ExplorationReadyEvent is emitted when exploration summaries are computed.
	ExplorationReadyEvent struct {
		Snapshot *exploration.Snapshot
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ArtifactsReloadedEvent) isServiceEvent() {}
func (ExplorationReadyEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()             {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	artifacts   *artifacts.Service
	exploration *exploration.Service
	database    *db.DB
	warehouse   *warehouse.Warehouse
	notifier    *notify.Notifier
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	var err error
	m.database, err = db.New(cfg.CacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if n, err := m.database.PruneSummaries(summaryRetention); err != nil {
		logger.Warn("failed to prune summary cache", "error", err)
	} else if n > 0 {
		logger.Debug("pruned summary cache", "rows", n)
		if err := m.database.Vacuum(); err != nil {
			logger.Warn("failed to vacuum cache database", "error", err)
		}
	}

	// The exploration page degrades on its own when DuckDB is unavailable.
	var engine exploration.Engine
	m.warehouse, err = warehouse.Open()
	if err != nil {
		logger.Error("failed to open warehouse", "error", err)
	} else {
		engine = m.warehouse
	}
	m.exploration = exploration.New(engine, m.database, cfg.MovieLensDir, cfg.DataFramesDir)

	m.artifacts, err = artifacts.New(artifacts.Options{
		Dir:      cfg.ArtifactsDir,
		Watch:    cfg.WatchArtifacts,
		Debounce: cfg.ReloadDebounce,
		Recorder: m.database,
	})
	if err != nil {
		m.closeStores()
		return nil, err
	}

	if cfg.DesktopNotify {
		m.notifier = notify.New(notify.NewDesktop())
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.artifacts.Events():
			m.handleArtifactEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleArtifactEvent converts and broadcasts artifact events.
func (m *Manager) handleArtifactEvent(event artifacts.Event) {
	switch event.Type {
	case artifacts.EventLoaded, artifacts.EventReloaded:
		m.broadcast(ArtifactsReloadedEvent{
			Bundle: event.Bundle,
			Reason: event.Reason,
		})
		if event.Type == artifacts.EventReloaded {
			m.notifyReload(event.Bundle, event.Reason)
		}

	case artifacts.EventError:
		m.broadcast(ErrorEvent{
			Service: "artifacts",
			Error:   event.Error,
		})
	}
}

// notifyReload shows a desktop notification for reloads not started from
// the dashboard itself.
func (m *Manager) notifyReload(b *store.Bundle, reason string) {
	if m.notifier == nil || reason == artifacts.ReasonManual || b == nil {
		return
	}
	text := fmt.Sprintf("%d of %d artifacts loaded (%s)", b.Loaded(), len(store.Stems), reason)
	go func() {
		if err := m.notifier.Send(context.Background(), text, "Evaluation results reloaded"); err != nil {
			logger.Warn("reload notification failed", "error", err)
		}
	}()
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Bundle returns the latest artifact bundle.
func (m *Manager) Bundle() *store.Bundle {
	return m.artifacts.Bundle()
}

// ReloadArtifacts reads the artifact directory again.
func (m *Manager) ReloadArtifacts(ctx context.Context) *store.Bundle {
	return m.artifacts.Reload(ctx, artifacts.ReasonManual)
}

// LoadExploration computes the exploration summaries and broadcasts them.
func (m *Manager) LoadExploration(ctx context.Context) *exploration.Snapshot {
	snap := m.exploration.Load(ctx)
	m.broadcast(ExplorationReadyEvent{Snapshot: snap})
	return snap
}

// RecentReloads returns the latest artifact loads, newest first.
func (m *Manager) RecentReloads(limit int) ([]models.ReloadEvent, error) {
	if m.database == nil {
		return nil, errors.New("database not initialized")
	}
	return m.database.RecentReloads(limit)
}

// Watching reports whether artifact files are watched for changes.
func (m *Manager) Watching() bool {
	return m.artifacts.Watching()
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Artifacts returns the artifact service.
func (m *Manager) Artifacts() *artifacts.Service {
	return m.artifacts
}

// Exploration returns the exploration service.
func (m *Manager) Exploration() *exploration.Service {
	return m.exploration
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// InitialState returns the state of all services for TUI initialization.
func (m *Manager) InitialState() (*store.Bundle, []models.ReloadEvent) {
	reloads, err := m.RecentReloads(5)
	if err != nil {
		logger.Warn("failed to read reload history", "error", err)
	}
	return m.Bundle(), reloads
}

func (m *Manager) closeStores() []error {
	var errs []error
	if m.warehouse != nil {
		if err := m.warehouse.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error
	if err := m.artifacts.Close(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, m.closeStores()...)

	return errors.Join(errs...)
}
