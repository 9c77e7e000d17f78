package app

import (
	"time"

	store "github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	"github.com/j-veylop/movierec-dashboard-tui/internal/services"
	"github.com/j-veylop/movierec-dashboard-tui/internal/services/exploration"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// InitialDataMsg carries what the services loaded before the program started.
type InitialDataMsg struct {
	Bundle   *store.Bundle
	Reloads  []models.ReloadEvent
	Watching bool
}

// ArtifactsLoadedMsg carries the result of a reload requested from the UI.
type ArtifactsLoadedMsg struct {
	Bundle *store.Bundle
}

// ExplorationLoadedMsg carries freshly computed exploration summaries.
type ExplorationLoadedMsg struct {
	Snapshot *exploration.Snapshot
}

// ReloadsLoadedMsg carries the reload history, newest first.
type ReloadsLoadedMsg struct {
	Reloads []models.ReloadEvent
	Error   error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // ResourceArtifacts or ResourceExploration
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
