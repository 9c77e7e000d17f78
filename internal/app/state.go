// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	store "github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	"github.com/j-veylop/movierec-dashboard-tui/internal/services/exploration"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
	maxReloads       = 20
)

// Loadable resources.
const (
	ResourceInitial     = "initial"
	ResourceArtifacts   = "artifacts"
	ResourceExploration = "exploration"
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial     bool
	Artifacts   bool
	Exploration bool
}

// State is the data shared by the root model and every tab.
type State struct {
	mu sync.RWMutex

	bundle      *store.Bundle
	exploration *exploration.Snapshot
	reloads     []models.ReloadEvent
	watching    bool

	Loading     LoadingState
	LastUpdated time.Time

	notifications []Notification
}

// NewState creates an empty state waiting for its initial load.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial:     true,
			Exploration: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceInitial:
		s.Loading.Initial = loading
	case ResourceArtifacts:
		s.Loading.Artifacts = loading
	case ResourceExploration:
		s.Loading.Exploration = loading
	}
}

// IsLoading reports whether resource is loading.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case ResourceInitial:
		return s.Loading.Initial
	case ResourceArtifacts:
		return s.Loading.Initial || s.Loading.Artifacts
	case ResourceExploration:
		return s.Loading.Exploration
	}
	return false
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Artifacts ||
		s.Loading.Exploration
}

// LoadingResources returns a list of currently loading resources.
func (s *State) LoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, ResourceInitial)
	}
	if s.Loading.Artifacts {
		resources = append(resources, ResourceArtifacts)
	}
	if s.Loading.Exploration {
		resources = append(resources, ResourceExploration)
	}
	return resources
}

// SetBundle replaces the artifact bundle.
func (s *State) SetBundle(b *store.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundle = b
	s.LastUpdated = time.Now()
}

// Bundle returns the current artifact bundle. It may be nil.
func (s *State) Bundle() *store.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// SetExploration replaces the exploration summaries.
func (s *State) SetExploration(snap *exploration.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exploration = snap
}

// Exploration returns the exploration summaries. It may be nil.
func (s *State) Exploration() *exploration.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exploration
}

// SetReloads replaces the reload history, newest first.
func (s *State) SetReloads(reloads []models.ReloadEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(reloads) > maxReloads {
		reloads = reloads[:maxReloads]
	}
	s.reloads = slices.Clone(reloads)
}

// Reloads returns a copy of the reload history.
func (s *State) Reloads() []models.ReloadEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reloads)
}

// SetWatching records whether artifact files are watched.
func (s *State) SetWatching(w bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watching = w
}

// Watching reports whether artifact files are watched.
func (s *State) Watching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watching
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.ID == id
	})
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.IsExpired()
	})
}

// Notifications returns a copy of all active notifications.
func (s *State) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// TimeSinceUpdate returns the duration since the bundle was last replaced.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
