// Package artifacts keeps the latest evaluation artifact bundle in memory
// and reloads it when files in the artifact directory change.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	store "github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
)

// Reload reasons.
const (
	ReasonStartup = "startup"
	ReasonManual  = "manual"
)

const defaultDebounce = 100 * time.Millisecond

// Event represents a change in the artifact service.
type Event struct {
	Type   EventType
	Bundle *store.Bundle
	Reason string
	Error  error
}

// EventType identifies the kind of artifact event.
type EventType int

const (
	// EventLoaded is sent after the first load.
	EventLoaded EventType = iota
	// EventReloaded is sent after every later load.
	EventReloaded
	// EventError is sent when the watcher fails.
	EventError
)

// Recorder persists reload history.
type Recorder interface {
	InsertReload(ev *models.ReloadEvent) error
}

// Options configures a Service.
type Options struct {
	Dir      string
	Watch    bool
	Debounce time.Duration
	Recorder Recorder
}

// Service loads artifacts and watches their directory.
type Service struct {
	mu            sync.RWMutex
	dir           string
	bundle        *store.Bundle
	loads         int
	debounce      time.Duration
	recorder      Recorder
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

// New loads the artifact directory and, if requested, starts watching it.
// A missing directory is not an error: every artifact reports ErrNotFound
// and watching is skipped.
func New(opts Options) (*Service, error) {
	if opts.Dir == "" {
		return nil, errors.New("artifact directory is empty")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	s := &Service{
		dir:       opts.Dir,
		debounce:  opts.Debounce,
		recorder:  opts.Recorder,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	s.Reload(context.Background(), ReasonStartup)

	if opts.Watch {
		if info, err := os.Stat(opts.Dir); err != nil || !info.IsDir() {
			logger.Warn("artifact directory not watched", "dir", opts.Dir, "error", err)
		} else if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	return s, nil
}

// Events returns the channel for receiving artifact events.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Dir returns the watched directory.
func (s *Service) Dir() string {
	return s.dir
}

// Bundle returns the latest loaded bundle.
func (s *Service) Bundle() *store.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// Watching reports whether the directory is being watched.
func (s *Service) Watching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watcher != nil
}

// Reload reads the directory again, swaps in the new bundle and records the
// load.
func (s *Service) Reload(ctx context.Context, reason string) *store.Bundle {
	b := store.Load(ctx, s.dir)

	s.mu.Lock()
	s.bundle = b
	s.loads++
	first := s.loads == 1
	s.mu.Unlock()

	logger.Info("artifacts loaded", "dir", s.dir, "reason", reason, "loaded", b.Loaded(), "failed", len(b.Errors))

	if s.recorder != nil {
		if err := s.recorder.InsertReload(reloadEvent(b, reason)); err != nil {
			logger.Warn("failed to record artifact load", "error", err)
		}
	}

	typ := EventReloaded
	if first {
		typ = EventLoaded
	}
	s.sendEvent(Event{Type: typ, Bundle: b, Reason: reason})
	return b
}

func reloadEvent(b *store.Bundle, reason string) *models.ReloadEvent {
	stems := make([]string, 0, len(b.Errors))
	for stem := range b.Errors {
		stems = append(stems, stem)
	}
	slices.Sort(stems)

	msgs := make([]string, len(stems))
	for i, stem := range stems {
		msgs[i] = fmt.Sprintf("%s: %v", stem, b.Errors[stem])
	}

	return &models.ReloadEvent{
		Timestamp: b.LoadedAt,
		Dir:       b.Dir,
		Reason:    reason,
		Loaded:    b.Loaded(),
		Failed:    len(b.Errors),
		Errors:    strings.Join(msgs, "; "),
	}
}

func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(s.dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	go s.watchLoop(watcher)
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if !store.IsArtifact(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.schedule(filepath.Base(event.Name))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// schedule debounces bursts of writes into one reload.
func (s *Service) schedule(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		select {
		case <-s.stopChan:
			return
		default:
		}
		s.Reload(context.Background(), "changed: "+name)
	})
}

// sendEvent sends an event to the event channel without blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
