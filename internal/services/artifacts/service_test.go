package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	store "github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
)

type memRecorder struct {
	mu     sync.Mutex
	events []models.ReloadEvent
}

func (r *memRecorder) InsertReload(ev *models.ReloadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
	return nil
}

func (r *memRecorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func writeDefaults(t *testing.T, dir string) {
	t.Helper()
	content := []byte(`{"SVD": {"mae": 0.61, "mse": 0.67, "rmse": 0.82}}`)
	if err := os.WriteFile(filepath.Join(dir, store.StemDefaultMetrics+".json"), content, 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func newTestService(t *testing.T, watch bool) (*Service, string, *memRecorder) {
	t.Helper()

	dir := t.TempDir()
	rec := &memRecorder{}
	svc, err := New(Options{Dir: dir, Watch: watch, Debounce: 20 * time.Millisecond, Recorder: rec})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})
	return svc, dir, rec
}

func TestNew_EmptyDir(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New() with empty dir should fail")
	}
}

func TestNew_InitialLoad(t *testing.T) {
	svc, _, rec := newTestService(t, false)

	select {
	case ev := <-svc.Events():
		if ev.Type != EventLoaded {
			t.Errorf("first event = %v, want EventLoaded", ev.Type)
		}
		if ev.Reason != ReasonStartup {
			t.Errorf("reason = %q, want %q", ev.Reason, ReasonStartup)
		}
	default:
		t.Fatal("no event after New()")
	}

	b := svc.Bundle()
	if b == nil {
		t.Fatal("Bundle() = nil")
	}
	if b.Loaded() != 0 {
		t.Errorf("Loaded() = %d, want 0 for empty dir", b.Loaded())
	}
	if rec.len() != 1 {
		t.Errorf("recorded %d loads, want 1", rec.len())
	}
	if rec.events[0].Failed != len(store.Stems) {
		t.Errorf("Failed = %d, want %d", rec.events[0].Failed, len(store.Stems))
	}
	if svc.Watching() {
		t.Error("Watching() = true with watch disabled")
	}
}

func TestNew_MissingDirIsNotFatal(t *testing.T) {
	svc, err := New(Options{Dir: filepath.Join(t.TempDir(), "missing"), Watch: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer func() { _ = svc.Close() }()

	if svc.Watching() {
		t.Error("missing directory should not be watched")
	}
}

func TestReload_Manual(t *testing.T) {
	svc, dir, rec := newTestService(t, false)
	<-svc.Events()

	writeDefaults(t, dir)
	b := svc.Reload(context.Background(), ReasonManual)

	if !b.OK(store.StemDefaultMetrics) {
		t.Fatalf("default metrics not loaded: %v", b.Err(store.StemDefaultMetrics))
	}
	if svc.Bundle() != b {
		t.Error("Bundle() should return the latest load")
	}

	ev := <-svc.Events()
	if ev.Type != EventReloaded || ev.Reason != ReasonManual {
		t.Errorf("event = %+v, want EventReloaded/manual", ev)
	}
	if rec.len() != 2 {
		t.Errorf("recorded %d loads, want 2", rec.len())
	}
}

func TestWatchFileChange(t *testing.T) {
	svc, dir, _ := newTestService(t, true)
	if !svc.Watching() {
		t.Fatal("Watching() = false")
	}
	<-svc.Events()

	// Files that are not artifacts are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	writeDefaults(t, dir)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			if ev.Type != EventReloaded {
				continue
			}
			if ev.Reason != "changed: "+store.StemDefaultMetrics+".json" {
				t.Errorf("reason = %q", ev.Reason)
			}
			if !ev.Bundle.OK(store.StemDefaultMetrics) {
				t.Errorf("reloaded bundle missing default metrics: %v", ev.Bundle.Err(store.StemDefaultMetrics))
			}
			return
		case <-timeout:
			t.Fatal("timeout waiting for EventReloaded")
		}
	}
}

func TestReloadEvent_SortsErrors(t *testing.T) {
	b := store.Load(context.Background(), t.TempDir())
	ev := reloadEvent(b, "test")

	if ev.Loaded != 0 || ev.Failed != len(store.Stems) {
		t.Errorf("Loaded/Failed = %d/%d", ev.Loaded, ev.Failed)
	}
	if ev.Reason != "test" || ev.Dir != b.Dir {
		t.Errorf("unexpected event %+v", ev)
	}
	if got := ev.Errors; got == "" || got[:len(store.StemNCFHistory)] != store.StemNCFHistory {
		t.Errorf("Errors should start with the first stem alphabetically, got %q", got)
	}
}

func TestClose_Twice(t *testing.T) {
	svc, err := New(Options{Dir: t.TempDir(), Watch: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
