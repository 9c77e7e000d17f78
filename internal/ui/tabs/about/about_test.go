package about

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/config"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	"github.com/j-veylop/movierec-dashboard-tui/internal/version"
)

func newTestModel(t *testing.T, cfg *config.Config) (*Model, *app.State) {
	t.Helper()
	c, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	state := app.NewState()
	m := New(state, c, cfg)
	m.SetSize(140, 300)
	return m, state
}

func TestModel_View(t *testing.T) {
	cfg := &config.Config{
		ArtifactsDir: "/srv/movierec/data/models",
		CacheDBPath:  "/tmp/cache.db",
		Cutoffs:      []int{3, 5},
	}
	m, state := newTestModel(t, cfg)
	state.SetWatching(true)
	state.SetReloads([]models.ReloadEvent{{
		Timestamp: time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		Reason:    "changed: surp_cv_results.json",
		Loaded:    3,
		Failed:    1,
	}})

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Contributors",
		"References",
		"/srv/movierec/data/models",
		"/tmp/cache.db",
		"[3 5]",
		"(defaults and environment)",
		"Watching:",
		"on",
		version.Name,
		"Go Version",
		"2024-06-01 12:30:00",
		"changed: surp_cv_results.json",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewWithoutConfig(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Configuration not loaded") {
		t.Error("missing config should be reported")
	}
	if !strings.Contains(view, "No reloads recorded") {
		t.Error("empty reload history should be reported")
	}
}

func TestModel_Update(t *testing.T) {
	m, _ := newTestModel(t, nil)
	tab, _ := m.Update(nil)
	if tab != m {
		t.Error("Update should return the same page")
	}
	if m.Init() != nil {
		t.Error("Init should return nil")
	}
	if m.ShortHelp() != nil || len(m.FullHelp()) != 1 {
		t.Error("about page only scrolls")
	}
}
