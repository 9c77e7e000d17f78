package advanced

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
)

func newTestModel(t *testing.T, b *artifacts.Bundle) *Model {
	t.Helper()
	c, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	state := app.NewState()
	if b != nil {
		state.SetBundle(b)
	}
	m := New(state, c)
	m.SetSize(140, 400)
	return m
}

func historyBundle() *artifacts.Bundle {
	return &artifacts.Bundle{
		History: artifacts.History{
			"loss":     {0.9, 0.75, 0.7, 0.68},
			"val_loss": {0.8, 0.74, 0.72},
		},
		Files: map[string]string{artifacts.StemNCFHistory: "ncf_history.json"},
	}
}

func TestLossSeries(t *testing.T) {
	tests := []struct {
		name    string
		history artifacts.History
		want    []string
	}{
		{"both curves", artifacts.History{"val_loss": {1}, "loss": {2}}, []string{"training loss", "validation loss"}},
		{"training only", artifacts.History{"loss": {2}, "mae": {1}}, []string{"training loss"}},
		{"empty curve skipped", artifacts.History{"loss": {}}, nil},
		{"nil history", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LossSeries(tt.history)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, s := range got {
				if s.Name != tt.want[i] {
					t.Errorf("series %d = %q, want %q", i, s.Name, tt.want[i])
				}
			}
		})
	}
}

func TestModel_ViewWithHistory(t *testing.T) {
	m := newTestModel(t, historyBundle())
	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Advanced Models",
		"Neural Collaborative Filtering",
		"Training and Validation Loss",
		"training loss",
		"validation loss",
		"NCF training over 4 epochs",
		"Learnings",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewWithoutHistory(t *testing.T) {
	b := historyBundle()
	b.History = nil
	b.Files = nil
	b.Errors = map[string]error{artifacts.StemNCFHistory: artifacts.ErrNotFound}
	m := newTestModel(t, b)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "ncf_history: artifact not found") {
		t.Errorf("missing history should be reported:\n%s", view)
	}
	if !strings.Contains(view, "Hyperparameter Tuning") {
		t.Error("prose should render without the history")
	}
}

func TestModel_ToggleLoss(t *testing.T) {
	m := newTestModel(t, historyBundle())
	tab, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if tab != m || cmd != nil {
		t.Error("toggle should be handled by the page")
	}
	view := ansi.Strip(m.View())
	if strings.Contains(view, "NCF training over") {
		t.Error("loss chart should be hidden")
	}
	if !strings.Contains(view, "Press l to show") {
		t.Error("hidden chart should leave a hint")
	}
}
