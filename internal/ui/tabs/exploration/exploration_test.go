package exploration

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	svc "github.com/j-veylop/movierec-dashboard-tui/internal/services/exploration"
)

func newTestModel(t *testing.T) (*Model, *app.State) {
	t.Helper()
	c, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	state := app.NewState()
	m := New(state, c)
	// Tall enough that the viewport shows the whole page.
	m.SetSize(160, 500)
	return m, state
}

func testSnapshot() *svc.Snapshot {
	return &svc.Snapshot{
		Movies: &models.MovieOverview{
			Sample: models.TableSample{
				Columns: []string{"movieId", "title", "genres"},
				Rows:    [][]string{{"1", "Toy Story (1995)", "Adventure|Animation"}},
			},
			Genres: []models.GenreShare{{Genre: "Drama", Movies: 2, Share: 0.5}},
			Movies: 2,
		},
		Frames: map[string]*models.FrameSummary{
			svc.SourceRatingSum: {
				Source:  svc.SourceRatingSum,
				Rows:    10,
				Columns: []models.ColumnSummary{{Name: "rating_count", Count: 10, Mean: 42}},
			},
		},
		Errors: map[string]error{
			svc.SourceRatingAvg: fmt.Errorf("user_rating_avg: %w", svc.ErrSourceMissing),
		},
		Cached: []string{svc.SourceMovies},
	}
}

func TestModel_ViewLoading(t *testing.T) {
	m, _ := newTestModel(t)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Summarizing MovieLens files...") {
		t.Errorf("loading page should show the spinner label:\n%s", view)
	}
	for _, want := range []string{"Data Exploration", "The MovieLens 25M Dataset", "25 million", "Tags", "Learnings"} {
		if !strings.Contains(view, want) {
			t.Errorf("static content missing %q", want)
		}
	}
}

func TestModel_ViewSnapshot(t *testing.T) {
	m, state := newTestModel(t)
	state.SetExploration(testSnapshot())
	state.SetLoading(app.ResourceExploration, false)

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Toy Story (1995)",
		"First 1 of 2 movies",
		"Drama",
		"50.0%",
		"Number of movies rated per user",
		"rating_count",
		"42.000000",
		"user_rating_sum (10 rows)",
		"Average rating per user",
		"data file not found",
		"Cached summaries: [movies]",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_ViewMoviesError(t *testing.T) {
	m, state := newTestModel(t)
	snap := testSnapshot()
	snap.Movies = nil
	snap.Errors[svc.SourceMovies] = svc.ErrUnavailable
	state.SetExploration(snap)
	state.SetLoading(app.ResourceExploration, false)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "movies.csv: query engine unavailable") {
		t.Errorf("movies error should be shown:\n%s", view)
	}
	if !strings.Contains(view, "rating_count") {
		t.Error("other sources should still render")
	}
}

func TestModel_Recompute(t *testing.T) {
	m, state := newTestModel(t)
	recompute := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}

	if _, cmd := m.Update(recompute); cmd != nil {
		t.Error("recompute should wait for the running load")
	}

	state.SetLoading(app.ResourceExploration, false)
	_, cmd := m.Update(recompute)
	if cmd == nil {
		t.Fatal("recompute should return a command")
	}
	msg, ok := cmd().(app.RefreshMsg)
	if !ok || msg.Resource != app.ResourceExploration {
		t.Errorf("msg = %#v", msg)
	}
}

func TestModel_Help(t *testing.T) {
	m, _ := newTestModel(t)
	if len(m.ShortHelp()) != 1 {
		t.Error("ShortHelp should list the recompute key")
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner")
	}
}
