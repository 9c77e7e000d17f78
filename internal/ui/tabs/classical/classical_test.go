package classical

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
)

func testBundle() *artifacts.Bundle {
	return &artifacts.Bundle{
		Dir: "/data/models",
		DefaultMetrics: map[string]map[string]float64{
			"SVD":      {"mae": 0.64, "mse": 0.70, "rmse": 0.84},
			"KNNBasic": {"mae": 0.70, "mse": 0.80, "rmse": 0.89},
			"rand":     {"mae": 1.10, "mse": 2.00, "rmse": 1.41},
		},
		CVResults: evaluation.FoldResults{
			"cv_SVD": {
				"test_mae": {0.62, 0.64}, "test_mse": {0.68, 0.70}, "test_rmse": {0.82, 0.84},
				"fit_time": {10, 12}, "test_time": {2, 2},
			},
			"cv_KNNBasic": {
				"test_mae": {0.60, 0.60}, "test_mse": {0.75, 0.77}, "test_rmse": {0.86, 0.88},
				"fit_time": {30, 32}, "test_time": {9, 11},
			},
			"cv_rand": {
				"test_mae": {1.0, 1.2}, "test_mse": {1.9, 2.1}, "test_rmse": {1.38, 1.44},
				"fit_time": {1, 1}, "test_time": {3, 3},
			},
		},
		Cutoffs: evaluation.CutoffResults{
			"precisions_SVD_dict":      {"3": {0.80, 0.82}, "5": {0.78, 0.80}, "10": {0.75, 0.77}},
			"precisions_KNNBasic_dict": {"3": {0.70, 0.72}, "5": {0.90, 0.92}, "10": {0.71, 0.73}},
			"recalls_SVD_dict":         {"3": {0.30, 0.32}, "5": {0.40, 0.42}, "10": {0.50, 0.52}},
			"recalls_KNNBasic_dict":    {"3": {0.35, 0.37}, "5": {0.41, 0.43}, "10": {0.49, 0.51}},
		},
		Files: map[string]string{
			artifacts.StemDefaultMetrics: "/data/models/surp_metrics_default_models.json",
			artifacts.StemCVResults:      "/data/models/surp_cv_results.json",
			artifacts.StemCutoffs:        "/data/models/surp_precision_at_k_recall_at_k.json",
		},
	}
}

func seriesNames(series []evaluation.BarSeries) []string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	return names
}

func TestNewReport_NilBundle(t *testing.T) {
	r := NewReport(nil)
	for _, stem := range []string{artifacts.StemDefaultMetrics, artifacts.StemCVResults, artifacts.StemCutoffs} {
		if !errors.Is(r.Err(stem), artifacts.ErrNotFound) {
			t.Errorf("Err(%s) = %v, want ErrNotFound", stem, r.Err(stem))
		}
	}
	if _, err := r.DefaultSeries(); err == nil {
		t.Error("DefaultSeries should fail without artifacts")
	}
}

func TestNewReport_EmptyArtifact(t *testing.T) {
	b := testBundle()
	b.CVResults = nil
	r := NewReport(b)
	if !errors.Is(r.Err(artifacts.StemCVResults), evaluation.ErrEmptyInput) {
		t.Errorf("Err = %v, want ErrEmptyInput", r.Err(artifacts.StemCVResults))
	}
	if r.Err(artifacts.StemDefaultMetrics) != nil {
		t.Error("other artifacts should still load")
	}
}

func TestReport_DefaultSeries(t *testing.T) {
	series, err := NewReport(testBundle()).DefaultSeries()
	if err != nil {
		t.Fatalf("DefaultSeries() error = %v", err)
	}
	if got := seriesNames(series); !slices.Equal(got, []string{"mae", "mse", "rmse"}) {
		t.Errorf("names = %v", got)
	}
	want := []string{"SVD", "KNNBasic", "NormalPredictor"}
	for _, s := range series {
		if !slices.Equal(s.Order, want) {
			t.Errorf("%s order = %v, want %v", s.Name, s.Order, want)
		}
	}
	if p, _ := series[2].Point("NormalPredictor"); p.Value != 1.41 || p.HasErr {
		t.Errorf("rmse point = %+v", p)
	}
}

func TestReport_CVSeries(t *testing.T) {
	tests := []struct {
		name      string
		bundle    func() *artifacts.Bundle
		metric    string
		tuned     bool
		wantNames []string
		wantOrder []string
		wantErr   error
	}{
		{
			name:      "before tuning ordered by tuned mean",
			bundle:    testBundle,
			metric:    "mae",
			wantNames: []string{"mae before optimization"},
			wantOrder: []string{"KNNBasic", "SVD", "NormalPredictor"},
		},
		{
			name:      "with tuned comparison",
			bundle:    testBundle,
			metric:    "mae",
			tuned:     true,
			wantNames: []string{"mae before optimization", "average mae after optimization (cv=5)"},
			wantOrder: []string{"KNNBasic", "SVD", "NormalPredictor"},
		},
		{
			name:      "other metric",
			bundle:    testBundle,
			metric:    "mse",
			wantNames: []string{"mse before optimization"},
			wantOrder: []string{"SVD", "KNNBasic", "NormalPredictor"},
		},
		{
			name: "without cv results falls back to default order",
			bundle: func() *artifacts.Bundle {
				b := testBundle()
				b.CVResults = nil
				b.Errors = map[string]error{artifacts.StemCVResults: artifacts.ErrNotFound}
				return b
			},
			metric:    "mae",
			wantNames: []string{"mae before optimization"},
			wantOrder: []string{"SVD", "KNNBasic", "NormalPredictor"},
		},
		{
			name: "tuned without cv results",
			bundle: func() *artifacts.Bundle {
				b := testBundle()
				b.Errors = map[string]error{artifacts.StemCVResults: artifacts.ErrNotFound}
				return b
			},
			metric:  "mae",
			tuned:   true,
			wantErr: artifacts.ErrNotFound,
		},
		{
			name:    "unknown metric",
			bundle:  testBundle,
			metric:  "fcp",
			wantErr: evaluation.ErrUnknownMetric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := NewReport(tt.bundle()).CVSeries(tt.metric, tt.tuned)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CVSeries() error = %v", err)
			}
			if got := seriesNames(series); !slices.Equal(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
			for _, s := range series {
				if !slices.Equal(s.Order, tt.wantOrder) {
					t.Errorf("%s order = %v, want %v", s.Name, s.Order, tt.wantOrder)
				}
			}
		})
	}
}

func TestReport_CVSeries_TunedCarriesStd(t *testing.T) {
	series, err := NewReport(testBundle()).CVSeries("mae", true)
	if err != nil {
		t.Fatalf("CVSeries() error = %v", err)
	}
	before, _ := series[0].Point("SVD")
	if before.HasErr {
		t.Error("default results have no error bars")
	}
	after, _ := series[1].Point("SVD")
	if !after.HasErr || after.Err <= 0 {
		t.Errorf("tuned point = %+v, want a std error bar", after)
	}
	if knn, _ := series[1].Point("KNNBasic"); knn.Err != 0 {
		t.Errorf("equal folds should have zero std, got %v", knn.Err)
	}
}

func TestReport_TimeSeries(t *testing.T) {
	r := NewReport(testBundle())
	tests := []struct {
		sorting Sorting
		want    []string
	}{
		{SortLikeMetric, []string{"KNNBasic", "SVD", "NormalPredictor"}},
		{SortFitTime, []string{"NormalPredictor", "SVD", "KNNBasic"}},
		{SortTestTime, []string{"SVD", "NormalPredictor", "KNNBasic"}},
	}
	for _, tt := range tests {
		series, err := r.TimeSeries("mae", tt.sorting)
		if err != nil {
			t.Fatalf("TimeSeries(%d) error = %v", tt.sorting, err)
		}
		if got := seriesNames(series); !slices.Equal(got, []string{"test time", "fit time"}) {
			t.Errorf("names = %v", got)
		}
		if !slices.Equal(series[0].Order, tt.want) {
			t.Errorf("TimeSeries(%d) order = %v, want %v", tt.sorting, series[0].Order, tt.want)
		}
	}
}

func TestReport_CutoffSeries(t *testing.T) {
	r := NewReport(testBundle())

	series, err := r.CutoffSeries(evaluation.KindPrecision, []int{3, 5})
	if err != nil {
		t.Fatalf("CutoffSeries() error = %v", err)
	}
	if got := seriesNames(series); !slices.Equal(got, []string{"k = 3", "k = 5"}) {
		t.Errorf("names = %v", got)
	}
	// Ordered by precision@3 even though KNNBasic leads at k=5.
	if want := []string{"SVD", "KNNBasic"}; !slices.Equal(series[1].Order, want) {
		t.Errorf("order = %v, want %v", series[1].Order, want)
	}
	p, _ := series[1].Point("KNNBasic")
	if !p.HasErr || p.Value < 0.9 {
		t.Errorf("precision@5 point = %+v", p)
	}

	series, err = r.CutoffSeries(evaluation.KindRecall, []int{50})
	if err != nil {
		t.Fatalf("CutoffSeries() error = %v", err)
	}
	if got := seriesNames(series); !slices.Equal(got, []string{"k = 3", "k = 5", "k = 10"}) {
		t.Errorf("unavailable cutoffs should show every k, got %v", got)
	}
	if want := []string{"KNNBasic", "SVD"}; !slices.Equal(series[0].Order, want) {
		t.Errorf("recall order = %v, want %v", series[0].Order, want)
	}
}

func TestReport_CutoffSeries_MissingKind(t *testing.T) {
	b := testBundle()
	b.Cutoffs = evaluation.CutoffResults{"precisions_SVD_dict": {"3": {0.8}}}
	_, err := NewReport(b).CutoffSeries(evaluation.KindRecall, nil)
	if !errors.Is(err, evaluation.ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestSorting(t *testing.T) {
	if SortTestTime.Next() != SortLikeMetric {
		t.Error("Next should wrap around")
	}
	if got := SortLikeMetric.Metric("rmse"); got != "test_rmse" {
		t.Errorf("Metric() = %q", got)
	}
	if got := SortFitTime.Metric("rmse"); got != "fit_time" {
		t.Errorf("Metric() = %q", got)
	}
}

func newTestModel(t *testing.T, b *artifacts.Bundle) (*Model, *app.State) {
	t.Helper()
	c, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	state := app.NewState()
	state.SetLoading(app.ResourceInitial, false)
	if b != nil {
		state.SetBundle(b)
	}
	m := New(state, c, []int{3, 5, 10})
	m.SetSize(160, 1000)
	return m, state
}

func press(m *Model, k string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t, testBundle())
	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Classical Models",
		"Chart 1: Different performance metrics for default Surprise models.",
		"Chart 2: mae for different Surprise models.",
		"like chart 2",
		"Chart 3: Average fit and test times",
		"Chart 4: Average precision@k of Surprise models with optimized parameters.",
		"Press x to show recall@k",
		"Learnings from classical model training",
		"NormalPredictor",
		"Results from /data/models",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Average recall@k") {
		t.Error("recall chart should be hidden by default")
	}
}

func TestModel_Keys(t *testing.T) {
	m, _ := newTestModel(t, testBundle())

	press(m, "m")
	if m.Metric() != "mse" {
		t.Errorf("Metric() = %q, want mse", m.Metric())
	}
	press(m, "t")
	press(m, "x")
	press(m, "s")

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Chart 2: mse for different Surprise models.",
		"average mse after optimization (cv=5)",
		"Chart 5: Average recall@k of Surprise models with optimized parameters.",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if m.sorting != SortFitTime {
		t.Errorf("sorting = %d, want SortFitTime", m.sorting)
	}

	press(m, "m")
	press(m, "m")
	if m.Metric() != "mae" {
		t.Errorf("metric should wrap to mae, got %q", m.Metric())
	}
}

func TestModel_ReportFollowsBundle(t *testing.T) {
	m, state := newTestModel(t, testBundle())
	first := m.Report()
	if m.Report() != first {
		t.Error("report should be reused for the same bundle")
	}
	state.SetBundle(testBundle())
	if m.Report() == first {
		t.Error("report should be rebuilt for a new bundle")
	}
}

func TestModel_ViewWithoutArtifacts(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "artifact not found") {
		t.Errorf("missing artifacts should be reported:\n%s", view)
	}
	if strings.Contains(view, "Chart 1:") {
		t.Error("failed charts should not show captions")
	}
	if !strings.Contains(view, "like chart 2") {
		t.Error("failed charts should still be numbered")
	}
}

func TestModel_ViewLoading(t *testing.T) {
	c, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}
	m := New(app.NewState(), c, nil)
	m.SetSize(160, 200)
	if !strings.Contains(ansi.Strip(m.View()), "Loading evaluation results...") {
		t.Error("loading page should show the spinner")
	}
	if !slices.Equal(m.cutoffs, evaluation.DefaultCutoffs) {
		t.Errorf("cutoffs = %v, want defaults", m.cutoffs)
	}
}
