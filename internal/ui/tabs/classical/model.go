// Package classical provides the page charting the Surprise model results.
package classical

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs"
)

type keyMap struct {
	Metric key.Binding
	Tuned  key.Binding
	Sort   key.Binding
	Recall key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Metric: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "cycle metric"),
		),
		Tuned: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle tuned results"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle time ordering"),
		),
		Recall: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle recall@k"),
		),
	}
}

// Model represents the classical models page.
type Model struct {
	state    *app.State
	content  *content.Content
	cutoffs  []int
	keys     keyMap
	body     tabs.Page
	spinner  components.LoadingSpinner
	markdown components.MarkdownCache

	metric     int
	tuned      bool
	sorting    Sorting
	showRecall bool

	// report is rebuilt when the bundle changes.
	report       *Report
	reportBundle *artifacts.Bundle
}

// New creates the classical models page. cutoffs are the k values charted;
// nil shows the default set.
func New(state *app.State, c *content.Content, cutoffs []int) *Model {
	if len(cutoffs) == 0 {
		cutoffs = evaluation.DefaultCutoffs
	}
	return &Model{
		state:   state,
		content: c,
		cutoffs: cutoffs,
		keys:    defaultKeyMap(),
		body:    tabs.NewPage(),
		spinner: components.NewSpinner("Loading evaluation results..."),
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages for the page.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Metric):
			m.metric = (m.metric + 1) % len(Metrics)
			return m, nil
		case key.Matches(keyMsg, m.keys.Tuned):
			m.tuned = !m.tuned
			return m, nil
		case key.Matches(keyMsg, m.keys.Sort):
			m.sorting = m.sorting.Next()
			return m, nil
		case key.Matches(keyMsg, m.keys.Recall):
			m.showRecall = !m.showRecall
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, tea.Batch(cmd, m.body.Update(msg))
}

// SetSize sets the available size for the page.
func (m *Model) SetSize(width, height int) {
	m.body.SetSize(width, height)
}

// Metric returns the metric selected for the tuning chart.
func (m *Model) Metric() string {
	return Metrics[m.metric]
}

// Report returns the reshaped results of the current bundle.
func (m *Model) Report() *Report {
	b := m.state.Bundle()
	if m.report == nil || b != m.reportBundle {
		m.report = NewReport(b)
		m.reportBundle = b
	}
	return m.report
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Metric, m.keys.Tuned, m.keys.Sort, m.keys.Recall}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp(), m.body.ScrollHelp()}
}
