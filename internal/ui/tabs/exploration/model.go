// Package exploration provides the data exploration page.
package exploration

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs"
)

type keyMap struct {
	Recompute key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Recompute: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "recompute summaries"),
		),
	}
}

// Model represents the exploration page.
type Model struct {
	state    *app.State
	content  *content.Content
	keys     keyMap
	body     tabs.Page
	spinner  components.LoadingSpinner
	markdown components.MarkdownCache
}

// New creates the exploration page.
func New(state *app.State, c *content.Content) *Model {
	return &Model{
		state:   state,
		content: c,
		keys:    defaultKeyMap(),
		body:    tabs.NewPage(),
		spinner: components.NewSpinner("Summarizing MovieLens files..."),
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick()
}

// Update handles messages for the page.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Recompute) {
		if m.state.IsLoading(app.ResourceExploration) {
			return m, nil
		}
		return m, func() tea.Msg {
			return app.RefreshMsg{Resource: app.ResourceExploration}
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

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Recompute}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Recompute}, m.body.ScrollHelp()}
}
