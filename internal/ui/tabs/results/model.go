// Package results provides the results and conclusion page.
package results

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs"
)

type keyMap struct {
	Computed key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Computed: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle artifact tables"),
		),
	}
}

// Model represents the results page.
type Model struct {
	state        *app.State
	content      *content.Content
	keys         keyMap
	body         tabs.Page
	markdown     components.MarkdownCache
	showComputed bool
}

// New creates the results page.
func New(state *app.State, c *content.Content) *Model {
	return &Model{
		state:        state,
		content:      c,
		keys:         defaultKeyMap(),
		body:         tabs.NewPage(),
		showComputed: true,
	}
}

// Init initializes the page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the page.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Computed) {
		m.showComputed = !m.showComputed
		return m, nil
	}
	return m, m.body.Update(msg)
}

// SetSize sets the available size for the page.
func (m *Model) SetSize(width, height int) {
	m.body.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Computed}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Computed}, m.body.ScrollHelp()}
}
