// Package about provides the about page: credits, build and configuration.
package about

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/config"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs"
)

// Model represents the about page.
type Model struct {
	state    *app.State
	content  *content.Content
	config   *config.Config
	body     tabs.Page
	markdown components.MarkdownCache
}

// New creates the about page. cfg may be nil.
func New(state *app.State, c *content.Content, cfg *config.Config) *Model {
	return &Model{
		state:   state,
		content: c,
		config:  cfg,
		body:    tabs.NewPage(),
	}
}

// Init initializes the page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the page.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	return m, m.body.Update(msg)
}

// SetSize sets the available size for the page.
func (m *Model) SetSize(width, height int) {
	m.body.SetSize(width, height)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return nil
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.body.ScrollHelp()}
}
