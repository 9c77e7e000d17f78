// Package advanced provides the neural collaborative filtering page.
package advanced

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs"
)

// Curves plotted from the training history, in legend order.
var Curves = []string{"loss", "val_loss"}

var curveNames = map[string]string{
	"loss":     "training loss",
	"val_loss": "validation loss",
}

type keyMap struct {
	Loss key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Loss: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "toggle loss chart"),
		),
	}
}

// Model represents the advanced models page.
type Model struct {
	state    *app.State
	content  *content.Content
	keys     keyMap
	body     tabs.Page
	markdown components.MarkdownCache
	showLoss bool
}

// New creates the advanced models page.
func New(state *app.State, c *content.Content) *Model {
	return &Model{
		state:    state,
		content:  c,
		keys:     defaultKeyMap(),
		body:     tabs.NewPage(),
		showLoss: true,
	}
}

// Init initializes the page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the page.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Loss) {
		m.showLoss = !m.showLoss
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
	return []key.Binding{m.keys.Loss}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Loss}, m.body.ScrollHelp()}
}
