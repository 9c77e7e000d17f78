// Package tabs holds what the dashboard pages share: a scrollable document
// frame with its key bindings.
package tabs

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// ScrollKeys are the bindings every page understands.
type ScrollKeys struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultScrollKeys returns the default scroll bindings.
func DefaultScrollKeys() ScrollKeys {
	return ScrollKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

// Page is a scrollable document inside the standard page margins.
type Page struct {
	viewport viewport.Model
	keys     ScrollKeys
	width    int
}

// NewPage creates an empty page.
func NewPage() Page {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return Page{viewport: vp, keys: DefaultScrollKeys()}
}

// SetSize sets the outer size of the page.
func (p *Page) SetSize(width, height int) {
	p.width = width
	p.viewport.Width = p.ContentWidth()
	p.viewport.Height = max(height-styles.DocStyle.GetVerticalFrameSize(), 0)
}

// ContentWidth is the width available to the document.
func (p *Page) ContentWidth() int {
	return max(p.width-styles.DocStyle.GetHorizontalFrameSize(), 0)
}

// Update scrolls on key and mouse input.
func (p *Page) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, p.keys.Top):
			p.viewport.GotoTop()
			return nil
		case key.Matches(keyMsg, p.keys.Bottom):
			p.viewport.GotoBottom()
			return nil
		}
	}
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return cmd
	}
	return nil
}

// Render places content in the viewport and frames it.
func (p *Page) Render(content string) string {
	p.viewport.SetContent(content)
	return styles.DocStyle.Render(p.viewport.View())
}

// ScrollHelp returns the scroll bindings for help views.
func (p *Page) ScrollHelp() []key.Binding {
	return []key.Binding{p.keys.Up, p.keys.Down, p.keys.PageUp, p.keys.PageDown, p.keys.Top, p.keys.Bottom}
}
