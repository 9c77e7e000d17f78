// Package prose provides the text-only pages of the dashboard.
package prose

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/tabs"
)

// Model renders the markdown sections of one page.
type Model struct {
	page     content.Page
	sections []string
	body     tabs.Page

	// rendered markdown for renderedWidth
	rendered      string
	renderedWidth int
}

// New creates a prose page showing sections of page in the given order.
func New(page content.Page, sections ...string) *Model {
	return &Model{
		page:     page,
		sections: sections,
		body:     tabs.NewPage(),
	}
}

// Init initializes the page.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update scrolls the page.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	return m, m.body.Update(msg)
}

// SetSize sets the available size for the page.
func (m *Model) SetSize(width, height int) {
	m.body.SetSize(width, height)
}

// View renders the page.
func (m *Model) View() string {
	width := m.body.ContentWidth()
	if m.renderedWidth != width || m.rendered == "" {
		m.rendered = m.render(width)
		m.renderedWidth = width
	}
	return m.body.Render(m.rendered)
}

func (m *Model) render(width int) string {
	parts := []string{styles.TitleStyle.Render(m.page.Title)}

	var md []string
	for _, name := range m.sections {
		if s := strings.TrimSpace(m.page.Section(name)); s != "" {
			md = append(md, s)
		}
	}
	if len(md) == 0 {
		parts = append(parts, styles.HelpStyle.Render("Nothing to show."))
	} else {
		parts = append(parts, components.RenderMarkdown(strings.Join(md, "\n\n"), width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return nil
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.body.ScrollHelp()}
}
