package about

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/movierec-dashboard-tui/internal/version"
)

// View renders the page.
func (m *Model) View() string {
	page := m.content.Page(content.PageAbout)
	width := m.body.ContentWidth()

	sections := []string{
		styles.TitleStyle.Render(page.Title),
		m.markdown.Render(page.Section("contributors"), width),
		m.markdown.Render(page.Section("references"), width),
		"",
		m.renderConfigCard(width),
		m.renderBuildCard(width),
		m.renderReloadsCard(width),
	}

	return m.body.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func cardWidth(width int) int {
	return min(max(width-6, 50), 100)
}

// renderConfigCard renders the configuration paths card.
func (m *Model) renderConfigCard(width int) string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config != nil {
		configFile := m.config.ConfigFile
		if configFile == "" {
			configFile = "(defaults and environment)"
		}
		rows = append(rows,
			renderRow("Config File", configFile),
			renderRow("Artifacts", m.config.ArtifactsDir),
			renderRow("MovieLens", m.config.MovieLensDir),
			renderRow("Data Frames", m.config.DataFramesDir),
			renderRow("Cache DB", m.config.CacheDBPath),
			renderRow("Log File", m.config.LogFile),
			renderRow("Cutoffs", fmt.Sprint(m.config.Cutoffs)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	watching := styles.HelpStyle.Render("off")
	if m.state.Watching() {
		watching = styles.SuccessTextStyle.Render("on")
	}
	rows = append(rows, renderRow("Watching", watching))

	return styles.CardStyle.Width(cardWidth(width)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(14).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderBuildCard renders the version information card.
func (m *Model) renderBuildCard(width int) string {
	rows := []string{styles.CardTitleStyle.Render("About " + version.Name), ""}
	for _, f := range version.Fields() {
		rows = append(rows, renderRow(f.Label, f.Value))
	}
	return styles.CardStyle.Width(cardWidth(width)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderReloadsCard lists the latest loads of the artifact directory.
func (m *Model) renderReloadsCard(width int) string {
	rows := []string{styles.CardTitleStyle.Render("Recent Reloads"), ""}

	reloads := m.state.Reloads()
	if len(reloads) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No reloads recorded"))
	} else {
		table := make([][]string, 0, len(reloads))
		for _, r := range reloads {
			table = append(table, []string{
				r.Timestamp.Format("2006-01-02 15:04:05"),
				r.Reason,
				strconv.Itoa(r.Loaded),
				strconv.Itoa(r.Failed),
			})
		}
		rows = append(rows, components.RenderTable([]string{"Time", "Reason", "Loaded", "Failed"}, table, nil))
	}

	return styles.CardStyle.Width(cardWidth(width)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
