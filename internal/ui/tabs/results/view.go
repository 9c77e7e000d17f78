package results

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// View renders the page.
func (m *Model) View() string {
	page := m.content.Page(content.PageResults)
	width := m.body.ContentWidth()

	sections := []string{
		styles.TitleStyle.Render(page.Title),
		m.markdown.Render(page.Section("methodology"), width),
		m.markdown.Render(page.Section("default"), width),
		m.staticTable(content.TableResultsDefault),
		m.markdown.Render(page.Section("tuned"), width),
		m.staticTable(content.TableResultsTuned),
		m.markdown.Render(page.Section("final"), width),
		m.staticTable(content.TableResultsFinal),
	}

	if m.showComputed {
		sections = append(sections, m.renderComputed()...)
	}

	sections = append(sections, components.Section("Conclusion", m.markdown.Render(page.Section("outlook"), width)), "")

	if box := components.LearningsBox("Learnings", m.content.LearningsFor(content.PageResults), width); box != "" {
		sections = append(sections, box)
	}

	return m.body.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) staticTable(key string) string {
	t, ok := m.content.Table(key)
	if !ok {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, components.StaticTable(t), components.Caption(t.Title), "")
}

// renderComputed lays out the tables derived from the loaded artifacts.
func (m *Model) renderComputed() []string {
	if m.state.IsLoading(app.ResourceArtifacts) && m.state.Bundle() == nil {
		return []string{styles.HelpStyle.Render("Loading evaluation results..."), ""}
	}
	b := m.state.Bundle()

	out := []string{styles.SubTitleStyle.Render("From the current artifacts")}
	out = append(out, computedTable(artifacts.StemDefaultMetrics, "Surprise models with default parameters", DefaultTable, b)...)
	out = append(out, computedTable(artifacts.StemCVResults, "Surprise models after tuning (cv=5, mean ± std)", TunedTable, b)...)
	return out
}

func computedTable(stem, caption string, build func(*artifacts.Bundle) (evaluation.Table, error), b *artifacts.Bundle) []string {
	t, err := build(b)
	if err != nil {
		return []string{components.ErrorBox(stem, err), ""}
	}
	return []string{components.EvaluationTable(t, "%.4f"), components.Caption(caption), ""}
}
