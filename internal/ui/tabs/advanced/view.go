package advanced

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

const lossChartHeight = 12

// View renders the page.
func (m *Model) View() string {
	page := m.content.Page(content.PageAdvanced)
	width := m.body.ContentWidth()

	sections := []string{
		styles.TitleStyle.Render(page.Title),
		m.markdown.Render(page.Section("ncf"), width),
		m.markdown.Render(page.Section("tuning"), width),
	}

	if m.showLoss {
		sections = append(sections, components.Section("Training and Validation Loss", m.renderLoss(width)), "")
	} else {
		sections = append(sections, styles.HelpStyle.Render("Press l to show the training and validation loss"), "")
	}

	if box := components.LearningsBox("Learnings", m.content.LearningsFor(content.PageAdvanced), width); box != "" {
		sections = append(sections, box)
	}

	return m.body.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// LossSeries returns the curves found in the training history.
func LossSeries(h artifacts.History) []components.LineSeries {
	var out []components.LineSeries
	for _, name := range Curves {
		if values, ok := h.Series(name); ok {
			out = append(out, components.LineSeries{Name: curveNames[name], Values: values})
		}
	}
	return out
}

func (m *Model) renderLoss(width int) string {
	b := m.state.Bundle()
	if err := b.Err(artifacts.StemNCFHistory); err != nil {
		return components.ErrorBox(artifacts.StemNCFHistory, err)
	}

	series := LossSeries(b.History)
	if len(series) == 0 {
		return styles.HelpStyle.Render("No loss curves in the training history")
	}
	epochs := 0
	for _, s := range series {
		epochs = max(epochs, len(s.Values))
	}

	chart := components.RenderMultiLineChart(series, min(width-12, 100), lossChartHeight, "MAE per epoch")
	return lipgloss.JoinVertical(lipgloss.Left,
		chart,
		"",
		components.Caption(fmt.Sprintf("NCF training over %d epochs", epochs)),
	)
}
