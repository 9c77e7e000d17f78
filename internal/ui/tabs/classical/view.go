package classical

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// View renders the page.
func (m *Model) View() string {
	page := m.content.Page(content.PageClassical)
	width := m.body.ContentWidth()

	sections := []string{
		styles.TitleStyle.Render(page.Title),
		components.Section("Methodology", m.markdown.Render(page.Section("methodology"), width)),
		components.Section("Own implementation of collaborative filtering", m.markdown.Render(page.Section("own"), width)),
		components.Section("Surprise models: parameter tuning and cross-validation", m.markdown.Render(page.Section("surprise"), width)),
	}

	if m.state.IsLoading(app.ResourceArtifacts) && m.state.Bundle() == nil {
		sections = append(sections, components.RenderSpinnerCentered(m.spinner, min(width, 110), 5))
		return m.body.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	r := m.Report()
	chartWidth := min(width, 110)
	var captions components.Captions

	series, err := r.DefaultSeries()
	sections = append(sections, m.chart(&captions, series, err,
		"Default models", "Different performance metrics for default Surprise models.", "%.4f", chartWidth))

	metric := m.Metric()
	series, err = r.CVSeries(metric, m.tuned)
	sections = append(sections,
		options(
			option("m", "metric", metricChoices(metric)),
			option("t", "result after tuning", onOff(m.tuned)),
		),
		m.chart(&captions, series, err,
			"Cross-validation", fmt.Sprintf("%s for different Surprise models.", metric), "%.4f", chartWidth),
		m.markdown.Render(page.Section("tuning"), width),
	)
	cvChart := captions.Count()

	series, err = r.TimeSeries(metric, m.sorting)
	sections = append(sections,
		options(option("s", "model sorting", sortingChoices(m.sorting, cvChart))),
		m.chart(&captions, series, err,
			"Fit and test times", "Average fit and test times during 5-fold cross-validation of optimized Surprise models.", "%.2f", chartWidth),
	)

	sections = append(sections, components.Section("Surprise models: precision@k and recall@k",
		m.markdown.Render(page.Section("cutoffs"), width)))
	series, err = r.CutoffSeries(evaluation.KindPrecision, m.cutoffs)
	sections = append(sections, m.chart(&captions, series, err,
		"Precision@k", "Average precision@k of Surprise models with optimized parameters.", "%.3f", chartWidth))

	if m.showRecall {
		series, err = r.CutoffSeries(evaluation.KindRecall, m.cutoffs)
		sections = append(sections,
			m.markdown.Render(page.Section("recall"), width),
			m.chart(&captions, series, err,
				"Recall@k", "Average recall@k of Surprise models with optimized parameters.", "%.3f", chartWidth),
		)
	} else {
		sections = append(sections, styles.HelpStyle.Render("Press x to show recall@k"), "")
	}

	if box := components.LearningsBox("Learnings from classical model training", m.content.LearningsFor(content.PageClassical), width); box != "" {
		sections = append(sections, box)
	}
	if b := m.state.Bundle(); b != nil && b.Dir != "" {
		sections = append(sections, styles.HelpStyle.Render(fmt.Sprintf("Results from %s", b.Dir)))
	}

	return m.body.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// chart renders one numbered bar chart. The number is taken even when the
// chart fails so later references stay stable.
func (m *Model) chart(c *components.Captions, series []evaluation.BarSeries, err error, what, caption, verb string, width int) string {
	label := c.Next(caption)
	if err != nil {
		return components.ErrorBox(what, err) + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderBars(series, width, verb),
		"",
		components.Caption(label),
		"",
	)
}

func options(lines ...string) string {
	return strings.Join(lines, "\n")
}

type choice struct {
	label  string
	active bool
}

func option(k, name string, choices []choice) string {
	parts := make([]string, 0, len(choices))
	for _, c := range choices {
		if c.active {
			parts = append(parts, styles.OptionActiveStyle.Render(c.label))
		} else {
			parts = append(parts, styles.OptionInactiveStyle.Render(c.label))
		}
	}
	return fmt.Sprintf("%s %s: %s", styles.HelpKeyStyle.Render("["+k+"]"), name, strings.Join(parts, " "))
}

func metricChoices(selected string) []choice {
	out := make([]choice, len(Metrics))
	for i, metric := range Metrics {
		out[i] = choice{label: metric, active: metric == selected}
	}
	return out
}

func onOff(on bool) []choice {
	return []choice{{label: "off", active: !on}, {label: "on", active: on}}
}

func sortingChoices(selected Sorting, cvChart int) []choice {
	labels := map[Sorting]string{
		SortLikeMetric: fmt.Sprintf("like chart %d", cvChart),
		SortFitTime:    "fit_time",
		SortTestTime:   "test_time",
	}
	out := make([]choice, 0, sortingCount)
	for s := SortLikeMetric; s < sortingCount; s++ {
		out = append(out, choice{label: labels[s], active: s == selected})
	}
	return out
}
