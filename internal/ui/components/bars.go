package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

const (
	barRune     = "█"
	whiskerRune = "─"
	whiskerEnd  = "┤"
)

// RenderBars draws grouped horizontal bars, one group per category and one
// bar per series. Categories follow the order of the first series; error bars
// are drawn as whiskers to the right of the bar.
func RenderBars(series []evaluation.BarSeries, width int, verb string) string {
	if len(series) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if verb == "" {
		verb = "%.4f"
	}

	categories := barCategories(series)
	if len(categories) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	labelWidth := 0
	for _, c := range categories {
		labelWidth = max(labelWidth, runewidth.StringWidth(c))
	}

	scale := 0.0
	valueWidth := 0
	for _, s := range series {
		scale = max(scale, s.Max())
		for _, p := range s.Points {
			valueWidth = max(valueWidth, len(barValue(p, verb)))
		}
	}

	barWidth := max(width-labelWidth-valueWidth-3, 10)

	var b strings.Builder
	for ci, category := range categories {
		if ci > 0 && len(series) > 1 {
			b.WriteString("\n")
		}
		for si, s := range series {
			label := ""
			if si == 0 {
				label = category
			}
			b.WriteString(runewidth.FillRight(label, labelWidth))
			b.WriteString(" ")

			p, ok := s.Point(category)
			if !ok {
				b.WriteString(styles.HelpStyle.Render("-"))
				b.WriteString("\n")
				continue
			}
			style := lipgloss.NewStyle().Foreground(styles.SeriesColor(si))
			b.WriteString(style.Render(barLine(p, scale, barWidth)))
			b.WriteString(" ")
			b.WriteString(styles.HelpDescStyle.Render(barValue(p, verb)))
			b.WriteString("\n")
		}
	}

	out := strings.TrimRight(b.String(), "\n")
	legend := barLegend(series)
	if legend == "" {
		return out
	}
	return lipgloss.JoinVertical(lipgloss.Left, out, "", legend)
}

// barCategories returns the labels of the first series followed by labels
// only present in later series.
func barCategories(series []evaluation.BarSeries) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range series {
		for _, p := range s.Points {
			if !seen[p.Label] {
				seen[p.Label] = true
				out = append(out, p.Label)
			}
		}
	}
	return out
}

func barLine(p evaluation.BarPoint, scale float64, width int) string {
	if scale <= 0 {
		return ""
	}
	cells := func(v float64) int {
		return int(math.Round(math.Max(v, 0) / scale * float64(width)))
	}
	bar := cells(p.Value)
	line := strings.Repeat(barRune, bar)
	if p.HasErr && p.Err > 0 {
		whisker := max(cells(p.Value+p.Err)-bar, 1)
		line += strings.Repeat(whiskerRune, whisker-1) + whiskerEnd
	}
	return line
}

func barValue(p evaluation.BarPoint, verb string) string {
	if p.HasErr {
		return fmt.Sprintf(verb+" ± "+verb, p.Value, p.Err)
	}
	return fmt.Sprintf(verb, p.Value)
}

func barLegend(series []evaluation.BarSeries) string {
	if len(series) == 1 && series[0].Name == "" {
		return ""
	}
	items := make([]LegendItem, 0, len(series))
	for i, s := range series {
		items = append(items, LegendItem{Label: s.Name, Color: styles.SeriesColor(i)})
	}
	return RenderLegend(items)
}
