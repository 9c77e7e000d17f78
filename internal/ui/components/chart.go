// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// lineColors and legendColors are the same palette for asciigraph and
// lipgloss.
var (
	lineColors = []asciigraph.AnsiColor{
		asciigraph.Blue,
		asciigraph.Red,
		asciigraph.Green,
		asciigraph.Yellow,
		asciigraph.Magenta,
		asciigraph.Cyan,
	}
	legendColors = []lipgloss.Color{"12", "9", "10", "11", "13", "14"}
)

// LineSeries is one named curve.
type LineSeries struct {
	Name   string
	Values []float64
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	return RenderMultiLineChart([]LineSeries{{Values: data}}, width, height, caption)
}

// RenderMultiLineChart plots several curves on shared axes with a legend.
// Shorter series are padded with their last value.
func RenderMultiLineChart(series []LineSeries, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s.Values))
	}
	if maxLen == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	width = max(width, 20)
	height = max(height, 3)

	data := make([][]float64, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	legend := make([]LegendItem, 0, len(series))
	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		padded := make([]float64, maxLen)
		copy(padded, s.Values)
		for j := len(s.Values); j < maxLen; j++ {
			padded[j] = s.Values[len(s.Values)-1]
		}
		data = append(data, padded)
		colors = append(colors, lineColors[i%len(lineColors)])
		if s.Name != "" {
			legend = append(legend, LegendItem{Label: s.Name, Color: legendColors[i%len(legendColors)]})
		}
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)

	if len(legend) == 0 {
		return graph
	}
	return lipgloss.JoinVertical(lipgloss.Left, graph, "", RenderLegend(legend))
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	var parts []string
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}
