package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// describeHighlight marks the describe() rows the exploration page
// emphasizes.
var describeHighlight = map[string]bool{"min": true, "50%": true, "max": true}

// RenderTable draws a bordered table. The first cell of a row is its label;
// rows whose label satisfies highlight are emphasized. highlight may be nil.
func RenderTable(headers []string, rows [][]string, highlight func(label string) bool) string {
	if len(rows) == 0 {
		return styles.HelpStyle.Render("No rows")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableHeaderStyle
			case highlight != nil && row < len(rows) && len(rows[row]) > 0 && highlight(rows[row][0]):
				return styles.TableHighlightStyle
			default:
				return styles.TableCellStyle
			}
		})
	return t.Render()
}

// EvaluationTable renders a models by metrics table, cells formatted with
// verb.
func EvaluationTable(t evaluation.Table, verb string) string {
	headers := append([]string{""}, t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, id := range t.Rows {
		row := make([]string, 0, len(t.Columns)+1)
		row = append(row, id)
		for _, c := range t.Cells[i] {
			row = append(row, c.Format(verb))
		}
		rows[i] = row
	}
	return RenderTable(headers, rows, nil)
}

// DescribeTable renders a describe() summary with one column per numeric
// column of the frame.
func DescribeTable(f models.FrameSummary) string {
	headers := []string{""}
	for _, c := range f.Columns {
		headers = append(headers, c.Name)
	}
	rows := make([][]string, 0, len(models.DescribeRows))
	for _, stat := range models.DescribeRows {
		row := []string{stat}
		for _, c := range f.Columns {
			v, _ := c.Stat(stat)
			row = append(row, formatStat(stat, v))
		}
		rows = append(rows, row)
	}
	return RenderTable(headers, rows, func(label string) bool { return describeHighlight[label] })
}

func formatStat(stat string, v float64) string {
	if stat == "count" {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// SampleTable renders the first rows of a file.
func SampleTable(s models.TableSample) string {
	return RenderTable(s.Columns, s.Rows, nil)
}

// StaticTable renders a fixed page table with its highlighted rows.
func StaticTable(t content.Table) string {
	return RenderTable(t.Columns, t.Rows, t.Highlighted)
}
