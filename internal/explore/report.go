package explore

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

const defaultWidth = 120

func displayName(path string) string {
	return filepath.Base(path)
}

// TerminalWidth returns the width of stdout, or a default when it is not a
// terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 20 {
		return w
	}
	return defaultWidth
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "%s %s %s\n", strings.Repeat("=", 22), title, strings.Repeat("=", 22))
}

// Write prints the report for p, fitting the head table into width columns.
func Write(w io.Writer, p *Profile, width int) {
	if width <= 0 {
		width = defaultWidth
	}

	fmt.Fprintf(w, "============ overview of data in %s ===========\n", p.Name)
	section(w, ".head()")
	writeHead(w, p, width)

	fmt.Fprintln(w)
	section(w, ".info()")
	writeInfo(w, p)

	fmt.Fprintln(w)
	section(w, "percentage NaNs")
	nameWidth := maxNameWidth(p.Columns)
	for _, c := range p.Columns {
		fmt.Fprintf(w, "%s  %.6f\n", padRight(c.Name, nameWidth), c.MissingRate())
	}

	fmt.Fprintln(w)
	section(w, "variable distribution")
	fmt.Fprintln(w, "number of unique values for object variables")
	for _, c := range p.ObjectColumns() {
		printer.Fprintf(w, "%s: %d\n", c.Name, c.Unique())
	}

	for _, c := range p.NumericColumns() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "basic statistics for %s\n", c.Name)
		writeDescribe(w, c)
	}
}

func writeHead(w io.Writer, p *Profile, width int) {
	if len(p.Head) == 0 {
		fmt.Fprintln(w, "Empty DataFrame")
		return
	}

	// Columns share the width evenly, but never shrink below 6 cells.
	colWidth := max(6, (width-4)/max(1, len(p.Header))-1)
	widths := make([]int, len(p.Header))
	for i, h := range p.Header {
		widths[i] = min(colWidth, runewidth.StringWidth(h))
	}
	for _, row := range p.Head {
		for i, v := range row {
			widths[i] = max(widths[i], min(colWidth, runewidth.StringWidth(v)))
		}
	}

	indexWidth := len(fmt.Sprint(len(p.Head) - 1))
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indexWidth))
	for i, h := range p.Header {
		b.WriteString(" ")
		b.WriteString(padLeft(runewidth.Truncate(h, widths[i], "…"), widths[i]))
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))

	for r, row := range p.Head {
		b.Reset()
		b.WriteString(padRight(fmt.Sprint(r), indexWidth))
		for i, v := range row {
			b.WriteString(" ")
			b.WriteString(padLeft(runewidth.Truncate(v, widths[i], "…"), widths[i]))
		}
		fmt.Fprintln(w, b.String())
	}
}

func writeInfo(w io.Writer, p *Profile) {
	fmt.Fprintln(w, "<class 'DataFrame'>")
	printer.Fprintf(w, "RangeIndex: %d entries, 0 to %d\n", p.Rows, max(0, p.Rows-1))
	fmt.Fprintf(w, "Data columns (total %d columns):\n", len(p.Columns))

	nameWidth := max(6, maxNameWidth(p.Columns))
	fmt.Fprintf(w, " #   %s  Non-Null Count  Dtype\n", padRight("Column", nameWidth))
	counts := map[Dtype]int{}
	for i, c := range p.Columns {
		counts[c.Dtype]++
		nonNull := printer.Sprintf("%d non-null", c.NonNull)
		fmt.Fprintf(w, " %-3d %s  %-14s  %s\n", i, padRight(c.Name, nameWidth), nonNull, c.Dtype)
	}

	var parts []string
	for _, d := range []Dtype{DtypeFloat, DtypeInt, DtypeObject} {
		if n := counts[d]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s(%d)", d, n))
		}
	}
	fmt.Fprintf(w, "dtypes: %s\n", strings.Join(parts, ", "))
}

func writeDescribe(w io.Writer, c *ColumnProfile) {
	d := c.Describe()
	rows := []struct {
		label string
		value float64
	}{
		{"count", float64(d.Count)},
		{"mean", d.Mean},
		{"std", d.Std},
		{"min", d.Min},
		{"25%", d.Q25},
		{"50%", d.Median},
		{"75%", d.Q75},
		{"max", d.Max},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-6s %s\n", r.label, formatStat(r.value))
	}
	fmt.Fprintf(w, "Name: %s, dtype: float64\n", c.Name)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return printer.Sprintf("%.6e", v)
}

func maxNameWidth(cols []*ColumnProfile) int {
	n := 0
	for _, c := range cols {
		n = max(n, runewidth.StringWidth(c.Name))
	}
	return n
}

func padRight(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
