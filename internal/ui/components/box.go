package components

import (
	"fmt"
	"strings"

	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// Captions numbers chart captions within one render.
type Captions struct {
	n int
}

// Next returns the next numbered caption.
func (c *Captions) Next(text string) string {
	c.n++
	return fmt.Sprintf("Chart %d: %s", c.n, text)
}

// Count returns how many captions were issued.
func (c *Captions) Count() int {
	return c.n
}

// Reset restarts numbering.
func (c *Captions) Reset() {
	c.n = 0
}

// Caption styles a caption line.
func Caption(text string) string {
	return styles.CaptionStyle.Render(text)
}

// LearningsBox frames a bulleted list under a title.
func LearningsBox(title string, items []string, width int) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.CardTitleStyle.Render(title))
	b.WriteString("\n")
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("• " + item)
	}
	// Border and padding take 6 columns.
	inner := max(width-6, 20)
	return styles.LearningsCardStyle.Width(inner).Render(b.String())
}

// Section renders a section heading followed by its body.
func Section(title, body string) string {
	return styles.SubTitleStyle.Render(title) + "\n" + body
}

// ErrorBox reports why a page section could not be shown.
func ErrorBox(what string, err error) string {
	return styles.ErrorTextStyle.Render(fmt.Sprintf("✗ %s: %v", what, err))
}
