package components

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
)

// RenderMarkdown renders prose for the terminal, wrapped at width. When the
// renderer fails the raw markdown is returned.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		logger.Warn("Markdown renderer unavailable", "error", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logger.Warn("Failed to render markdown", "error", err)
		return md
	}
	return strings.Trim(out, "\n")
}

type markdownKey struct {
	md    string
	width int
}

// MarkdownCache memoizes RenderMarkdown for views redrawn on every frame.
type MarkdownCache struct {
	rendered map[markdownKey]string
}

// Render returns the rendering of md at width, computing it once.
func (c *MarkdownCache) Render(md string, width int) string {
	k := markdownKey{md: md, width: width}
	if out, ok := c.rendered[k]; ok {
		return out
	}
	if c.rendered == nil {
		c.rendered = make(map[markdownKey]string)
	}
	out := RenderMarkdown(md, width)
	c.rendered[k] = out
	return out
}
