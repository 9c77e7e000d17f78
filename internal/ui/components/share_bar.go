package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// ShareBar renders a proportion as a labeled gradient bar.
type ShareBar struct {
	progress   progress.Model
	labelWidth int
}

// NewShareBar creates a share bar whose bar part is width cells wide.
func NewShareBar(width, labelWidth int) ShareBar {
	p := progress.New(
		progress.WithScaledGradient("#5A56E0", "#EE6FF8"),
		progress.WithWidth(max(width, 10)),
		progress.WithoutPercentage(),
	)
	return ShareBar{progress: p, labelWidth: labelWidth}
}

// View renders label, bar and percentage for share in [0, 1].
func (s ShareBar) View(label string, share float64) string {
	share = min(max(share, 0), 1)
	percent := share * 100

	name := styles.ProgressLabelStyle.Width(s.labelWidth).Render(runewidth.Truncate(label, s.labelWidth, "…"))
	pct := styles.ShareStyle(percent).Render(fmt.Sprintf("%5.1f%%", percent))

	return lipgloss.JoinHorizontal(lipgloss.Center, name, s.progress.ViewAs(share), " ", pct)
}

// RenderGenreShares lists every genre with its share of movies, largest first
// as given.
func RenderGenreShares(shares []models.GenreShare, width int) string {
	if len(shares) == 0 {
		return styles.HelpStyle.Render("No genres available")
	}

	labelWidth := 0
	for _, s := range shares {
		labelWidth = max(labelWidth, runewidth.StringWidth(s.Genre))
	}
	labelWidth = min(labelWidth+1, 24)

	bar := NewShareBar(width-labelWidth-8, labelWidth)
	lines := make([]string, 0, len(shares))
	for _, s := range shares {
		lines = append(lines, bar.View(s.Genre, s.Share))
	}
	return strings.Join(lines, "\n")
}
