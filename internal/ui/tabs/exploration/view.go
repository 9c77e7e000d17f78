package exploration

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/movierec-dashboard-tui/internal/app"
	"github.com/j-veylop/movierec-dashboard-tui/internal/content"
	svc "github.com/j-veylop/movierec-dashboard-tui/internal/services/exploration"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/movierec-dashboard-tui/internal/ui/styles"
)

// frameTitles names the describe() tables.
var frameTitles = map[string]string{
	svc.SourceRatingSum: "Number of movies rated per user",
	svc.SourceRatingAvg: "Average rating per user",
}

// View renders the page.
func (m *Model) View() string {
	page := m.content.Page(content.PageExploration)
	width := m.body.ContentWidth()
	snap := m.state.Exploration()
	loading := m.state.IsLoading(app.ResourceExploration)

	sections := []string{styles.TitleStyle.Render(page.Title)}

	// Dataset overview
	sections = append(sections, components.Section("The MovieLens 25M Dataset",
		lipgloss.JoinVertical(lipgloss.Left,
			m.markdown.Render(page.Section("dataset"), width),
			m.staticTable(content.TableMovieLens),
		)))

	if loading && snap == nil {
		sections = append(sections, m.spinner.View(), "")
	} else {
		sections = append(sections, m.renderMovies(snap, width)...)
		sections = append(sections, m.renderFrames(snap, page)...)
	}

	// Tags
	sections = append(sections, components.Section("Tags",
		lipgloss.JoinVertical(lipgloss.Left,
			styles.HelpDescStyle.Render(page.Section("tags")),
			"",
			m.staticTable(content.TableTagsPerUser),
		)), "")

	if box := components.LearningsBox("Learnings", m.content.LearningsFor(content.PageExploration), width); box != "" {
		sections = append(sections, box)
	}

	if snap != nil && len(snap.Cached) > 0 {
		cached := slices.Clone(snap.Cached)
		slices.Sort(cached)
		sections = append(sections, styles.HelpStyle.Render(fmt.Sprintf("Cached summaries: %v", cached)))
	}

	return m.body.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) staticTable(key string) string {
	t, ok := m.content.Table(key)
	if !ok {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, components.StaticTable(t), components.Caption(t.Title))
}

// renderMovies shows the movies.csv sample and the genre proportions.
func (m *Model) renderMovies(snap *svc.Snapshot, width int) []string {
	if err := snap.Err(svc.SourceMovies); err != nil {
		return []string{components.Section("Movies", components.ErrorBox("movies.csv", err)), ""}
	}
	if snap.Movies == nil {
		return nil
	}

	sample := lipgloss.JoinVertical(lipgloss.Left,
		components.SampleTable(snap.Movies.Sample),
		components.Caption(fmt.Sprintf("First %d of %d movies", len(snap.Movies.Sample.Rows), snap.Movies.Movies)),
	)
	genres := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderGenreShares(snap.Movies.Genres, min(width, 100)),
		"",
		components.Caption("Share of movies per genre (movies may have several genres)"),
	)

	return []string{
		components.Section("Movies", sample),
		components.Section("Genres", genres),
	}
}

// renderFrames shows a describe() table per user frame.
func (m *Model) renderFrames(snap *svc.Snapshot, page content.Page) []string {
	out := []string{components.Section("Ratings per User", styles.HelpDescStyle.Render(page.Section("ratings"))), ""}
	for _, name := range svc.Frames {
		title := frameTitles[name]
		if err := snap.Err(name); err != nil {
			out = append(out, styles.SubTitleStyle.Render(title), components.ErrorBox(name, err), "")
			continue
		}
		f, ok := snap.Frame(name)
		if !ok {
			continue
		}
		out = append(out,
			styles.SubTitleStyle.Render(title),
			components.DescribeTable(*f),
			components.Caption(fmt.Sprintf("%s (%d rows)", name, f.Rows)),
		)
	}
	return out
}
