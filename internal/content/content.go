// Package content holds the prose and fixed tables of the dashboard pages.
package content

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed pages.yaml
var pagesYAML []byte

// Page keys.
const (
	PageIntro         = "intro"
	PageExploration   = "exploration"
	PagePreprocessing = "preprocessing"
	PageClassical     = "classical"
	PageAdvanced      = "advanced"
	PageResults       = "results"
	PageAbout         = "about"
)

// Table keys.
const (
	TableMovieLens      = "movielens"
	TableTagsPerUser    = "tags_per_user"
	TableResultsDefault = "results_default"
	TableResultsTuned   = "results_tuned"
	TableResultsFinal   = "results_final"
)

// Page is the text of one dashboard page, split into named sections of
// markdown.
type Page struct {
	Title    string            `yaml:"title"`
	Sections map[string]string `yaml:"sections"`
}

// Section returns the markdown of a section, or "" when it does not exist.
func (p Page) Section(name string) string {
	return p.Sections[name]
}

// Table is a fixed table of preformatted cells.
type Table struct {
	Title     string     `yaml:"title"`
	Columns   []string   `yaml:"columns"`
	Rows      [][]string `yaml:"rows"`
	Highlight []string   `yaml:"highlight"`
}

// Highlighted reports whether the row with the given label is emphasized.
func (t Table) Highlighted(label string) bool {
	return slices.Contains(t.Highlight, label)
}

// Content is the parsed page document.
type Content struct {
	Pages     map[string]Page     `yaml:"pages"`
	Tables    map[string]Table    `yaml:"tables"`
	Learnings map[string][]string `yaml:"learnings"`
}

// Page returns the page for key.
func (c *Content) Page(key string) Page {
	return c.Pages[key]
}

// Table returns the table for key.
func (c *Content) Table(key string) (Table, bool) {
	t, ok := c.Tables[key]
	return t, ok
}

// LearningsFor returns the learnings box of a page.
func (c *Content) LearningsFor(key string) []string {
	return c.Learnings[key]
}

// Load parses the embedded page document.
func Load() (*Content, error) {
	return Parse(pagesYAML)
}

// Parse decodes a page document and checks that tables are rectangular.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse pages: %w", err)
	}
	for key, t := range c.Tables {
		for i, row := range t.Rows {
			if len(row) != len(t.Columns) {
				return nil, fmt.Errorf("table %s row %d has %d cells, want %d", key, i, len(row), len(t.Columns))
			}
		}
	}
	return &c, nil
}
