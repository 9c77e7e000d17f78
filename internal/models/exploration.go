// Package models defines data structures and domain types.
package models

import "time"

// ColumnSummary mirrors pandas describe() for one numeric column.
type ColumnSummary struct {
	Name   string  `json:"name"`
	Count  int64   `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q25    float64 `json:"q25"`
	Median float64 `json:"median"`
	Q75    float64 `json:"q75"`
	Max    float64 `json:"max"`
}

// DescribeRows are the row labels of a describe() table, in order.
var DescribeRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Stat returns the value for a describe() row label.
func (c ColumnSummary) Stat(row string) (float64, bool) {
	switch row {
	case "count":
		return float64(c.Count), true
	case "mean":
		return c.Mean, true
	case "std":
		return c.Std, true
	case "min":
		return c.Min, true
	case "25%":
		return c.Q25, true
	case "50%":
		return c.Median, true
	case "75%":
		return c.Q75, true
	case "max":
		return c.Max, true
	}
	return 0, false
}

// FrameSummary describes every numeric column of one data file.
type FrameSummary struct {
	Source  string          `json:"source"`
	Rows    int64           `json:"rows"`
	Columns []ColumnSummary `json:"columns"`
}

// Column returns the summary for name.
func (f FrameSummary) Column(name string) (ColumnSummary, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSummary{}, false
}

// GenreShare is the proportion of movies tagged with one genre.
type GenreShare struct {
	Genre  string  `json:"genre"`
	Movies int64   `json:"movies"`
	Share  float64 `json:"share"`
}

// TableSample holds the first rows of a file as text.
type TableSample struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// MovieOverview bundles what the exploration page shows about movies.csv.
type MovieOverview struct {
	Sample TableSample  `json:"sample"`
	Genres []GenreShare `json:"genres"`
	Movies int64        `json:"movies"`
}

// ReloadEvent records one load of the artifact directory.
type ReloadEvent struct {
	ID        int64
	Timestamp time.Time
	Dir       string
	Reason    string
	Loaded    int
	Failed    int
	Errors    string
}
