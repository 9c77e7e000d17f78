package evaluation

import (
	"fmt"
	"maps"
	"slices"
)

// Scalars holds single-valued metrics keyed by model id, e.g. the results of
// models trained with default parameters.
type Scalars map[string]map[string]float64

// NormalizeScalars returns a copy of in with model ids normalized.
func NormalizeScalars(in map[string]map[string]float64, opts ...FlattenOption) (Scalars, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("scalars: %w", ErrEmptyInput)
	}
	cfg := newFlattenConfig(opts)
	out := make(Scalars, len(in))
	for raw, metrics := range in {
		id := normalizeID(raw, cfg)
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("scalars: model %q given twice: %w", id, ErrMalformedInput)
		}
		out[id] = maps.Clone(metrics)
	}
	return out, nil
}

// Aggregates views each scalar as a one-sample summary.
func (s Scalars) Aggregates() Aggregates {
	out := make(Aggregates, len(s))
	for id, metrics := range s {
		m := make(map[string]AggregatedMetric, len(metrics))
		for name, v := range metrics {
			m[name] = AggregatedMetric{Mean: v, Samples: 1}
		}
		out[id] = m
	}
	return out
}

// Cell is one table entry. Std is meaningful only when HasStd is set.
type Cell struct {
	Value   float64
	Std     float64
	HasStd  bool
	Present bool
}

// Format renders the cell with the given verb for numbers, e.g. "%.4f".
func (c Cell) Format(verb string) string {
	if !c.Present {
		return "-"
	}
	if c.HasStd {
		return fmt.Sprintf(verb+" ± "+verb, c.Value, c.Std)
	}
	return fmt.Sprintf(verb, c.Value)
}

// Table is a models by metrics grid ready for display.
type Table struct {
	Rows    []string
	Columns []string
	Cells   [][]Cell
}

// Cell returns the cell at (row, column).
func (t Table) Cell(row, column string) (Cell, bool) {
	r := slices.Index(t.Rows, row)
	c := slices.Index(t.Columns, column)
	if r < 0 || c < 0 {
		return Cell{}, false
	}
	return t.Cells[r][c], true
}

// AggregateTable lays out agg with rows in order and the given metric columns.
// A nil order sorts rows by id; nil metrics uses every metric.
func AggregateTable(agg Aggregates, metrics, order []string) (Table, error) {
	return buildTable(agg, metrics, order, true)
}

// ScalarTable lays out s like AggregateTable, without deviations.
func ScalarTable(s Scalars, metrics, order []string) (Table, error) {
	return buildTable(s.Aggregates(), metrics, order, false)
}

func buildTable(agg Aggregates, metrics, order []string, withStd bool) (Table, error) {
	if len(agg) == 0 {
		return Table{}, fmt.Errorf("table: %w", ErrEmptyInput)
	}
	if metrics == nil {
		metrics = agg.Metrics()
	}
	for _, m := range metrics {
		if !agg.HasMetric(m) {
			return Table{}, fmt.Errorf("table: %q: %w", m, ErrUnknownMetric)
		}
	}

	t := Table{
		Rows:    completeOrder(order, agg.Models()),
		Columns: slices.Clone(metrics),
	}
	t.Cells = make([][]Cell, len(t.Rows))
	for i, id := range t.Rows {
		row := make([]Cell, len(metrics))
		for j, name := range metrics {
			m, ok := agg[id][name]
			if !ok {
				continue
			}
			row[j] = Cell{Value: m.Mean, Std: m.Std, HasStd: withStd, Present: true}
		}
		t.Cells[i] = row
	}
	return t, nil
}

// completeOrder keeps the ids of order that exist in known, then appends the
// remaining known ids in sorted order.
func completeOrder(order, known []string) []string {
	present := make(map[string]bool, len(known))
	for _, id := range known {
		present[id] = true
	}
	out := make([]string, 0, len(known))
	for _, id := range order {
		if present[id] {
			out = append(out, id)
			delete(present, id)
		}
	}
	for _, id := range known {
		if present[id] {
			out = append(out, id)
		}
	}
	return out
}
