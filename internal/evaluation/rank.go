package evaluation

import (
	"cmp"
	"fmt"
	"slices"
)

// Rank orders model ids by the mean of metric. Ascending ties are broken by
// model id; descending is the exact reverse of ascending.
func Rank(agg Aggregates, metric string, descending bool) ([]string, error) {
	if len(agg) == 0 {
		return nil, fmt.Errorf("rank: %w", ErrEmptyInput)
	}

	type entry struct {
		id   string
		mean float64
	}
	entries := make([]entry, 0, len(agg))
	for id, metrics := range agg {
		m, ok := metrics[metric]
		if !ok {
			return nil, fmt.Errorf("rank: model %q has no %q: %w", id, metric, ErrUnknownMetric)
		}
		entries = append(entries, entry{id: id, mean: m.Mean})
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.mean, b.mean); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	order := make([]string, len(entries))
	for i, e := range entries {
		order[i] = e.id
	}
	if descending {
		slices.Reverse(order)
	}
	return order, nil
}
