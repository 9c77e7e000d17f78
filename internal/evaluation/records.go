package evaluation

import (
	"fmt"
	"maps"
	"slices"
)

// FoldResults holds per-fold samples keyed by model id, then metric name.
// All sequences of one model must have the same length.
type FoldResults map[string]map[string][]float64

// MetricRecord is the outcome of one model on one fold.
type MetricRecord struct {
	ModelID string
	Fold    int
	Values  map[string]float64
}

// Value returns the value recorded for metric.
func (r MetricRecord) Value(metric string) (float64, bool) {
	v, ok := r.Values[metric]
	return v, ok
}

// ModelMetricTable is the flattened form of FoldResults, ordered by model id
// then fold.
type ModelMetricTable struct {
	Records []MetricRecord
	// Metrics is the sorted union of metric names across all records.
	Metrics []string
}

// Len returns the number of records.
func (t ModelMetricTable) Len() int {
	return len(t.Records)
}

// Models returns the distinct model ids in table order.
func (t ModelMetricTable) Models() []string {
	var ids []string
	for _, r := range t.Records {
		if len(ids) == 0 || ids[len(ids)-1] != r.ModelID {
			ids = append(ids, r.ModelID)
		}
	}
	return ids
}

type flattenConfig struct {
	prefix string
	suffix string
	names  Names
}

// FlattenOption adjusts how model ids are normalized.
type FlattenOption func(*flattenConfig)

// WithPrefix strips prefix from model ids, e.g. "cv_".
func WithPrefix(prefix string) FlattenOption {
	return func(c *flattenConfig) { c.prefix = prefix }
}

// WithSuffix strips suffix from model ids, e.g. "_dict".
func WithSuffix(suffix string) FlattenOption {
	return func(c *flattenConfig) { c.suffix = suffix }
}

// WithNames replaces DefaultNames as the rename table.
func WithNames(names Names) FlattenOption {
	return func(c *flattenConfig) { c.names = names }
}

func newFlattenConfig(opts []FlattenOption) flattenConfig {
	cfg := flattenConfig{names: DefaultNames}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NormalizeID applies the same id cosmetics Flatten would.
func NormalizeID(id string, opts ...FlattenOption) string {
	return normalizeID(id, newFlattenConfig(opts))
}

// Flatten converts nested per-fold results into one record per (model, fold).
// Values at the same index across a model's metric sequences form one record.
func Flatten(in FoldResults, opts ...FlattenOption) (ModelMetricTable, error) {
	if len(in) == 0 {
		return ModelMetricTable{}, fmt.Errorf("flatten: %w", ErrEmptyInput)
	}
	cfg := newFlattenConfig(opts)

	metricSet := make(map[string]struct{})
	seen := make(map[string]string, len(in))
	var records []MetricRecord

	for _, raw := range slices.Sorted(maps.Keys(in)) {
		metrics := in[raw]
		if len(metrics) == 0 {
			return ModelMetricTable{}, fmt.Errorf("flatten: model %q has no metrics: %w", raw, ErrMalformedInput)
		}

		names := slices.Sorted(maps.Keys(metrics))
		folds := len(metrics[names[0]])
		for _, name := range names[1:] {
			if n := len(metrics[name]); n != folds {
				return ModelMetricTable{}, fmt.Errorf("flatten: model %q: %s has %d samples, %s has %d: %w",
					raw, names[0], folds, name, n, ErrMalformedInput)
			}
		}
		if folds == 0 {
			return ModelMetricTable{}, fmt.Errorf("flatten: model %q has no samples: %w", raw, ErrMalformedInput)
		}

		id := normalizeID(raw, cfg)
		if prev, dup := seen[id]; dup {
			return ModelMetricTable{}, fmt.Errorf("flatten: %q and %q both map to %q: %w", prev, raw, id, ErrMalformedInput)
		}
		seen[id] = raw
		for fold := range folds {
			values := make(map[string]float64, len(names))
			for _, name := range names {
				values[name] = metrics[name][fold]
				metricSet[name] = struct{}{}
			}
			records = append(records, MetricRecord{ModelID: id, Fold: fold, Values: values})
		}
	}

	slices.SortStableFunc(records, func(a, b MetricRecord) int {
		if a.ModelID != b.ModelID {
			if a.ModelID < b.ModelID {
				return -1
			}
			return 1
		}
		return a.Fold - b.Fold
	})

	return ModelMetricTable{
		Records: records,
		Metrics: slices.Sorted(maps.Keys(metricSet)),
	}, nil
}
