package evaluation

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// AggregatedMetric summarizes one metric of one model across folds.
type AggregatedMetric struct {
	Mean    float64
	Std     float64
	Samples int
}

// Aggregates maps model id to metric name to its summary.
type Aggregates map[string]map[string]AggregatedMetric

// Models returns the model ids in sorted order.
func (a Aggregates) Models() []string {
	return slices.Sorted(maps.Keys(a))
}

// Metrics returns the sorted union of metric names.
func (a Aggregates) Metrics() []string {
	set := make(map[string]struct{})
	for _, metrics := range a {
		for name := range metrics {
			set[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// HasMetric reports whether any model carries metric.
func (a Aggregates) HasMetric(metric string) bool {
	for _, metrics := range a {
		if _, ok := metrics[metric]; ok {
			return true
		}
	}
	return false
}

// Get returns the summary for (model, metric).
func (a Aggregates) Get(model, metric string) (AggregatedMetric, error) {
	metrics, ok := a[model]
	if !ok {
		return AggregatedMetric{}, fmt.Errorf("model %q not found: %w", model, ErrUnknownModel)
	}
	m, ok := metrics[metric]
	if !ok {
		return AggregatedMetric{}, fmt.Errorf("model %q has no %q: %w", model, metric, ErrUnknownMetric)
	}
	return m, nil
}

// Aggregate groups records by model id and computes the mean and sample
// standard deviation of each metric. A single sample has a Std of 0.
func Aggregate(table ModelMetricTable) (Aggregates, error) {
	if len(table.Records) == 0 {
		return nil, fmt.Errorf("aggregate: %w", ErrEmptyInput)
	}

	samples := make(map[string]map[string][]float64)
	for _, r := range table.Records {
		group, ok := samples[r.ModelID]
		if !ok {
			group = make(map[string][]float64)
			samples[r.ModelID] = group
		}
		for name, v := range r.Values {
			group[name] = append(group[name], v)
		}
	}

	out := make(Aggregates, len(samples))
	for model, group := range samples {
		metrics := make(map[string]AggregatedMetric, len(group))
		for name, values := range group {
			mean := Mean(values)
			metrics[name] = AggregatedMetric{
				Mean:    mean,
				Std:     SampleStdDev(values, mean),
				Samples: len(values),
			}
		}
		out[model] = metrics
	}
	return out, nil
}

// FlattenAggregate runs Flatten then Aggregate.
func FlattenAggregate(in FoldResults, opts ...FlattenOption) (Aggregates, error) {
	table, err := Flatten(in, opts...)
	if err != nil {
		return nil, err
	}
	return Aggregate(table)
}

// Mean computes the arithmetic mean. Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStdDev computes the standard deviation with Bessel's correction
// around mean. Returns 0 for fewer than 2 values.
func SampleStdDev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n-1))
}
