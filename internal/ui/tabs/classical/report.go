package classical

import (
	"fmt"
	"slices"

	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
)

// cvPrefix is prepended to every model id in the cross-validation results.
const cvPrefix = "cv_"

// Metrics are the error metrics a chart can be switched between.
var Metrics = artifacts.DefaultMetricNames

// Sorting selects the model order of the time chart.
type Sorting int

// Time chart orderings.
const (
	SortLikeMetric Sorting = iota
	SortFitTime
	SortTestTime
	sortingCount
)

// Next returns the ordering after s, wrapping around.
func (s Sorting) Next() Sorting {
	return (s + 1) % sortingCount
}

// Metric returns the cross-validation column the ordering ranks by. metric
// is the one selected for the tuning chart.
func (s Sorting) Metric(metric string) string {
	switch s {
	case SortFitTime:
		return "fit_time"
	case SortTestTime:
		return "test_time"
	default:
		return "test_" + metric
	}
}

// Report holds the Surprise evaluation results of one artifact bundle,
// reshaped for charting. Each artifact fails on its own.
type Report struct {
	Default evaluation.Scalars
	CV      evaluation.Aggregates
	Cutoffs evaluation.CutoffAggregates

	errors map[string]error
}

// NewReport reshapes the artifacts of b. A nil bundle reports every artifact
// as not found.
func NewReport(b *artifacts.Bundle) *Report {
	r := &Report{errors: make(map[string]error)}

	if err := b.Err(artifacts.StemDefaultMetrics); err != nil {
		r.errors[artifacts.StemDefaultMetrics] = err
	} else if r.Default, err = evaluation.NormalizeScalars(b.DefaultMetrics); err != nil {
		r.errors[artifacts.StemDefaultMetrics] = err
	}

	if err := b.Err(artifacts.StemCVResults); err != nil {
		r.errors[artifacts.StemCVResults] = err
	} else if r.CV, err = evaluation.FlattenAggregate(b.CVResults, evaluation.WithPrefix(cvPrefix)); err != nil {
		r.errors[artifacts.StemCVResults] = err
	}

	if err := b.Err(artifacts.StemCutoffs); err != nil {
		r.errors[artifacts.StemCutoffs] = err
	} else if r.Cutoffs, err = evaluation.ReshapeCutoffs(b.Cutoffs); err != nil {
		r.errors[artifacts.StemCutoffs] = err
	}

	return r
}

// Err returns why the artifact stem cannot be charted, if it cannot.
func (r *Report) Err(stem string) error {
	return r.errors[stem]
}

// DefaultSeries returns mae, mse and rmse of the models trained with default
// parameters, ordered by ascending mae.
func (r *Report) DefaultSeries() ([]evaluation.BarSeries, error) {
	if err := r.Err(artifacts.StemDefaultMetrics); err != nil {
		return nil, err
	}
	order, err := evaluation.Rank(r.Default.Aggregates(), Metrics[0], false)
	if err != nil {
		return nil, err
	}

	series := make([]evaluation.BarSeries, 0, len(Metrics))
	for _, metric := range Metrics {
		s, err := evaluation.SeriesFromScalars(metric, r.Default, metric, order)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}

// CVSeries compares metric before tuning with its cross-validated mean after
// tuning. Models are ordered by the tuned test mean when available.
func (r *Report) CVSeries(metric string, tuned bool) ([]evaluation.BarSeries, error) {
	if err := r.Err(artifacts.StemDefaultMetrics); err != nil {
		return nil, err
	}
	if tuned {
		if err := r.Err(artifacts.StemCVResults); err != nil {
			return nil, err
		}
	}

	order, err := r.cvOrder(metric)
	if err != nil {
		return nil, err
	}

	before, err := evaluation.SeriesFromScalars(metric+" before optimization", r.Default, metric, order)
	if err != nil {
		return nil, err
	}
	series := []evaluation.BarSeries{before}
	if !tuned {
		return series, nil
	}

	name := fmt.Sprintf("average %s after optimization (cv=5)", metric)
	after, err := evaluation.SeriesFromAggregates(name, r.CV, "test_"+metric, order, true)
	if err != nil {
		return nil, err
	}
	return append(series, after), nil
}

func (r *Report) cvOrder(metric string) ([]string, error) {
	if r.Err(artifacts.StemCVResults) == nil {
		if order, err := evaluation.Rank(r.CV, "test_"+metric, false); err == nil {
			return order, nil
		}
	}
	return evaluation.Rank(r.Default.Aggregates(), metric, false)
}

// TimeSeries returns the average test and fit times of the tuned models.
func (r *Report) TimeSeries(metric string, sorting Sorting) ([]evaluation.BarSeries, error) {
	if err := r.Err(artifacts.StemCVResults); err != nil {
		return nil, err
	}
	order, err := evaluation.Rank(r.CV, sorting.Metric(metric), false)
	if err != nil {
		return nil, err
	}

	testTime, err := evaluation.SeriesFromAggregates("test time", r.CV, "test_time", order, true)
	if err != nil {
		return nil, err
	}
	fitTime, err := evaluation.SeriesFromAggregates("fit time", r.CV, "fit_time", order, true)
	if err != nil {
		return nil, err
	}
	return []evaluation.BarSeries{testTime, fitTime}, nil
}

// CutoffSeries returns one series per k, restricted to ks when any of them
// are available. Models are ordered by descending mean at the smallest k.
func (r *Report) CutoffSeries(kind evaluation.Kind, ks []int) ([]evaluation.BarSeries, error) {
	if err := r.Err(artifacts.StemCutoffs); err != nil {
		return nil, err
	}

	available := r.Cutoffs.Cutoffs(kind)
	if len(available) == 0 {
		return nil, fmt.Errorf("%s@k: %w", kind, evaluation.ErrEmptyInput)
	}
	var shown []int
	for _, k := range available {
		if slices.Contains(ks, k) {
			shown = append(shown, k)
		}
	}
	if len(shown) == 0 {
		shown = available
	}

	first, _ := r.Cutoffs.At(kind, shown[0])
	order, err := evaluation.Rank(first, evaluation.CutoffMetric(kind, shown[0]), true)
	if err != nil {
		return nil, err
	}

	series := make([]evaluation.BarSeries, 0, len(shown))
	for _, k := range shown {
		agg, _ := r.Cutoffs.At(kind, k)
		s, err := evaluation.SeriesFromAggregates(fmt.Sprintf("k = %d", k), agg, evaluation.CutoffMetric(kind, k), order, true)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	return series, nil
}
