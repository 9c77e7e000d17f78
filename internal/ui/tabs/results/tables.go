package results

import (
	"github.com/j-veylop/movierec-dashboard-tui/internal/artifacts"
	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
)

// TunedColumns are shown when the cross-validation results carry them.
var TunedColumns = []string{"test_mae", "test_rmse", "fit_time", "test_time"}

// DefaultTable lays out the default-parameter metrics, best mae first.
func DefaultTable(b *artifacts.Bundle) (evaluation.Table, error) {
	if err := b.Err(artifacts.StemDefaultMetrics); err != nil {
		return evaluation.Table{}, err
	}
	scalars, err := evaluation.NormalizeScalars(b.DefaultMetrics)
	if err != nil {
		return evaluation.Table{}, err
	}
	order, err := evaluation.Rank(scalars.Aggregates(), "mae", false)
	if err != nil {
		return evaluation.Table{}, err
	}
	return evaluation.ScalarTable(scalars, artifacts.DefaultMetricNames, order)
}

// TunedTable lays out the cross-validated metrics as mean ± std, best test
// mae first.
func TunedTable(b *artifacts.Bundle) (evaluation.Table, error) {
	if err := b.Err(artifacts.StemCVResults); err != nil {
		return evaluation.Table{}, err
	}
	agg, err := evaluation.FlattenAggregate(b.CVResults, evaluation.WithPrefix("cv_"))
	if err != nil {
		return evaluation.Table{}, err
	}
	order, err := evaluation.Rank(agg, "test_mae", false)
	if err != nil {
		return evaluation.Table{}, err
	}

	var columns []string
	for _, c := range TunedColumns {
		if agg.HasMetric(c) {
			columns = append(columns, c)
		}
	}
	return evaluation.AggregateTable(agg, columns, order)
}
