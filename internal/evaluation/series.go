package evaluation

import (
	"fmt"
	"slices"
)

// BarPoint is one bar: a category label, its height and optional error bar.
type BarPoint struct {
	Label  string
	Value  float64
	Err    float64
	HasErr bool
}

// BarSeries is one named group of bars. Order lists the category labels in
// display order and always matches Points.
type BarSeries struct {
	Name   string
	Points []BarPoint
	Order  []string
}

// Point returns the bar for label.
func (s BarSeries) Point(label string) (BarPoint, bool) {
	for _, p := range s.Points {
		if p.Label == label {
			return p, true
		}
	}
	return BarPoint{}, false
}

// Max returns the largest value plus its error bar, or 0 for no points.
func (s BarSeries) Max() float64 {
	maxV := 0.0
	for _, p := range s.Points {
		v := p.Value
		if p.HasErr {
			v += p.Err
		}
		maxV = max(maxV, v)
	}
	return maxV
}

// SeriesFromAggregates builds a series of metric means. Error bars carry the
// standard deviation when withErr is set. Models lacking the metric are
// skipped; a nil order sorts labels by id.
func SeriesFromAggregates(name string, agg Aggregates, metric string, order []string, withErr bool) (BarSeries, error) {
	if len(agg) == 0 {
		return BarSeries{}, fmt.Errorf("series %q: %w", name, ErrEmptyInput)
	}
	if !agg.HasMetric(metric) {
		return BarSeries{}, fmt.Errorf("series %q: %q: %w", name, metric, ErrUnknownMetric)
	}

	s := BarSeries{Name: name}
	for _, id := range agg.Models() {
		m, ok := agg[id][metric]
		if !ok {
			continue
		}
		s.Points = append(s.Points, BarPoint{Label: id, Value: m.Mean, Err: m.Std, HasErr: withErr})
	}
	return OrderSeries(s, order), nil
}

// SeriesFromScalars builds a series without error bars.
func SeriesFromScalars(name string, s Scalars, metric string, order []string) (BarSeries, error) {
	return SeriesFromAggregates(name, s.Aggregates(), metric, order, false)
}

// OrderSeries returns a copy of s with points arranged by order. Labels
// missing from order follow in sorted order; unknown labels are ignored.
func OrderSeries(s BarSeries, order []string) BarSeries {
	byLabel := make(map[string]BarPoint, len(s.Points))
	labels := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		byLabel[p.Label] = p
		labels = append(labels, p.Label)
	}
	slices.Sort(labels)

	out := BarSeries{Name: s.Name, Order: completeOrder(order, labels)}
	out.Points = make([]BarPoint, len(out.Order))
	for i, label := range out.Order {
		out.Points[i] = byLabel[label]
	}
	return out
}
