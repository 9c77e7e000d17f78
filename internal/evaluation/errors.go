// Package evaluation turns per-fold model evaluation results into the
// aggregated tables and bar series shown on the dashboard.
package evaluation

import "errors"

var (
	// ErrMalformedInput is returned when a model's metric sequences disagree
	// in length, when two model ids map to one display name, or when a label
	// or cutoff cannot be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrEmptyInput is returned when there is nothing to aggregate.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownMetric is returned when a requested metric is absent.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownModel is returned when a requested model is absent.
	ErrUnknownModel = errors.New("unknown model")
)
