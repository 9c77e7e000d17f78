package evaluation

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind distinguishes precision@k from recall@k results.
type Kind string

// Cutoff result kinds.
const (
	KindPrecision Kind = "precision"
	KindRecall    Kind = "recall"
)

// DefaultCutoffs are the k values the evaluation notebooks computed.
var DefaultCutoffs = []int{3, 5, 10, 20}

// labelSuffix closes every stored precision/recall label.
const labelSuffix = "_dict"

// labelPrefixes are checked in order; plural forms come first.
var labelPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"precisions_", KindPrecision},
	{"precision_", KindPrecision},
	{"recalls_", KindRecall},
	{"recall_", KindRecall},
}

// CutoffResults holds per-fold samples keyed by compound label, then k.
// Keys of the inner map are decimal integers as stored on disk.
type CutoffResults map[string]map[string][]float64

// CutoffAggregates maps kind to k to per-model summaries.
type CutoffAggregates map[Kind]map[int]Aggregates

// Cutoffs returns the k values available for kind in ascending order.
func (c CutoffAggregates) Cutoffs(kind Kind) []int {
	return slices.Sorted(maps.Keys(c[kind]))
}

// At returns the summaries for (kind, k).
func (c CutoffAggregates) At(kind Kind, k int) (Aggregates, bool) {
	agg, ok := c[kind][k]
	return agg, ok
}

// CutoffMetric names the metric column for kind at k, e.g. "precision@5".
func CutoffMetric(kind Kind, k int) string {
	return string(kind) + "@" + strconv.Itoa(k)
}

// ParseLabel splits a label such as "precisions_SVD_dict" into its kind and
// raw model id. The id is not renamed.
func ParseLabel(label string) (Kind, string, error) {
	for _, p := range labelPrefixes {
		rest, ok := strings.CutPrefix(label, p.prefix)
		if !ok {
			continue
		}
		rest = strings.TrimSuffix(rest, labelSuffix)
		if rest == "" {
			return "", "", fmt.Errorf("label %q has no model id: %w", label, ErrMalformedInput)
		}
		return p.kind, rest, nil
	}
	return "", "", fmt.Errorf("label %q has no precision/recall prefix: %w", label, ErrMalformedInput)
}

// ParseCutoff parses a stored k value. Only positive integers are accepted.
func ParseCutoff(s string) (int, error) {
	k, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || k <= 0 {
		return 0, fmt.Errorf("cutoff %q is not a positive integer: %w", s, ErrMalformedInput)
	}
	return k, nil
}

// ReshapeCutoffs groups results by kind, then aggregates each k separately.
// Metric names in the result are CutoffMetric(kind, k).
func ReshapeCutoffs(in CutoffResults, opts ...FlattenOption) (CutoffAggregates, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("reshape cutoffs: %w", ErrEmptyInput)
	}

	grouped := make(map[Kind]map[int]FoldResults)
	for _, label := range slices.Sorted(maps.Keys(in)) {
		kind, id, err := ParseLabel(label)
		if err != nil {
			return nil, fmt.Errorf("reshape cutoffs: %w", err)
		}
		byK, ok := grouped[kind]
		if !ok {
			byK = make(map[int]FoldResults)
			grouped[kind] = byK
		}
		for raw, samples := range in[label] {
			k, err := ParseCutoff(raw)
			if err != nil {
				return nil, fmt.Errorf("reshape cutoffs: label %q: %w", label, err)
			}
			fr, ok := byK[k]
			if !ok {
				fr = make(FoldResults)
				byK[k] = fr
			}
			if _, dup := fr[id]; dup {
				return nil, fmt.Errorf("reshape cutoffs: %s@%d for %q given twice: %w", kind, k, id, ErrMalformedInput)
			}
			fr[id] = map[string][]float64{CutoffMetric(kind, k): samples}
		}
	}

	out := make(CutoffAggregates, len(grouped))
	for kind, byK := range grouped {
		out[kind] = make(map[int]Aggregates, len(byK))
		for k, fr := range byK {
			agg, err := FlattenAggregate(fr, opts...)
			if err != nil {
				return nil, fmt.Errorf("reshape cutoffs: %s@%d: %w", kind, k, err)
			}
			out[kind][k] = agg
		}
	}
	return out, nil
}
