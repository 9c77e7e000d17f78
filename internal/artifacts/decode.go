package artifacts

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
)

// LoadDefaultMetrics reads single-valued metrics per model. Values may be an
// object of metric to number or a positional [mae, mse, rmse] array.
func LoadDefaultMetrics(path string) (map[string]map[string]float64, error) {
	var raw map[string]metricValues
	if err := decodeFile(path, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]float64, len(raw))
	for model, values := range raw {
		out[model] = values
	}
	return out, nil
}

// LoadCVResults reads per-fold cross-validation results.
func LoadCVResults(path string) (evaluation.FoldResults, error) {
	var out evaluation.FoldResults
	if err := decodeFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadCutoffs reads precision@k and recall@k results keyed by label then k.
func LoadCutoffs(path string) (evaluation.CutoffResults, error) {
	var out evaluation.CutoffResults
	if err := decodeFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadHistory reads training curves.
func LoadHistory(path string) (History, error) {
	var out History
	if err := decodeFile(path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("decode %s: file is empty", filepath.Base(path))
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// metricValues accepts either {"mae": x, ...} or [mae, mse, rmse].
type metricValues map[string]float64

func (m *metricValues) fromList(list []float64) error {
	if len(list) > len(DefaultMetricNames) {
		return fmt.Errorf("expected at most %d positional metrics, got %d", len(DefaultMetricNames), len(list))
	}
	out := make(metricValues, len(list))
	for i, v := range list {
		out[DefaultMetricNames[i]] = v
	}
	*m = out
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *metricValues) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var list []float64
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		return m.fromList(list)
	}
	var obj map[string]float64
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = obj
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *metricValues) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var list []float64
		if err := node.Decode(&list); err != nil {
			return err
		}
		return m.fromList(list)
	}
	var obj map[string]float64
	if err := node.Decode(&obj); err != nil {
		return err
	}
	*m = obj
	return nil
}
