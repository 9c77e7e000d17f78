// Package artifacts reads the evaluation results written by the training
// notebooks. Each artifact is a JSON or YAML file identified by its stem.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/movierec-dashboard-tui/internal/evaluation"
)

// Artifact file stems.
const (
	StemDefaultMetrics = "surp_metrics_default_models"
	StemCVResults      = "surp_cv_results"
	StemCutoffs        = "surp_precision_at_k_recall_at_k"
	StemNCFHistory     = "ncf_history"
)

// Stems lists every artifact Load reads.
var Stems = []string{StemDefaultMetrics, StemCVResults, StemCutoffs, StemNCFHistory}

// Extensions are tried in order when looking up a stem.
var Extensions = []string{".json", ".yaml", ".yml"}

// DefaultMetricNames is the column order of positional default metrics.
var DefaultMetricNames = []string{"mae", "mse", "rmse"}

// ErrNotFound is returned when no file exists for a stem.
var ErrNotFound = errors.New("artifact not found")

// Bundle is one load of the artifact directory. Each artifact fails on its
// own; a missing file leaves its field nil and records the error.
type Bundle struct {
	Dir      string
	LoadedAt time.Time

	DefaultMetrics map[string]map[string]float64
	CVResults      evaluation.FoldResults
	Cutoffs        evaluation.CutoffResults
	History        History

	// Files maps stem to the file that was read.
	Files map[string]string
	// Errors maps stem to its load error.
	Errors map[string]error
}

// Err returns the load error of stem, if any.
func (b *Bundle) Err(stem string) error {
	if b == nil {
		return ErrNotFound
	}
	return b.Errors[stem]
}

// OK reports whether stem loaded.
func (b *Bundle) OK(stem string) bool {
	return b != nil && b.Errors[stem] == nil && b.Files[stem] != ""
}

// Loaded returns how many artifacts were read successfully.
func (b *Bundle) Loaded() int {
	n := 0
	for _, stem := range Stems {
		if b.OK(stem) {
			n++
		}
	}
	return n
}

// History holds per-epoch training curves, e.g. loss and val_loss.
type History map[string][]float64

// Series returns the named curve.
func (h History) Series(name string) ([]float64, bool) {
	s, ok := h[name]
	return s, ok && len(s) > 0
}

// Find returns the first file in dir named stem plus a known extension.
func Find(dir, stem string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, stem+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", stem, dir, ErrNotFound)
}

// IsArtifact reports whether path names an artifact file.
func IsArtifact(path string) bool {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for _, e := range Extensions {
		if ext != e {
			continue
		}
		for _, s := range Stems {
			if stem == s {
				return true
			}
		}
	}
	return false
}

// Load reads every artifact in dir concurrently.
func Load(ctx context.Context, dir string) *Bundle {
	b := &Bundle{
		Dir:      dir,
		LoadedAt: time.Now(),
		Files:    make(map[string]string),
		Errors:   make(map[string]error),
	}

	var mu sync.Mutex
	record := func(stem, path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if path != "" {
			b.Files[stem] = path
		}
		if err != nil {
			b.Errors[stem] = err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, stem := range Stems {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				record(stem, "", err)
				return nil
			}
			path, err := Find(dir, stem)
			if err != nil {
				record(stem, "", err)
				return nil
			}
			record(stem, path, b.decode(stem, path, &mu))
			return nil
		})
	}
	_ = g.Wait()

	return b
}

func (b *Bundle) decode(stem, path string, mu *sync.Mutex) error {
	switch stem {
	case StemDefaultMetrics:
		v, err := LoadDefaultMetrics(path)
		if err == nil {
			mu.Lock()
			b.DefaultMetrics = v
			mu.Unlock()
		}
		return err
	case StemCVResults:
		v, err := LoadCVResults(path)
		if err == nil {
			mu.Lock()
			b.CVResults = v
			mu.Unlock()
		}
		return err
	case StemCutoffs:
		v, err := LoadCutoffs(path)
		if err == nil {
			mu.Lock()
			b.Cutoffs = v
			mu.Unlock()
		}
		return err
	case StemNCFHistory:
		v, err := LoadHistory(path)
		if err == nil {
			mu.Lock()
			b.History = v
			mu.Unlock()
		}
		return err
	}
	return fmt.Errorf("unknown artifact %q", stem)
}
