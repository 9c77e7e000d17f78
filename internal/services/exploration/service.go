// Package exploration computes the data summaries shown on the exploration
// page and caches them per source file.
package exploration

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/movierec-dashboard-tui/internal/db"
	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
)

// Source names, also used as cache kinds.
const (
	SourceMovies    = "movies"
	SourceRatingSum = "user_rating_sum"
	SourceRatingAvg = "user_rating_avg"
)

// SampleRows is the size of the movies.csv preview.
const SampleRows = 5

// Frames lists the parquet frames that get a describe() table, in page order.
var Frames = []string{SourceRatingSum, SourceRatingAvg}

// ErrUnavailable is returned when no query engine is configured.
var ErrUnavailable = errors.New("query engine unavailable")

// ErrSourceMissing is returned when a data file cannot be found.
var ErrSourceMissing = errors.New("data file not found")

// Engine runs the analytical queries.
type Engine interface {
	MovieOverview(ctx context.Context, path string, sampleRows int) (models.MovieOverview, error)
	Describe(ctx context.Context, path string) (models.FrameSummary, error)
}

// Cache stores computed summaries keyed by source file version.
type Cache interface {
	GetSummary(key db.SourceKey, v any) (bool, error)
	PutSummary(key db.SourceKey, v any) error
}

// Snapshot is one computation of the exploration page data. Each source
// fails on its own.
type Snapshot struct {
	Movies *models.MovieOverview
	Frames map[string]*models.FrameSummary
	Errors map[string]error
	// Cached lists the sources served from the cache.
	Cached []string
}

// Err returns the error for a source, if any.
func (s *Snapshot) Err(source string) error {
	if s == nil {
		return ErrUnavailable
	}
	return s.Errors[source]
}

// Frame returns the summary of a parquet frame.
func (s *Snapshot) Frame(name string) (*models.FrameSummary, bool) {
	if s == nil {
		return nil, false
	}
	f, ok := s.Frames[name]
	return f, ok && f != nil
}

// Service computes snapshots.
type Service struct {
	engine        Engine
	cache         Cache
	movieLensDir  string
	dataFramesDir string
}

// New creates the service. engine and cache may be nil; without an engine
// every source reports ErrUnavailable, without a cache nothing is reused.
func New(engine Engine, cache Cache, movieLensDir, dataFramesDir string) *Service {
	return &Service{
		engine:        engine,
		cache:         cache,
		movieLensDir:  movieLensDir,
		dataFramesDir: dataFramesDir,
	}
}

// MoviesPath returns the location of movies.csv.
func (s *Service) MoviesPath() string {
	return filepath.Join(s.movieLensDir, "movies.csv")
}

// FramePath finds the parquet file for a frame. The notebooks wrote
// compressed frames under varying extensions, so anything starting with
// "<name>.parquet" matches.
func (s *Service) FramePath(name string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataFramesDir, name+".parquet*"))
	if err != nil {
		return "", fmt.Errorf("failed to search %s: %w", name, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s in %s: %w", name, s.dataFramesDir, ErrSourceMissing)
	}
	slices.Sort(matches)
	return matches[0], nil
}

// Load computes every source concurrently.
func (s *Service) Load(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		Frames: make(map[string]*models.FrameSummary),
		Errors: make(map[string]error),
	}

	var mu sync.Mutex
	done := func(source string, cached bool, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			snap.Errors[source] = err
			logger.Warn("exploration source failed", "source", source, "error", err)
			return
		}
		if cached {
			snap.Cached = append(snap.Cached, source)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var overview models.MovieOverview
		cached, err := s.compute(SourceMovies, s.MoviesPath(), &overview, func(path string) error {
			var err error
			overview, err = s.engine.MovieOverview(ctx, path, SampleRows)
			return err
		})
		if err == nil {
			mu.Lock()
			snap.Movies = &overview
			mu.Unlock()
		}
		done(SourceMovies, cached, err)
		return nil
	})

	for _, name := range Frames {
		g.Go(func() error {
			path, err := s.FramePath(name)
			if err != nil {
				done(name, false, err)
				return nil
			}
			var summary models.FrameSummary
			cached, err := s.compute(name, path, &summary, func(path string) error {
				var err error
				summary, err = s.engine.Describe(ctx, path)
				return err
			})
			if err == nil {
				mu.Lock()
				snap.Frames[name] = &summary
				mu.Unlock()
			}
			done(name, cached, err)
			return nil
		})
	}
	// Workers always return nil; per-source errors go through done.
	_ = g.Wait()

	slices.Sort(snap.Cached)
	return snap
}

// compute fills v from the cache or by running fn, storing fresh results.
func (s *Service) compute(kind, path string, v any, fn func(path string) error) (bool, error) {
	if s.engine == nil {
		return false, ErrUnavailable
	}

	key, err := db.KeyFor(kind, path)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrSourceMissing, err)
	}

	if s.cache != nil {
		hit, err := s.cache.GetSummary(key, v)
		if err != nil {
			logger.Warn("summary cache read failed", "kind", kind, "error", err)
		} else if hit {
			return true, nil
		}
	}

	if err := fn(path); err != nil {
		return false, fmt.Errorf("failed to summarize %s: %w", path, err)
	}

	if s.cache != nil {
		if err := s.cache.PutSummary(key, v); err != nil {
			logger.Warn("summary cache write failed", "kind", kind, "error", err)
		}
	}
	return false, nil
}
