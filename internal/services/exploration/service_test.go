package exploration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/j-veylop/movierec-dashboard-tui/internal/db"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
)

type fakeEngine struct {
	mu       sync.Mutex
	calls    map[string]int
	describe error
}

func (f *fakeEngine) count(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[filepath.Base(path)]++
}

func (f *fakeEngine) MovieOverview(_ context.Context, path string, n int) (models.MovieOverview, error) {
	f.count(path)
	return models.MovieOverview{
		Sample: models.TableSample{Columns: []string{"movieId"}, Rows: [][]string{{"1"}}},
		Genres: []models.GenreShare{{Genre: "Drama", Movies: 1, Share: 1}},
		Movies: int64(n),
	}, nil
}

func (f *fakeEngine) Describe(_ context.Context, path string) (models.FrameSummary, error) {
	f.count(path)
	if f.describe != nil {
		return models.FrameSummary{}, f.describe
	}
	return models.FrameSummary{
		Source:  path,
		Rows:    3,
		Columns: []models.ColumnSummary{{Name: "rating", Count: 3, Mean: 3.5}},
	}, nil
}

func (f *fakeEngine) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func setupDirs(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	ml := filepath.Join(root, "ml-25m")
	frames := filepath.Join(root, "dataframes")
	for _, dir := range []string{ml, frames} {
		if err := os.MkdirAll(dir, 0750); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		filepath.Join(ml, "movies.csv"):                       "movieId\n1\n",
		filepath.Join(frames, "user_rating_sum.parquet.gizp"): "x",
		filepath.Join(frames, "user_rating_avg.parquet"):      "x",
		filepath.Join(frames, "unrelated_frame.parquet.gzip"): "x",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
	return ml, frames
}

func newCache(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("db.New() failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestFramePath(t *testing.T) {
	ml, frames := setupDirs(t)
	svc := New(nil, nil, ml, frames)

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{SourceRatingSum, "user_rating_sum.parquet.gizp", false},
		{SourceRatingAvg, "user_rating_avg.parquet", false},
		{"ratings", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FramePath(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrSourceMissing) {
					t.Errorf("FramePath() error = %v, want ErrSourceMissing", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FramePath() error = %v", err)
			}
			if filepath.Base(got) != tt.want {
				t.Errorf("FramePath() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLoad_NoEngine(t *testing.T) {
	ml, frames := setupDirs(t)
	snap := New(nil, nil, ml, frames).Load(context.Background())

	for _, source := range []string{SourceMovies, SourceRatingSum, SourceRatingAvg} {
		if !errors.Is(snap.Err(source), ErrUnavailable) {
			t.Errorf("Err(%s) = %v, want ErrUnavailable", source, snap.Err(source))
		}
	}
	if snap.Movies != nil {
		t.Error("Movies should be nil without an engine")
	}
}

func TestLoad_ComputesAndCaches(t *testing.T) {
	ml, frames := setupDirs(t)
	engine := &fakeEngine{}
	svc := New(engine, newCache(t), ml, frames)

	first := svc.Load(context.Background())
	if len(first.Errors) != 0 {
		t.Fatalf("Load() errors = %v", first.Errors)
	}
	if first.Movies == nil || first.Movies.Movies != SampleRows {
		t.Errorf("Movies = %+v", first.Movies)
	}
	for _, name := range Frames {
		f, ok := first.Frame(name)
		if !ok {
			t.Fatalf("Frame(%s) missing", name)
		}
		if c, ok := f.Column("rating"); !ok || c.Mean != 3.5 {
			t.Errorf("Frame(%s) rating = %+v", name, c)
		}
	}
	if len(first.Cached) != 0 {
		t.Errorf("first load Cached = %v, want none", first.Cached)
	}
	if engine.total() != 3 {
		t.Errorf("engine calls = %d, want 3", engine.total())
	}

	second := svc.Load(context.Background())
	if len(second.Cached) != 3 {
		t.Errorf("second load Cached = %v, want all sources", second.Cached)
	}
	if engine.total() != 3 {
		t.Errorf("engine called again on cache hit: %d calls", engine.total())
	}
	if second.Movies == nil || len(second.Movies.Genres) != 1 || second.Movies.Genres[0].Genre != "Drama" {
		t.Errorf("cached Movies = %+v", second.Movies)
	}
}

func TestLoad_ChangedFileInvalidatesCache(t *testing.T) {
	ml, frames := setupDirs(t)
	engine := &fakeEngine{}
	svc := New(engine, newCache(t), ml, frames)
	svc.Load(context.Background())

	if err := os.WriteFile(svc.MoviesPath(), []byte("movieId\n1\n2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	snap := svc.Load(context.Background())

	for _, c := range snap.Cached {
		if c == SourceMovies {
			t.Error("movies served from cache after the file changed")
		}
	}
	if engine.calls["movies.csv"] != 2 {
		t.Errorf("movies.csv computed %d times, want 2", engine.calls["movies.csv"])
	}
}

func TestLoad_PerSourceFailure(t *testing.T) {
	ml, frames := setupDirs(t)
	boom := errors.New("boom")
	svc := New(&fakeEngine{describe: boom}, nil, ml, frames)

	snap := svc.Load(context.Background())
	if snap.Movies == nil {
		t.Error("movies should load when frames fail")
	}
	for _, name := range Frames {
		if !errors.Is(snap.Err(name), boom) {
			t.Errorf("Err(%s) = %v, want boom", name, snap.Err(name))
		}
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	svc := New(&fakeEngine{}, nil, t.TempDir(), t.TempDir())
	snap := svc.Load(context.Background())

	for _, source := range []string{SourceMovies, SourceRatingSum, SourceRatingAvg} {
		if !errors.Is(snap.Err(source), ErrSourceMissing) {
			t.Errorf("Err(%s) = %v, want ErrSourceMissing", source, snap.Err(source))
		}
	}
}

func TestSnapshot_Nil(t *testing.T) {
	var snap *Snapshot
	if !errors.Is(snap.Err(SourceMovies), ErrUnavailable) {
		t.Error("nil snapshot should report ErrUnavailable")
	}
	if _, ok := snap.Frame(SourceRatingAvg); ok {
		t.Error("nil snapshot should have no frames")
	}
}
