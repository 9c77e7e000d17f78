// Package warehouse runs analytical queries over parquet and CSV files with
// an in-memory DuckDB instance.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	// Import duckdb-go as a blank import to register the driver
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
)

// NoGenreLabel replaces the "(no genres listed)" marker of movies.csv.
const NoGenreLabel = "no_genre_listed"

const noGenresMarker = "(no genres listed)"

// ErrNoNumericColumns is returned by Describe for files without numbers.
var ErrNoNumericColumns = errors.New("no numeric columns")

// Warehouse wraps an in-memory DuckDB connection.
type Warehouse struct {
	db *sql.DB
}

// Open starts an in-memory DuckDB database.
func Open() (*Warehouse, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err := conn.PingContext(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to duckdb: %w", err)
	}
	return &Warehouse{db: conn}, nil
}

// Close releases the DuckDB instance.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// DB exposes the underlying connection.
func (w *Warehouse) DB() *sql.DB {
	return w.db
}

// source returns the table function reading path. Parquet is detected by a
// ".parquet" segment anywhere in the name so "x.parquet.gzip" still works.
func source(path string) string {
	lit := quoteLiteral(path)
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, ".parquet"):
		return "read_parquet(" + lit + ")"
	case strings.HasSuffix(name, ".tsv"), strings.HasSuffix(name, ".tsv.gz"):
		return "read_csv_auto(" + lit + ", delim='\\t')"
	default:
		return "read_csv_auto(" + lit + ")"
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

type column struct {
	name     string
	typeName string
}

func isNumeric(typeName string) bool {
	t := strings.ToUpper(typeName)
	switch {
	case strings.HasPrefix(t, "DECIMAL"):
		return true
	case strings.HasSuffix(t, "INT"), strings.HasSuffix(t, "INTEGER"):
		return true
	case t == "FLOAT", t == "DOUBLE", t == "REAL":
		return true
	}
	return false
}

// columns lists the columns of path with their DuckDB type names.
func (w *Warehouse) columns(ctx context.Context, path string) ([]column, error) {
	rows, err := w.db.QueryContext(ctx, "SELECT * FROM "+source(path)+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}
	cols := make([]column, len(types))
	for i, ct := range types {
		cols[i] = column{name: ct.Name(), typeName: ct.DatabaseTypeName()}
	}
	return cols, rows.Err()
}

// Describe computes pandas-style describe() statistics for every numeric
// column of path. Quantiles use linear interpolation.
func (w *Warehouse) Describe(ctx context.Context, path string) (models.FrameSummary, error) {
	cols, err := w.columns(ctx, path)
	if err != nil {
		return models.FrameSummary{}, err
	}

	var numeric []string
	var exprs []string
	for _, c := range cols {
		if !isNumeric(c.typeName) {
			continue
		}
		id := quoteIdent(c.name)
		numeric = append(numeric, c.name)
		exprs = append(exprs,
			"count("+id+")",
			"CAST(avg("+id+") AS DOUBLE)",
			"CAST(stddev_samp("+id+") AS DOUBLE)",
			"CAST(min("+id+") AS DOUBLE)",
			"CAST(quantile_cont("+id+", 0.25) AS DOUBLE)",
			"CAST(quantile_cont("+id+", 0.5) AS DOUBLE)",
			"CAST(quantile_cont("+id+", 0.75) AS DOUBLE)",
			"CAST(max("+id+") AS DOUBLE)",
		)
	}
	if len(numeric) == 0 {
		return models.FrameSummary{}, fmt.Errorf("describe %s: %w", filepath.Base(path), ErrNoNumericColumns)
	}

	query := "SELECT count(*), " + strings.Join(exprs, ", ") + " FROM " + source(path)
	logger.Debug("describe query", "path", path, "columns", len(numeric))

	var total int64
	counts := make([]int64, len(numeric))
	stats := make([][7]sql.NullFloat64, len(numeric))
	dest := []any{&total}
	for i := range numeric {
		dest = append(dest, &counts[i])
		for j := range stats[i] {
			dest = append(dest, &stats[i][j])
		}
	}
	if err := w.db.QueryRowContext(ctx, query).Scan(dest...); err != nil {
		return models.FrameSummary{}, fmt.Errorf("describe %s: %w", filepath.Base(path), err)
	}

	summary := models.FrameSummary{Source: path, Rows: total}
	for i, name := range numeric {
		s := stats[i]
		summary.Columns = append(summary.Columns, models.ColumnSummary{
			Name:   name,
			Count:  counts[i],
			Mean:   s[0].Float64,
			Std:    s[1].Float64,
			Min:    s[2].Float64,
			Q25:    s[3].Float64,
			Median: s[4].Float64,
			Q75:    s[5].Float64,
			Max:    s[6].Float64,
		})
	}
	return summary, nil
}

// Sample returns the first n rows of path rendered as text.
func (w *Warehouse) Sample(ctx context.Context, path string, n int) (models.TableSample, error) {
	rows, err := w.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", source(path), n))
	if err != nil {
		return models.TableSample{}, fmt.Errorf("failed to sample %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return models.TableSample{}, err
	}
	sample := models.TableSample{Columns: cols}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return models.TableSample{}, fmt.Errorf("failed to scan sample row: %w", err)
		}
		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		sample.Rows = append(sample.Rows, row)
	}
	return sample, rows.Err()
}

// GenreShares splits the pipe-separated genres column of a movies file and
// returns the share of movies carrying each genre, most common first.
func (w *Warehouse) GenreShares(ctx context.Context, path string) ([]models.GenreShare, int64, error) {
	src := source(path)

	var movies int64
	if err := w.db.QueryRowContext(ctx, "SELECT count(*) FROM "+src).Scan(&movies); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}
	if movies == 0 {
		return nil, 0, nil
	}

	query := `
		SELECT genre, count(DISTINCT rid) AS n
		FROM (
			SELECT rid, unnest(string_split(genres, '|')) AS genre
			FROM (SELECT row_number() OVER () AS rid, genres FROM ` + src + `)
		)
		WHERE genre <> ''
		GROUP BY genre
		ORDER BY n DESC, genre
	`
	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var shares []models.GenreShare
	for rows.Next() {
		var s models.GenreShare
		if err := rows.Scan(&s.Genre, &s.Movies); err != nil {
			return nil, 0, fmt.Errorf("failed to scan genre: %w", err)
		}
		if s.Genre == noGenresMarker {
			s.Genre = NoGenreLabel
		}
		s.Share = float64(s.Movies) / float64(movies)
		shares = append(shares, s)
	}
	return shares, movies, rows.Err()
}

// MovieOverview gathers the sample and genre shares of movies.csv.
func (w *Warehouse) MovieOverview(ctx context.Context, path string, sampleRows int) (models.MovieOverview, error) {
	sample, err := w.Sample(ctx, path, sampleRows)
	if err != nil {
		return models.MovieOverview{}, err
	}
	shares, movies, err := w.GenreShares(ctx, path)
	if err != nil {
		return models.MovieOverview{}, err
	}
	return models.MovieOverview{Sample: sample, Genres: shares, Movies: movies}, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NaN"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%g", x)
	case float32:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(x)
	}
}
