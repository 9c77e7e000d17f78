package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/j-veylop/movierec-dashboard-tui/internal/logger"
	"github.com/j-veylop/movierec-dashboard-tui/internal/models"
)

// SourceKey identifies a cached summary. Size and ModTime pin the file
// version the summary was computed from.
type SourceKey struct {
	Kind    string
	Path    string
	Size    int64
	ModTime int64
}

// KeyFor stats path and builds its cache key.
func KeyFor(kind, path string) (SourceKey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SourceKey{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return SourceKey{
		Kind:    kind,
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}

// GetSummary decodes the cached payload for key into v. It reports false when
// nothing is cached or the file changed since.
func (db *DB) GetSummary(key SourceKey, v any) (bool, error) {
	query := `
		SELECT source_size, source_mtime, payload
		FROM summary_cache
		WHERE kind = ? AND source_path = ?
	`

	var size, mtime int64
	var payload string
	err := db.QueryRowContext(context.Background(), query, key.Kind, key.Path).Scan(&size, &mtime, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query summary cache: %w", err)
	}

	if size != key.Size || mtime != key.ModTime {
		logger.Debug("summary cache stale", "kind", key.Kind, "path", key.Path)
		return false, nil
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return false, fmt.Errorf("failed to decode cached %s summary: %w", key.Kind, err)
	}
	return true, nil
}

// PutSummary stores v as the summary for key, replacing older versions.
func (db *DB) PutSummary(key SourceKey, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s summary: %w", key.Kind, err)
	}

	query := `
		INSERT INTO summary_cache (kind, source_path, source_size, source_mtime, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, source_path) DO UPDATE SET
			source_size = excluded.source_size,
			source_mtime = excluded.source_mtime,
			payload = excluded.payload,
			created_at = excluded.created_at
	`
	_, err = db.ExecContext(context.Background(), query,
		key.Kind, key.Path, key.Size, key.ModTime, string(payload),
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	return nil
}

// PruneSummaries deletes cache rows created before the retention window.
func (db *DB) PruneSummaries(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format("2006-01-02 15:04:05")
	result, err := db.ExecContext(context.Background(),
		"DELETE FROM summary_cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune summary cache: %w", err)
	}
	return result.RowsAffected()
}

// InsertReload logs one artifact load.
func (db *DB) InsertReload(ev *models.ReloadEvent) error {
	query := `
		INSERT INTO artifact_loads (timestamp, dir, reason, loaded, failed, errors)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	timestamp := ev.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	reason := ev.Reason
	if reason == "" {
		reason = "startup"
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.UTC().Format("2006-01-02 15:04:05"),
		ev.Dir,
		reason,
		ev.Loaded,
		ev.Failed,
		nullString(ev.Errors),
	)
	if err != nil {
		return fmt.Errorf("failed to insert artifact load: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		ev.ID = id
	}
	return nil
}

// RecentReloads returns the latest artifact loads, newest first.
func (db *DB) RecentReloads(limit int) ([]models.ReloadEvent, error) {
	query := `
		SELECT id, timestamp, dir, reason, loaded, failed, errors
		FROM artifact_loads
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifact loads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []models.ReloadEvent
	for rows.Next() {
		var ev models.ReloadEvent
		var ts string
		var errs sql.NullString
		if err := rows.Scan(&ev.ID, &ts, &ev.Dir, &ev.Reason, &ev.Loaded, &ev.Failed, &errs); err != nil {
			return nil, fmt.Errorf("failed to scan artifact load: %w", err)
		}
		ev.Timestamp = parseTimestamp(ts)
		ev.Errors = errs.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
