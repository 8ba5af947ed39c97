package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/lifeos/internal/core"
)

type InputLogsRepo struct {
	db *sql.DB
}

func NewInputLogsRepo(db *sql.DB) *InputLogsRepo {
	return &InputLogsRepo{db: db}
}

func (r *InputLogsRepo) Add(ctx context.Context, entry *core.InputLog) error {
	meta := entry.Metadata
	if meta == nil {
		meta = core.Metadata{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `INSERT INTO input_logs (text, source, type, metadata, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		entry.Text, string(entry.Source), string(entry.Type), string(metaJSON), entry.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert input log: %w", err)
	}

	entry.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	return nil
}

func (r *InputLogsRepo) CountByTypeBetween(ctx context.Context, logType core.LogType, from, to time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM input_logs WHERE type = ? AND created_at >= ? AND created_at <= ?`
	if err := r.db.QueryRowContext(ctx, query, string(logType), from.UnixNano(), to.UnixNano()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count input logs: %w", err)
	}
	return count, nil
}

func (r *InputLogsRepo) CountByType(ctx context.Context, logType core.LogType) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM input_logs WHERE type = ?`
	if err := r.db.QueryRowContext(ctx, query, string(logType)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count input logs: %w", err)
	}
	return count, nil
}

func (r *InputLogsRepo) Recent(ctx context.Context, limit int) ([]core.InputLog, error) {
	query := `SELECT id, text, source, type, metadata, created_at FROM input_logs ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query input logs: %w", err)
	}
	defer rows.Close()

	var entries []core.InputLog
	for rows.Next() {
		var entry core.InputLog
		var source, logType string
		var metaStr sql.NullString
		var createdAt int64

		if err := rows.Scan(&entry.ID, &entry.Text, &source, &logType, &metaStr, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan input log: %w", err)
		}

		entry.Source = core.Source(source)
		entry.Type = core.LogType(logType)
		entry.CreatedAt = time.Unix(0, createdAt)
		entry.Metadata = core.Metadata{}
		if metaStr.Valid && metaStr.String != "" {
			if err := json.Unmarshal([]byte(metaStr.String), &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *InputLogsRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM input_logs`); err != nil {
		return fmt.Errorf("failed to delete input logs: %w", err)
	}
	return nil
}
