package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/lifeos/internal/core"
)

type NotesRepo struct {
	db *sql.DB
}

func NewNotesRepo(db *sql.DB) *NotesRepo {
	return &NotesRepo{db: db}
}

func (r *NotesRepo) Add(ctx context.Context, note *core.Note) error {
	source := note.Source
	if source == "" {
		source = core.NoteSourceVoice
	}

	query := `INSERT INTO notes (content, source, created_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, note.Content, source, note.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	note.Source = source
	note.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	return nil
}

func (r *NotesRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM notes`)
}

func (r *NotesRepo) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM notes WHERE created_at >= ? AND created_at <= ?`,
		from.UnixNano(), to.UnixNano())
}

func (r *NotesRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("failed to delete notes: %w", err)
	}
	return nil
}

func (r *NotesRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return count, nil
}
