package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/lifeos/internal/core"
)

type FacesRepo struct {
	db *sql.DB
}

func NewFacesRepo(db *sql.DB) *FacesRepo {
	return &FacesRepo{db: db}
}

func (r *FacesRepo) Add(ctx context.Context, face *core.KnownFace) error {
	query := `INSERT INTO known_faces (name, image_path, created_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, face.Name, face.ImagePath, face.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert known face: %w", err)
	}

	face.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}
	return nil
}

func (r *FacesRepo) All(ctx context.Context) ([]core.KnownFace, error) {
	query := `SELECT id, name, image_path, created_at FROM known_faces ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query known faces: %w", err)
	}
	defer rows.Close()

	var faces []core.KnownFace
	for rows.Next() {
		var face core.KnownFace
		var createdAt int64
		if err := rows.Scan(&face.ID, &face.Name, &face.ImagePath, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan known face: %w", err)
		}
		face.CreatedAt = time.Unix(0, createdAt)
		faces = append(faces, face)
	}
	return faces, rows.Err()
}

func (r *FacesRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM known_faces`)
}

func (r *FacesRepo) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM known_faces WHERE created_at >= ? AND created_at <= ?`,
		from.UnixNano(), to.UnixNano())
}

func (r *FacesRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM known_faces`); err != nil {
		return fmt.Errorf("failed to delete known faces: %w", err)
	}
	return nil
}

func (r *FacesRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count known faces: %w", err)
	}
	return count, nil
}
