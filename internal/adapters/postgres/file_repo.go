package postgres

import (
	"context"
	"time"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// FileRepo implements ports.FileRepository with pgx.
type FileRepo struct {
	db *DB
}

// NewFileRepo creates a new FileRepo.
func NewFileRepo(db *DB) *FileRepo {
	return &FileRepo{db: db}
}

// IsImported reports whether the product file was already imported.
func (r *FileRepo) IsImported(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM product_files WHERE filename = $1)
	`, filename).Scan(&exists)
	return exists, err
}

// Record marks a product file as imported. Recording the same filename
// twice is a no-op.
func (r *FileRepo) Record(ctx context.Context, f *domain.ProductFile) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO product_files (filename, points, imported_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (filename) DO NOTHING
	`, f.Filename, f.Points, f.ImportedAt)
	return err
}

// Stats returns the file count and the most recent import time.
// lastImport is nil when no file has been imported yet.
func (r *FileRepo) Stats(ctx context.Context) (int64, *time.Time, error) {
	var files int64
	var last *time.Time
	err := r.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), MAX(imported_at) FROM product_files
	`).Scan(&files, &last)
	if err != nil {
		return 0, nil, err
	}
	return files, last, nil
}
