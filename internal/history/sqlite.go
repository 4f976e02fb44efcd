package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mbelyaev/ferry/internal/dbx"
	"github.com/mbelyaev/ferry/internal/history/migrations"
	"github.com/mbelyaev/ferry/internal/models"
)

// SQLiteRecorder stores history in a local SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

func NewSQLiteRecorder(db *sql.DB) *SQLiteRecorder {
	return &SQLiteRecorder{db: db}
}

// OpenSQLite opens (or creates) the history database at dsn and applies
// pending migrations.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return db, nil
}

// Add persists every outcome of the batch in one transaction.
func (r *SQLiteRecorder) Add(ctx context.Context, result models.BatchResult) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, o := range append(result.Succeeded, result.Failed...) {
			rec := fromOutcome(o)
			_, err := tx.ExecContext(ctx, `
				INSERT INTO uploads (task_id, name, url, mime_type, profile_id, source_path, size, ok, error, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.TaskID, rec.Name, rec.URL, rec.MimeType, rec.ProfileID,
				rec.SourcePath, rec.Size, rec.OK, rec.ErrMessage, rec.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert history record: %w", err)
			}
		}
		return nil
	})
}

// List returns the most recent records, newest first.
func (r *SQLiteRecorder) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, url, mime_type, profile_id, source_path, size, ok, error, created_at
		FROM uploads ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ClearFailed removes failure records and reports how many were deleted.
func (r *SQLiteRecorder) ClearFailed(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE ok = 0`)
	if err != nil {
		return 0, fmt.Errorf("clear failed history: %w", err)
	}
	return res.RowsAffected()
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.Name, &rec.URL, &rec.MimeType,
			&rec.ProfileID, &rec.SourcePath, &rec.Size, &rec.OK, &rec.ErrMessage, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
