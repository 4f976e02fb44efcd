package history

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mbelyaev/ferry/internal/dbx"
	"github.com/mbelyaev/ferry/internal/history/migrations"
	"github.com/mbelyaev/ferry/internal/models"
)

// PostgresRecorder stores history in PostgreSQL, for setups where several
// machines share one history.
type PostgresRecorder struct {
	db *sql.DB
}

func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// OpenPostgres connects to the history database at dsn and applies pending
// migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	goose.SetBaseFS(migrations.Postgres)
	if err := goose.SetDialect("postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}

	return db, nil
}

func (r *PostgresRecorder) Add(ctx context.Context, result models.BatchResult) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, o := range append(result.Succeeded, result.Failed...) {
			rec := fromOutcome(o)
			_, err := tx.ExecContext(ctx, `
				INSERT INTO uploads (task_id, name, url, mime_type, profile_id, source_path, size, ok, error, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				rec.TaskID, rec.Name, rec.URL, rec.MimeType, rec.ProfileID,
				rec.SourcePath, rec.Size, rec.OK, rec.ErrMessage, rec.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert history record: %w", err)
			}
		}
		return nil
	})
}

func (r *PostgresRecorder) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, url, mime_type, profile_id, source_path, size, ok, error, created_at
		FROM uploads ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (r *PostgresRecorder) ClearFailed(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE ok = FALSE`)
	if err != nil {
		return 0, fmt.Errorf("clear failed history: %w", err)
	}
	return res.RowsAffected()
}
