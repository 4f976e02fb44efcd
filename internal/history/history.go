// Package history persists settled batch results so past uploads can be
// listed (and their links recovered) later. Two backends exist: SQLite for
// the usual single-user setup and PostgreSQL for shared deployments.
package history

import (
	"context"
	"time"

	"github.com/mbelyaev/ferry/internal/models"
)

// Record is one stored upload outcome.
type Record struct {
	ID         int64
	TaskID     string
	Name       string
	URL        string
	MimeType   string
	ProfileID  string
	SourcePath string
	Size       int64
	OK         bool
	ErrMessage string
	CreatedAt  time.Time
}

// Recorder stores and retrieves upload history. Add is called exactly once
// per settled batch, with both partitions.
type Recorder interface {
	Add(ctx context.Context, result models.BatchResult) error
	List(ctx context.Context, limit int) ([]Record, error)
	ClearFailed(ctx context.Context) (int64, error)
}

func fromOutcome(o models.Outcome) Record {
	return Record{
		TaskID:     o.TaskID,
		Name:       o.Name,
		URL:        o.URL,
		MimeType:   o.MimeType,
		ProfileID:  o.ProfileID,
		SourcePath: o.SourcePath,
		Size:       o.Size,
		OK:         o.OK,
		ErrMessage: o.ErrMessage,
		CreatedAt:  o.Date,
	}
}
