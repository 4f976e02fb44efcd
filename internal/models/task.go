package models

import "time"

// UploadTask is the unit of work for one file within a batch. Tasks are built
// synchronously, in submission order, before any transfer starts; the Index
// assigned here is the only ordering sequential dispatch may depend on.
type UploadTask struct {
	ID        string
	Name      string // resolved display name, after the rename policy
	MimeType  string
	Size      int64
	Source    FileInput
	Index     int
	CreatedAt time.Time
}

// SourcePath returns the local path for path-backed tasks, or "" for
// buffer-backed ones.
func (t UploadTask) SourcePath() string {
	if p, ok := t.Source.(PathInput); ok {
		return p.Path
	}
	return ""
}
