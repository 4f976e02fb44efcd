package models

import "time"

// Outcome is the settled result of one task. Every task yields exactly one
// Outcome, assigned once. OK discriminates the two records: a success carries
// URL, a failure carries ErrMessage; the identity fields are shared.
type Outcome struct {
	TaskID     string    `json:"task_id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mime_type"`
	ProfileID  string    `json:"profile_id"`
	SourcePath string    `json:"source_path,omitempty"`
	Size       int64     `json:"size"`
	Date       time.Time `json:"date"`

	OK         bool   `json:"ok"`
	URL        string `json:"url,omitempty"`
	ErrMessage string `json:"error,omitempty"`
}

// BatchResult is the aggregate of one submitted batch: every outcome appears
// in exactly one of the two partitions. Used once per batch, for history
// persistence and the aggregate notification.
type BatchResult struct {
	Succeeded []Outcome
	Failed    []Outcome
}

// Total returns the number of settled tasks in the batch.
func (r BatchResult) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}
