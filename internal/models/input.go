package models

import "path/filepath"

// FileInput is the source of one file in a batch. Exactly one concrete
// variant exists per input: a PathInput for files already on local storage,
// or a BufferInput for content supplied in memory (clipboard paste,
// drag-and-drop buffer). The variant drives name and MIME resolution.
type FileInput interface {
	// OriginalName returns the file name before any rename policy is applied.
	OriginalName() string
}

// PathInput references a file resident on the local filesystem.
type PathInput struct {
	Path string
}

func (p PathInput) OriginalName() string {
	return filepath.Base(p.Path)
}

// BufferInput carries file content directly, together with the metadata the
// producer already knows about it.
type BufferInput struct {
	Name     string
	MimeType string
	Encoding string
	Bytes    []byte
}

func (b BufferInput) OriginalName() string {
	return b.Name
}

// Size returns the content length in bytes.
func (b BufferInput) Size() int64 {
	return int64(len(b.Bytes))
}
