package adapter

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mbelyaev/ferry/internal/models"
)

// OpenSource opens a task's content for reading and reports its size.
// Path-backed tasks stream from disk; buffer-backed tasks read from memory.
// The caller owns the returned reader.
func OpenSource(task models.UploadTask) (io.ReadCloser, int64, error) {
	switch src := task.Source.(type) {
	case models.PathInput:
		f, err := os.Open(src.Path)
		if err != nil {
			return nil, 0, fmt.Errorf("open %s: %w", src.Path, err)
		}
		fi, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, 0, fmt.Errorf("stat %s: %w", src.Path, err)
		}
		return f, fi.Size(), nil
	case models.BufferInput:
		return io.NopCloser(bytes.NewReader(src.Bytes)), src.Size(), nil
	default:
		return nil, 0, fmt.Errorf("unknown input variant %T", task.Source)
	}
}
