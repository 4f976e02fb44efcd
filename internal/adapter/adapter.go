// Package adapter defines the capability interface every storage backend
// implements and the registry the engine resolves backends from.
package adapter

import (
	"context"
	"time"

	"github.com/mbelyaev/ferry/internal/models"
)

// BatchMode is the concurrency discipline a backend requires for batches.
type BatchMode int

const (
	// Parallel backends accept all transfers of a batch concurrently.
	Parallel BatchMode = iota
	// Sequence backends require transfer i+1 to start only after transfer i
	// has settled.
	Sequence
)

func (m BatchMode) String() string {
	if m == Sequence {
		return "sequence"
	}
	return "parallel"
}

// Result is a successful transfer's payload.
type Result struct {
	// URL is the public address of the uploaded file.
	URL string
}

// Adapter is the uniform capability interface of one storage backend.
//
// Configure is called once per batch, before any Upload; adapters are
// stateless across batches from the engine's point of view. A structured
// transfer failure is reported through Upload's error; adapters must not
// panic on expected conditions.
type Adapter interface {
	// Name is the backend name the adapter registers under.
	Name() string

	// Configure applies profile options and the active proxy. It must
	// complete before Upload is called.
	Configure(options map[string]string, proxy string) error

	// Upload transfers one file into destDir and returns its public URL.
	Upload(ctx context.Context, task models.UploadTask, destDir string) (Result, error)

	// BatchMode declares the concurrency discipline for batches.
	BatchMode() BatchMode
}

// RemoteFile describes one stored object, as reported by a Lister.
type RemoteFile struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Optional capabilities, discovered by type assertion. The engine forwards
// them transparently and reports common.ErrUnsupported when absent.
type (
	Lister interface {
		ListFiles(ctx context.Context, dir string) ([]RemoteFile, error)
	}
	Remover interface {
		DeleteFiles(ctx context.Context, keys []string) error
	}
	DirMaker interface {
		CreateDirectory(ctx context.Context, dir string) error
	}
)
