// Package download fetches a remote resource to local storage while streaming
// progress events. Completion is signaled through the event stream: when the
// response declares a total size the ratio series itself is the completion
// signal (the last sample reaches 1.0 and no separate done event follows);
// when the size is unknown no progress is emitted and a single done event
// marks completion instead.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mbelyaev/ferry/internal/filex"
	"github.com/mbelyaev/ferry/internal/logging"
	"github.com/mbelyaev/ferry/internal/models"
	"github.com/mbelyaev/ferry/internal/netx"
)

const defaultChunkSize = 32 * 1024

// Sink receives the event stream of one download. Exactly one terminal
// signal (Done or Error) is delivered per Fetch call with a known-size
// exception: a known-size download terminates through the ratio-1.0 progress
// sample plus Fetch's nil return, with no Done event.
type Sink interface {
	Progress(p models.DownloadProgress)
	Done(name string)
	Error(name, message string)
}

// Streamer downloads remote resources into a fixed destination directory.
type Streamer struct {
	client  *http.Client
	destDir string
	log     logging.Logger

	// chunkSize bounds how many bytes are written between progress samples.
	chunkSize int
}

func New(destDir, proxy string, log logging.Logger) (*Streamer, error) {
	client, err := netx.NewHTTPClient(proxy)
	if err != nil {
		return nil, err
	}
	return &Streamer{client: client, destDir: destDir, log: log, chunkSize: defaultChunkSize}, nil
}

// Fetch streams srcURL into destName under the streamer's destination
// directory, emitting events to sink. On error the sink is closed after a
// single Error event; a partial file may remain on disk.
func (s *Streamer) Fetch(ctx context.Context, destName, srcURL string, sink Sink) error {
	dir, err := filex.EnsureDir(s.destDir)
	if err != nil {
		return s.fail(sink, destName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return s.fail(sink, destName, fmt.Errorf("build request: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return s.fail(sink, destName, fmt.Errorf("fetch %s: %w", srcURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.fail(sink, destName, fmt.Errorf("fetch %s: unexpected status %s", srcURL, resp.Status))
	}

	dest := filepath.Join(dir, destName)
	out, err := os.Create(dest)
	if err != nil {
		return s.fail(sink, destName, fmt.Errorf("create %s: %w", dest, err))
	}

	total := resp.ContentLength
	received, err := s.copy(out, resp.Body, destName, total, sink)

	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", dest, cerr)
	}
	if err != nil {
		return s.fail(sink, destName, err)
	}

	s.log.Info(ctx, "download finished", "name", destName, "bytes", received)
	if total < 0 {
		sink.Done(destName)
	}
	return nil
}

// copy moves the body to out chunk by chunk. With a known total every chunk
// yields one progress sample; with an unknown total the stream stays silent.
func (s *Streamer) copy(out io.Writer, body io.Reader, name string, total int64, sink Sink) (int64, error) {
	buf := make([]byte, s.chunkSize)
	var received int64

	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return received, fmt.Errorf("write %s: %w", name, werr)
			}
			received += int64(n)
			if total > 0 {
				sink.Progress(models.DownloadProgress{
					Name:          name,
					BytesReceived: received,
					TotalBytes:    total,
					Ratio:         float64(received) / float64(total),
				})
			}
		}
		if rerr == io.EOF {
			return received, nil
		}
		if rerr != nil {
			return received, fmt.Errorf("read %s: %w", name, rerr)
		}
	}
}

// fail delivers the single terminal error event and returns the error.
func (s *Streamer) fail(sink Sink, name string, err error) error {
	sink.Error(name, err.Error())
	return err
}
