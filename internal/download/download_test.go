package download

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelyaev/ferry/internal/logging"
	"github.com/mbelyaev/ferry/internal/models"
)

type captureSink struct {
	progress []models.DownloadProgress
	done     []string
	errors   []string
}

func (s *captureSink) Progress(p models.DownloadProgress) { s.progress = append(s.progress, p) }
func (s *captureSink) Done(name string)                   { s.done = append(s.done, name) }
func (s *captureSink) Error(name, msg string)             { s.errors = append(s.errors, msg) }

// chunkReader yields the body in fixed-size chunks, the way a flushing
// server delivers it.
type chunkReader struct {
	remaining int
	chunk     int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.remaining == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > r.remaining {
		n = r.remaining
	}
	r.remaining -= n
	return n, nil
}

func setupStreamer(t *testing.T) *Streamer {
	t.Helper()
	s, err := New(t.TempDir(), "", logging.NewNop())
	require.NoError(t, err)
	return s
}

func TestCopy_RatioPerChunk(t *testing.T) {
	s := setupStreamer(t)
	s.chunkSize = 250
	sink := &captureSink{}

	received, err := s.copy(io.Discard, &chunkReader{remaining: 1000, chunk: 250}, "blob.bin", 1000, sink)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), received)

	require.Len(t, sink.progress, 4)
	ratios := make([]float64, 0, 4)
	for _, p := range sink.progress {
		assert.Equal(t, "blob.bin", p.Name)
		assert.Equal(t, int64(1000), p.TotalBytes)
		ratios = append(ratios, p.Ratio)
	}
	assert.Equal(t, []float64{0.25, 0.5, 0.75, 1.0}, ratios)
}

func TestCopy_UnknownTotalStaysSilent(t *testing.T) {
	s := setupStreamer(t)
	s.chunkSize = 250
	sink := &captureSink{}

	received, err := s.copy(io.Discard, &chunkReader{remaining: 600, chunk: 250}, "stream.bin", -1, sink)
	require.NoError(t, err)
	assert.Equal(t, int64(600), received)
	assert.Empty(t, sink.progress)
}

func TestFetch_KnownSizeEmitsRatioPerChunk(t *testing.T) {
	payload := make([]byte, 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		fl := w.(http.Flusher)
		for off := 0; off < len(payload); off += 250 {
			_, _ = w.Write(payload[off : off+250])
			fl.Flush()
		}
	}))
	defer srv.Close()

	s := setupStreamer(t)
	s.chunkSize = 250
	sink := &captureSink{}

	require.NoError(t, s.Fetch(context.Background(), "blob.bin", srv.URL, sink))

	// Network reads may split or coalesce chunks, so only the series shape is
	// asserted here; the exact per-chunk grid is covered by TestCopy_RatioPerChunk.
	require.NotEmpty(t, sink.progress)
	last := 0.0
	for _, p := range sink.progress {
		assert.Equal(t, "blob.bin", p.Name)
		assert.Equal(t, int64(1000), p.TotalBytes)
		assert.Greater(t, p.Ratio, last)
		last = p.Ratio
	}
	assert.Equal(t, 1.0, last)

	// The ratio series is the completion signal; no done event follows.
	assert.Empty(t, sink.done)
	assert.Empty(t, sink.errors)

	written, err := os.ReadFile(filepath.Join(s.destDir, "blob.bin"))
	require.NoError(t, err)
	assert.Len(t, written, 1000)
}

func TestFetch_UnknownSizeEmitsSingleDone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No Content-Length; chunked transfer encoding.
		fl := w.(http.Flusher)
		for i := 0; i < 3; i++ {
			_, _ = w.Write([]byte("chunk"))
			fl.Flush()
		}
	}))
	defer srv.Close()

	s := setupStreamer(t)
	sink := &captureSink{}

	require.NoError(t, s.Fetch(context.Background(), "stream.bin", srv.URL, sink))

	assert.Empty(t, sink.progress)
	assert.Equal(t, []string{"stream.bin"}, sink.done)
	assert.Empty(t, sink.errors)
}

func TestFetch_BadStatusIsSingleTerminalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := setupStreamer(t)
	sink := &captureSink{}

	err := s.Fetch(context.Background(), "missing.bin", srv.URL, sink)
	require.Error(t, err)

	assert.Empty(t, sink.progress)
	assert.Empty(t, sink.done)
	require.Len(t, sink.errors, 1)
	assert.Contains(t, sink.errors[0], "unexpected status")
}

func TestFetch_TruncatedBodyKeepsPartialFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write(make([]byte, 400))
		// Closing early leaves the declared length unsatisfied.
	}))
	defer srv.Close()

	s := setupStreamer(t)
	sink := &captureSink{}

	err := s.Fetch(context.Background(), "partial.bin", srv.URL, sink)
	require.Error(t, err)

	require.Len(t, sink.errors, 1)
	assert.Empty(t, sink.done)

	// The partial file stays on disk.
	written, err := os.ReadFile(filepath.Join(s.destDir, "partial.bin"))
	require.NoError(t, err)
	assert.Len(t, written, 400)
}

func TestFetch_UnreachableHost(t *testing.T) {
	s := setupStreamer(t)
	sink := &captureSink{}

	err := s.Fetch(context.Background(), "x.bin", "http://127.0.0.1:1/x", sink)
	require.Error(t, err)
	require.Len(t, sink.errors, 1)
}

func TestNew_RejectsBadProxy(t *testing.T) {
	_, err := New(t.TempDir(), "://not-a-url", logging.NewNop())
	require.Error(t, err)
}
