package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelyaev/ferry/internal/common"
	"github.com/mbelyaev/ferry/internal/models"
)

type stubAdapter struct {
	name string
	mode BatchMode
}

func (s stubAdapter) Name() string { return s.name }

func (s stubAdapter) Configure(map[string]string, string) error { return nil }

func (s stubAdapter) Upload(context.Context, models.UploadTask, string) (Result, error) {
	return Result{URL: "https://example.test/" + s.name}, nil
}

func (s stubAdapter) BatchMode() BatchMode { return s.mode }

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(stubAdapter{name: "s3"}, stubAdapter{name: "disk", mode: Sequence})

	a, err := r.Lookup("s3")
	require.NoError(t, err)
	assert.Equal(t, "s3", a.Name())

	_, err = r.Lookup("ftp")
	require.ErrorIs(t, err, common.ErrAdapterNotFound)
	assert.Contains(t, err.Error(), "ftp")
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry(stubAdapter{name: "zzz"}, stubAdapter{name: "aaa"})
	assert.Equal(t, []string{"aaa", "zzz"}, r.Names())
}

func TestBatchMode_String(t *testing.T) {
	assert.Equal(t, "parallel", Parallel.String())
	assert.Equal(t, "sequence", Sequence.String())
}

func TestOpenSource_Buffer(t *testing.T) {
	task := models.UploadTask{Source: models.BufferInput{Name: "b", Bytes: []byte("abc")}}

	rc, size, err := OpenSource(task)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })

	assert.Equal(t, int64(3), size)
}

func TestOpenSource_MissingPath(t *testing.T) {
	task := models.UploadTask{Source: models.PathInput{Path: "/definitely/not/here.bin"}}

	_, _, err := OpenSource(task)
	require.Error(t, err)
}
