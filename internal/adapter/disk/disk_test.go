package disk

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/models"
)

func configured(t *testing.T) (*Adapter, string) {
	t.Helper()
	root := t.TempDir()
	a := New()
	require.NoError(t, a.Configure(map[string]string{"root": root}, ""))
	return a, root
}

func bufferTask(name, content string) models.UploadTask {
	return models.UploadTask{
		ID:     "t1",
		Name:   name,
		Source: models.BufferInput{Name: name, Bytes: []byte(content)},
	}
}

func TestUpload_WritesFileAndReturnsFileURL(t *testing.T) {
	a, root := configured(t)

	res, err := a.Upload(context.Background(), bufferTask("cat.png", "meow"), "2026/08")
	require.NoError(t, err)

	want := filepath.Join(root, "2026/08", "cat.png")
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))
	assert.Contains(t, res.URL, "file://")
	assert.Contains(t, res.URL, "cat.png")
}

func TestUpload_PathInput(t *testing.T) {
	a, root := configured(t)

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "in.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o660))

	task := models.UploadTask{ID: "t2", Name: "renamed.bin", Source: models.PathInput{Path: src}}
	_, err := a.Upload(context.Background(), task, "")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "renamed.bin"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestUpload_MissingSourceFails(t *testing.T) {
	a, _ := configured(t)

	task := models.UploadTask{ID: "t3", Name: "x", Source: models.PathInput{Path: "/nope/missing"}}
	_, err := a.Upload(context.Background(), task, "")
	require.Error(t, err)
}

func TestCapabilities_ListDeleteCreate(t *testing.T) {
	a, _ := configured(t)
	ctx := context.Background()

	// The adapter advertises all three optional capabilities.
	var _ adapter.Lister = a
	var _ adapter.Remover = a
	var _ adapter.DirMaker = a

	require.NoError(t, a.CreateDirectory(ctx, "sub"))

	_, err := a.Upload(ctx, bufferTask("one.txt", "1"), "sub")
	require.NoError(t, err)
	_, err = a.Upload(ctx, bufferTask("two.txt", "22"), "sub")
	require.NoError(t, err)

	files, err := a.ListFiles(ctx, "sub")
	require.NoError(t, err)
	require.Len(t, files, 2)

	require.NoError(t, a.DeleteFiles(ctx, []string{"sub/one.txt"}))

	files, err = a.ListFiles(ctx, "sub")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "sub/two.txt", files[0].Key)
}

func TestConfigure_DefaultsRootWhenOptionMissing(t *testing.T) {
	tmp := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	a := New()
	require.NoError(t, a.Configure(nil, ""))

	fi, err := os.Stat(filepath.Join(tmp, "uploads"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
