// Package disk implements a local-directory backend. It is mostly useful for
// testing pipelines end to end and as the simplest complete adapter: it
// supports every optional capability.
package disk

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/filex"
	"github.com/mbelyaev/ferry/internal/models"
)

const defaultRoot = "uploads"

type Adapter struct {
	root string
}

func New() *Adapter {
	return &Adapter{root: defaultRoot}
}

func (a *Adapter) Name() string { return "disk" }

func (a *Adapter) BatchMode() adapter.BatchMode { return adapter.Parallel }

// Configure sets the storage root from the "root" option. The proxy setting
// is irrelevant for local storage and is ignored.
func (a *Adapter) Configure(options map[string]string, _ string) error {
	root := options["root"]
	if root == "" {
		root = defaultRoot
	}
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return err
	}
	a.root = abs
	return nil
}

func (a *Adapter) Upload(ctx context.Context, task models.UploadTask, destDir string) (adapter.Result, error) {
	if err := ctx.Err(); err != nil {
		return adapter.Result{}, err
	}

	src, _, err := adapter.OpenSource(task)
	if err != nil {
		return adapter.Result{}, err
	}
	defer src.Close()

	dst := filepath.Join(a.root, destDir, task.Name)
	if _, err := filex.EnsureDir(filepath.Dir(dst)); err != nil {
		return adapter.Result{}, err
	}

	out, err := os.Create(dst)
	if err != nil {
		return adapter.Result{}, fmt.Errorf("create %s: %w", dst, err)
	}
	_, err = io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return adapter.Result{}, fmt.Errorf("write %s: %w", dst, err)
	}

	u := url.URL{Scheme: "file", Path: filepath.ToSlash(dst)}
	return adapter.Result{URL: u.String()}, nil
}

func (a *Adapter) ListFiles(ctx context.Context, dir string) ([]adapter.RemoteFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(a.root, dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	files := make([]adapter.RemoteFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, adapter.RemoteFile{
			Key:     filepath.ToSlash(filepath.Join(dir, e.Name())),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
	}
	return files, nil
}

func (a *Adapter) DeleteFiles(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.Remove(filepath.Join(a.root, filepath.FromSlash(key))); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (a *Adapter) CreateDirectory(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := filex.EnsureDir(filepath.Join(a.root, dir))
	return err
}
