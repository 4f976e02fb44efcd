// Package minio implements a MinIO object-storage backend using the native
// minio-go client.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/models"
	"github.com/mbelyaev/ferry/internal/netx"
)

// api is the subset of *minio.Client the adapter uses; a fake stands in
// during tests.
type api interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	EndpointURL() *url.URL
}

// newClient is a seam for tests.
var newClient = func(endpoint string, opts *minio.Options) (api, error) {
	return minio.New(endpoint, opts)
}

type Adapter struct {
	client    api
	bucket    string
	publicURL string
}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "minio" }

func (a *Adapter) BatchMode() adapter.BatchMode { return adapter.Parallel }

// Configure connects to the MinIO server and ensures the bucket exists.
//
// Options: endpoint (required), bucket (required), access_key, secret_key,
// use_ssl ("true"/"false"), public_url.
func (a *Adapter) Configure(options map[string]string, proxy string) error {
	endpoint := options["endpoint"]
	bucket := options["bucket"]
	if endpoint == "" || bucket == "" {
		return fmt.Errorf("minio: options %q and %q are required", "endpoint", "bucket")
	}

	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(options["access_key"], options["secret_key"], ""),
		Secure: options["use_ssl"] == "true",
	}

	if proxy != "" {
		hc, err := netx.NewHTTPClient(proxy)
		if err != nil {
			return err
		}
		opts.Transport = hc.Transport
	}

	client, err := newClient(endpoint, opts)
	if err != nil {
		return fmt.Errorf("minio: init client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("minio: create bucket: %w", err)
		}
	}

	a.client = client
	a.bucket = bucket
	a.publicURL = strings.TrimRight(options["public_url"], "/")
	return nil
}

func (a *Adapter) Upload(ctx context.Context, task models.UploadTask, destDir string) (adapter.Result, error) {
	src, size, err := adapter.OpenSource(task)
	if err != nil {
		return adapter.Result{}, err
	}
	defer src.Close()

	key := objectKey(destDir, task.Name)

	_, err = a.client.PutObject(ctx, a.bucket, key, src, size, minio.PutObjectOptions{
		ContentType: task.MimeType,
	})
	if err != nil {
		return adapter.Result{}, fmt.Errorf("minio: put %s: %w", key, err)
	}

	return adapter.Result{URL: a.objectURL(key)}, nil
}

func (a *Adapter) ListFiles(ctx context.Context, dir string) ([]adapter.RemoteFile, error) {
	prefix := objectKey(dir, "")

	var files []adapter.RemoteFile
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio: list %s: %w", prefix, obj.Err)
		}
		files = append(files, adapter.RemoteFile{
			Key:     obj.Key,
			Size:    obj.Size,
			ModTime: obj.LastModified,
		})
	}
	return files, nil
}

func (a *Adapter) DeleteFiles(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("minio: delete %s: %w", key, err)
		}
	}
	return nil
}

func (a *Adapter) CreateDirectory(ctx context.Context, dir string) error {
	key := strings.TrimSuffix(objectKey(dir, ""), "/") + "/"
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("minio: create directory %s: %w", key, err)
	}
	return nil
}

func objectKey(dir, name string) string {
	return strings.TrimPrefix(path.Join(dir, name), "/")
}

func (a *Adapter) objectURL(key string) string {
	if a.publicURL != "" {
		return a.publicURL + "/" + key
	}
	u := a.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", u.Scheme, u.Host, a.bucket, key)
}
