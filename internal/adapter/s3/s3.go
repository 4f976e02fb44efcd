// Package s3 implements the S3-compatible object-storage backend on top of
// aws-sdk-go-v2. Works against AWS itself and against anything speaking the
// S3 API through the "endpoint" option.
package s3

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/models"
	"github.com/mbelyaev/ferry/internal/netx"
)

// Seams for testing the SDK calls without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newClientFromConfig = func(cfg aws.Config, optFns ...func(*awss3.Options)) *awss3.Client {
		return awss3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *awss3.Client, ctx context.Context, in *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
	listObjectsV2 = func(c *awss3.Client, ctx context.Context, in *awss3.ListObjectsV2Input) (*awss3.ListObjectsV2Output, error) {
		return c.ListObjectsV2(ctx, in)
	}
	deleteObject = func(c *awss3.Client, ctx context.Context, in *awss3.DeleteObjectInput) (*awss3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in)
	}
)

type Adapter struct {
	client    *awss3.Client
	bucket    string
	region    string
	publicURL string
}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "s3" }

func (a *Adapter) BatchMode() adapter.BatchMode { return adapter.Parallel }

// Configure builds the SDK client for this batch.
//
// Options: bucket (required), region, access_key/secret_key (static
// credentials; default chain when absent), endpoint (custom S3-compatible
// endpoint, switches to path-style addressing), public_url (base for the
// returned links).
func (a *Adapter) Configure(options map[string]string, proxy string) error {
	bucket := options["bucket"]
	if bucket == "" {
		return fmt.Errorf("s3: option %q is required", "bucket")
	}

	region := options["region"]
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}

	if ak, sk := options["access_key"], options["secret_key"]; ak != "" || sk != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(ak, sk, "")))
	}

	if proxy != "" {
		hc, err := netx.NewHTTPClient(proxy)
		if err != nil {
			return err
		}
		loadOpts = append(loadOpts, awsconfig.WithHTTPClient(hc))
	}

	cfg, err := loadDefaultAWSConfig(context.Background(), loadOpts...)
	if err != nil {
		return fmt.Errorf("s3: load config: %w", err)
	}

	endpoint := options["endpoint"]
	a.client = newClientFromConfig(cfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	a.bucket = bucket
	a.region = region
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

	_, err = putObject(a.client, ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(task.MimeType),
	})
	if err != nil {
		return adapter.Result{}, fmt.Errorf("s3: put %s: %w", key, err)
	}

	return adapter.Result{URL: a.objectURL(key)}, nil
}

func (a *Adapter) ListFiles(ctx context.Context, dir string) ([]adapter.RemoteFile, error) {
	prefix := objectKey(dir, "")

	out, err := listObjectsV2(a.client, ctx, &awss3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: list %s: %w", prefix, err)
	}

	files := make([]adapter.RemoteFile, 0, len(out.Contents))
	for _, obj := range out.Contents {
		f := adapter.RemoteFile{
			Key:  aws.ToString(obj.Key),
			Size: aws.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			f.ModTime = *obj.LastModified
		}
		files = append(files, f)
	}
	return files, nil
}

func (a *Adapter) DeleteFiles(ctx context.Context, keys []string) error {
	for _, key := range keys {
		_, err := deleteObject(a.client, ctx, &awss3.DeleteObjectInput{
			Bucket: aws.String(a.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("s3: delete %s: %w", key, err)
		}
	}
	return nil
}

func (a *Adapter) CreateDirectory(ctx context.Context, dir string) error {
	// S3 has no directories; an empty object with a trailing slash is the
	// convention consoles understand.
	key := strings.TrimSuffix(objectKey(dir, ""), "/") + "/"
	_, err := putObject(a.client, ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		ContentLength: aws.Int64(0),
	})
	if err != nil {
		return fmt.Errorf("s3: create directory %s: %w", key, err)
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
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}
