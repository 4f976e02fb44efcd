// Package webform implements a generic HTTP multipart-POST backend for image
// hosts that accept a single form upload per request. Such hosts commonly
// throttle concurrent posts from one client, so the backend declares
// Sequence mode.
package webform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/mbelyaev/ferry/internal/adapter"
	"github.com/mbelyaev/ferry/internal/models"
	"github.com/mbelyaev/ferry/internal/netx"
)

type Adapter struct {
	client   *http.Client
	endpoint string
	field    string
	token    string
	respMode string
}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string { return "webform" }

func (a *Adapter) BatchMode() adapter.BatchMode { return adapter.Sequence }

// Configure prepares the HTTP client for this batch.
//
// Options: url (required), field (form field name, default "file"), token
// (sent as a Bearer Authorization header), response ("body": the trimmed
// response body is the public URL, the default; "location": taken from the
// Location header).
func (a *Adapter) Configure(options map[string]string, proxy string) error {
	endpoint := options["url"]
	if endpoint == "" {
		return fmt.Errorf("webform: option %q is required", "url")
	}

	client, err := netx.NewHTTPClient(proxy)
	if err != nil {
		return err
	}

	field := options["field"]
	if field == "" {
		field = "file"
	}

	respMode := options["response"]
	if respMode == "" {
		respMode = "body"
	}
	if respMode != "body" && respMode != "location" {
		return fmt.Errorf("webform: unknown response mode %q", respMode)
	}

	a.client = client
	a.endpoint = endpoint
	a.field = field
	a.token = options["token"]
	a.respMode = respMode
	return nil
}

func (a *Adapter) Upload(ctx context.Context, task models.UploadTask, destDir string) (adapter.Result, error) {
	src, _, err := adapter.OpenSource(task)
	if err != nil {
		return adapter.Result{}, err
	}
	defer src.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := filePart(mw, a.field, task.Name, task.MimeType)
	if err != nil {
		return adapter.Result{}, fmt.Errorf("webform: build form: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return adapter.Result{}, fmt.Errorf("webform: read source: %w", err)
	}
	if destDir != "" {
		if err := mw.WriteField("path", destDir); err != nil {
			return adapter.Result{}, fmt.Errorf("webform: build form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return adapter.Result{}, fmt.Errorf("webform: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, &body)
	if err != nil {
		return adapter.Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return adapter.Result{}, fmt.Errorf("webform: post %s: %w", task.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return adapter.Result{}, fmt.Errorf("webform: upload failed: %s; body: %s", resp.Status, string(b))
	}

	u, err := a.resultURL(resp)
	if err != nil {
		return adapter.Result{}, err
	}
	return adapter.Result{URL: u}, nil
}

func (a *Adapter) resultURL(resp *http.Response) (string, error) {
	switch a.respMode {
	case "location":
		loc := resp.Header.Get("Location")
		if loc == "" {
			return "", fmt.Errorf("webform: response carried no Location header")
		}
		return loc, nil
	default:
		b, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if err != nil {
			return "", fmt.Errorf("webform: read response: %w", err)
		}
		u := strings.TrimSpace(string(b))
		if u == "" {
			return "", fmt.Errorf("webform: response body carried no URL")
		}
		return u, nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// filePart is CreateFormFile with an explicit content type instead of the
// fixed application/octet-stream.
func filePart(mw *multipart.Writer, field, name, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(field), quoteEscaper.Replace(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return mw.CreatePart(h)
}
