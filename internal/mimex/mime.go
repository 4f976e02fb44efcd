// Package mimex resolves MIME types for upload inputs: declared metadata for
// buffer inputs, extension lookup with a content-sniff fallback for paths.
package mimex

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mbelyaev/ferry/internal/models"
)

const fallback = "application/octet-stream"

// ForInput resolves the MIME type of one input. Buffer inputs keep the type
// their producer declared; path inputs are inferred from the file extension,
// sniffing the content only when the extension is unknown.
func ForInput(in models.FileInput) string {
	switch v := in.(type) {
	case models.BufferInput:
		if v.MimeType != "" {
			return v.MimeType
		}
		return mimetype.Detect(v.Bytes).String()
	case models.PathInput:
		return ForPath(v.Path)
	}
	return fallback
}

// ForPath resolves a MIME type for a local file.
func ForPath(path string) string {
	if mt := mime.TypeByExtension(filepath.Ext(path)); mt != "" {
		// TypeByExtension may attach charset parameters; keep the bare type.
		if i := strings.IndexByte(mt, ';'); i >= 0 {
			return strings.TrimSpace(mt[:i])
		}
		return mt
	}
	if mt, err := mimetype.DetectFile(path); err == nil {
		return mt.String()
	}
	return fallback
}
