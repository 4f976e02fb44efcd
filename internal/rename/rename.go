// Package rename implements the configurable file-name policy applied when a
// task is built. A format string is expanded with the tokens below; the
// original extension is preserved unless the format places {ext} itself.
//
// Tokens:
//
//	{y} {m} {d}      date of the upload (zero-padded)
//	{h} {i} {s} {ms} time of the upload (zero-padded)
//	{timestamp}      unix seconds
//	{uuid}           fresh UUID
//	{md5}            md5 of the original name, hex
//	{origin}         original name without extension
//	{ext}            original extension, without the dot
package rename

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Policy is the rename configuration snapshot for one request.
type Policy struct {
	Enabled bool
	Format  string
}

// Apply resolves the display name for one file. With the policy disabled or
// an empty format the original name is returned unchanged. An expansion that
// comes out empty falls back to the original name.
func (p Policy) Apply(original string, at time.Time) string {
	if !p.Enabled || p.Format == "" {
		return original
	}

	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	base := strings.TrimSuffix(original, filepath.Ext(original))

	sum := md5.Sum([]byte(original))

	r := strings.NewReplacer(
		"{y}", fmt.Sprintf("%04d", at.Year()),
		"{m}", fmt.Sprintf("%02d", at.Month()),
		"{d}", fmt.Sprintf("%02d", at.Day()),
		"{h}", fmt.Sprintf("%02d", at.Hour()),
		"{i}", fmt.Sprintf("%02d", at.Minute()),
		"{s}", fmt.Sprintf("%02d", at.Second()),
		"{ms}", fmt.Sprintf("%03d", at.Nanosecond()/1e6),
		"{timestamp}", fmt.Sprintf("%d", at.Unix()),
		"{uuid}", uuid.NewString(),
		"{md5}", hex.EncodeToString(sum[:]),
		"{origin}", base,
		"{ext}", ext,
	)

	name := r.Replace(p.Format)
	if strings.TrimSpace(name) == "" {
		return original
	}

	if !strings.Contains(p.Format, "{ext}") && ext != "" {
		name += "." + ext
	}
	return name
}
