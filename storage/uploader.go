// Package storage saves uploaded product images and returns their public URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// ObjectName prefixes the original name with a timestamp and replaces spaces,
// so repeated uploads of the same file never overwrite each other.
func ObjectName(filename string, now time.Time) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d_%s", now.UnixMilli(), base)
}
