// Package archive keeps a copy of every generated report, on the local
// filesystem or in S3.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lvillar/hospreport"
)

var (
	// ErrInvalidKey is returned for keys that are absolute or escape the store.
	ErrInvalidKey = errors.New("archive: invalid key")
	// ErrNotFound is returned by Open for a key that holds no report.
	ErrNotFound = errors.New("archive: not found")
)

// Store saves and retrieves archived reports by key.
type Store interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Key returns "<kind>/<YYYY>/<MM>/<uuid>_<filename>".
func Key(kind, filename string, now time.Time) string {
	return path.Join(
		hospreport.FileKey(kind),
		now.Format("2006"),
		now.Format("01"),
		uuid.NewString()+"_"+hospreport.FileKey(filename),
	)
}

// cleanKey rejects keys that are empty, absolute or contain "..".
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	clean := path.Clean(key)
	if key == "" || clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return clean, nil
}
