// Package storage keeps uploaded product images on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNameRetries = 3

// LocalImageStore writes images into a directory served under /uploads.
type LocalImageStore struct {
	dir     string
	baseURL string
	now     func() time.Time
}

// NewLocalImageStore creates dir if needed. baseURL is the public prefix, for
// example "http://localhost:5000/uploads".
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalImageStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}, nil
}

// Dir is the directory images are written to.
func (s *LocalImageStore) Dir() string { return s.dir }

// Save stores content as <unix-millis>-<basename> and returns its public URL.
// A name already taken gets a random tag: <unix-millis>-<tag>-<basename>.
func (s *LocalImageStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." {
		return "", fmt.Errorf("save image: empty file name")
	}
	stamp := s.now().UnixMilli()
	name := fmt.Sprintf("%d-%s", stamp, base)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	// Same name within the same millisecond: add a short random tag.
	for attempt := 0; errors.Is(err, fs.ErrExist) && attempt < maxNameRetries; attempt++ {
		name = fmt.Sprintf("%d-%s-%s", stamp, uuid.NewString()[:8], base)
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("save image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
