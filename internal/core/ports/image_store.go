package ports

import (
	"context"
	"io"
)

// ImageStore saves uploaded product images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}
