package service

import (
	"context"
	"io"
)

// FileUploader stores a file and returns a public URL for it.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}
