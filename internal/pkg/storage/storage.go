package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// FileStorage keeps generated artifacts such as archived payroll exports.
type FileStorage interface {
	// Upload stores the content under key and returns the cleaned key
	Upload(ctx context.Context, content io.Reader, key string, contentType string) (string, error)

	// Open streams a stored file; the caller closes it
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// URL is where clients can fetch the file
	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}
