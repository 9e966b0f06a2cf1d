package service

import (
	"context"
	"io"
	"time"
)

// FileStorage is the object storage facade the services depend on.
type FileStorage interface {
	UploadFile(ctx context.Context, body io.Reader, key, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	ExtractKeyFromURL(url string) string
	GetSignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}
