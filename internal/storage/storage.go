package storage

import (
	"context"
	"io"
	"time"
)

// Uploader stores a blob and returns the object key it was written under.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (objectKey string, err error)
}

type Signer interface {
	SignedGetURL(ctx context.Context, objectName string, ttl time.Duration) (string, error)
}

// Store is the full blob surface used by the CV file library.
type Store interface {
	Uploader
	Signer
	Delete(ctx context.Context, objectName string) error
}
