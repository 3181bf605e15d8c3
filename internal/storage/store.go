package storage

import (
	"context"
	"io"
	"time"
)

// PutOptions describes upload options for object storage.
type PutOptions struct {
	ContentType string
}

// Store abstracts object storage operations.
type Store interface {
	PutObject(ctx context.Context, bucket, object string, reader io.Reader, size int64, opts PutOptions) error
	RemoveObject(ctx context.Context, bucket, object string) error
	PresignedGetObjectWithResponse(ctx context.Context, bucket, object string, expiry time.Duration, params map[string]string) (string, error)
}

// Default is the main object store instance.
var Default Store
