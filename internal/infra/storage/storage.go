package storage

import (
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("blob storage not configured")

// Store keeps opaque blobs under caller-chosen keys.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}

// Disabled is used when no bucket is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, []byte, string) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return ErrNotConfigured
}
