// Package storage stores uploaded images behind a pluggable object-storage
// backend and hands back the public path clients render.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/grainworks/portfolio-api/config"
)

// ObjectStorage defines common upload operations across backends.
type ObjectStorage interface {
	// Put stores the object and returns its public path or URL.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New selects a backend from configuration. The local driver is the
// development default; gcs and minio serve deployments.
func New(ctx context.Context, cfg *config.Config) (ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "gcs":
		return NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSONPath)
	case "minio":
		return NewMinio(ctx, cfg)
	case "local", "":
		return NewLocal(cfg.LocalUploadDir, cfg.LocalUploadBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
