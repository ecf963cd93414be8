package blob

import (
	"context"
	"fmt"

	"shelf-go/internal/config"
	"shelf-go/internal/shelf"
)

// NewStoreFromConfig creates a BlobStore implementation based on the storage
// config type.
func NewStoreFromConfig(cfg config.StorageConfig) (shelf.BlobStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem storage requires fs_root to be set")
		}
		return NewFileSystemStore(cfg.FSRoot)
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires s3_bucket to be set")
		}
		return NewS3Store(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
