package blob_test

import (
	"testing"

	"shelf-go/internal/blob"
	"shelf-go/internal/config"
)

func TestNewStoreFromConfig(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := blob.NewStoreFromConfig(config.StorageConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := store.(*blob.MemoryStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *blob.MemoryStore", store)
		}
	})

	t.Run("filesystem", func(t *testing.T) {
		store, err := blob.NewStoreFromConfig(config.StorageConfig{Type: "filesystem", FSRoot: t.TempDir()})
		if err != nil {
			t.Fatalf("NewStoreFromConfig() error = %v", err)
		}
		if _, ok := store.(*blob.FileSystemStore); !ok {
			t.Errorf("NewStoreFromConfig() = %T, want *blob.FileSystemStore", store)
		}
	})

	t.Run("filesystem requires a root", func(t *testing.T) {
		if _, err := blob.NewStoreFromConfig(config.StorageConfig{Type: "filesystem"}); err == nil {
			t.Error("NewStoreFromConfig() succeeded without fs_root, want error")
		}
	})

	t.Run("s3 requires a bucket", func(t *testing.T) {
		if _, err := blob.NewStoreFromConfig(config.StorageConfig{Type: "s3"}); err == nil {
			t.Error("NewStoreFromConfig() succeeded without s3_bucket, want error")
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := blob.NewStoreFromConfig(config.StorageConfig{Type: "carrier-pigeon"}); err == nil {
			t.Error("NewStoreFromConfig() succeeded on unknown type, want error")
		}
	})
}
