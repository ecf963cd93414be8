package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"shelf-go/internal/shelf"
)

const (
	inventoryFile = "inventory.json"
	versionFile   = "inventory.version"
)

// FileSystemStore is a filesystem-based implementation of the BlobStore
// interface. It keeps the inventory and its version as two files under a
// root directory:
//
//	<root>/
//	  inventory.json
//	  inventory.version
type FileSystemStore struct {
	root        string
	dataPath    string
	versionPath string
}

// NewFileSystemStore creates a filesystem blob store rooted at the given
// path, creating the directory if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileSystemStore{
		root:        root,
		dataPath:    filepath.Join(root, inventoryFile),
		versionPath: filepath.Join(root, versionFile),
	}, nil
}

// PutInventory writes the serialized collection atomically (temp file +
// rename), then records the version.
func (s *FileSystemStore) PutInventory(r io.Reader, size int64, version int64) error {
	if err := s.writeFile(s.dataPath, r, size); err != nil {
		return err
	}
	versionData := strconv.FormatInt(version, 10)
	if err := os.WriteFile(s.versionPath, []byte(versionData), 0644); err != nil {
		return fmt.Errorf("writing version file: %w", err)
	}
	return nil
}

// GetInventory writes the stored collection to w.
func (s *FileSystemStore) GetInventory(w io.Writer) error {
	f, err := os.Open(s.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return shelf.ErrNoInventory
		}
		return fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read inventory file: %w", err)
	}
	return nil
}

// InventoryVersion returns the stored version. Returns 0 if no version file
// exists.
func (s *FileSystemStore) InventoryVersion() (int64, error) {
	data, err := os.ReadFile(s.versionPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading version file: %w", err)
	}

	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup verifies that the storage directory is accessible.
func (s *FileSystemStore) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("storage root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage root is not a directory: %s", s.root)
	}
	return nil
}

// writeFile writes data from r to the specified path using atomic write
// (temp file + rename).
func (s *FileSystemStore) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Temp file in the same directory so the rename stays atomic.
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemStore implements shelf.BlobStore
var _ shelf.BlobStore = (*FileSystemStore)(nil)
