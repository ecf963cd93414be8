package database

import (
	"fmt"
	"os"
	"path/filepath"

	"shelf-go/internal/config"
	"shelf-go/internal/database/migrations"
	"shelf-go/internal/shelf"
)

// NewDatabaseFromConfig creates a Database based on the config type, running
// any pending migrations.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (shelf.Database, error) {
	switch cfg.Type {
	case "memory":
		return open(":memory:")
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite database requires data_dir to be set")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		return open(filepath.Join(cfg.DataDir, "shelf.db"))
	default:
		return nil, fmt.Errorf("unknown database type: %s", cfg.Type)
	}
}

func open(path string) (shelf.Database, error) {
	db, err := NewSQLiteDatabase(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db.db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return db, nil
}
