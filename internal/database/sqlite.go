package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shelf-go/internal/database/migrations"
	"shelf-go/internal/model"
	"shelf-go/internal/shelf"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the shelf.Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db, path: ""}
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. path can be a file path or ":memory:".
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// CreateMutation inserts a new in-flight mutation record.
func (s *SQLiteDatabase) CreateMutation(operation, itemID, details string) (*model.Mutation, error) {
	startedAt := time.Now().UnixMilli()

	res, err := s.db.Exec(
		`INSERT INTO mutations (operation, item_id, details, started_at, status) VALUES (?, ?, ?, ?, 'success')`,
		operation, itemID, details, startedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting mutation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading mutation id: %w", err)
	}

	return &model.Mutation{
		ID:        id,
		Operation: operation,
		ItemID:    itemID,
		Details:   details,
		StartedAt: startedAt,
		Status:    "success",
	}, nil
}

// FinishMutation stamps the finish time and final status on a mutation.
func (s *SQLiteDatabase) FinishMutation(id int64, status string) error {
	_, err := s.db.Exec(
		`UPDATE mutations SET finished_at = ?, status = ? WHERE id = ?`,
		time.Now().UnixMilli(), status, id,
	)
	if err != nil {
		return fmt.Errorf("finishing mutation: %w", err)
	}
	return nil
}

// ListMutations returns the most recent mutations, newest first.
func (s *SQLiteDatabase) ListMutations(limit int) ([]*model.Mutation, error) {
	rows, err := s.db.Query(
		`SELECT id, operation, item_id, details, started_at, finished_at, status
		 FROM mutations ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing mutations: %w", err)
	}
	defer rows.Close()

	var out []*model.Mutation
	for rows.Next() {
		var m model.Mutation
		var finishedAt sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Operation, &m.ItemID, &m.Details, &m.StartedAt, &finishedAt, &m.Status); err != nil {
			return nil, fmt.Errorf("scanning mutation: %w", err)
		}
		if finishedAt.Valid {
			m.FinishedAt = finishedAt.Int64
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mutations: %w", err)
	}
	return out, nil
}

// MaxMutationID returns the highest mutation ID recorded, 0 if none.
func (s *SQLiteDatabase) MaxMutationID() (int64, error) {
	var id sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(id) FROM mutations`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading max mutation id: %w", err)
	}
	if !id.Valid {
		return 0, nil
	}
	return id.Int64, nil
}

// CheckMigrations verifies the schema is at the latest version.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteDatabase implements shelf.Database
var _ shelf.Database = (*SQLiteDatabase)(nil)
