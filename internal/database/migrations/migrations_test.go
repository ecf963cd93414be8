package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var found string
	err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, name,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	return true
}

func TestMigrateUp(t *testing.T) {
	t.Run("fresh database gets the full schema", func(t *testing.T) {
		db := openTestDB(t)

		if err := MigrateUp(db); err != nil {
			t.Fatalf("MigrateUp() error = %v", err)
		}

		if !tableExists(t, db, "mutations") {
			t.Error("mutations table not created")
		}
		if !tableExists(t, db, "schema_migrations") {
			t.Error("schema_migrations table not created")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		db := openTestDB(t)

		if err := MigrateUp(db); err != nil {
			t.Fatalf("first MigrateUp() error = %v", err)
		}
		if err := MigrateUp(db); err != nil {
			t.Fatalf("second MigrateUp() error = %v", err)
		}
	})

	t.Run("migrated schema accepts mutation rows", func(t *testing.T) {
		db := openTestDB(t)

		if err := MigrateUp(db); err != nil {
			t.Fatalf("MigrateUp() error = %v", err)
		}

		_, err := db.Exec(
			`INSERT INTO mutations (operation, item_id, details, started_at, status)
			 VALUES ('add', 'item-1', 'Milk', 1700000000000, 'success')`,
		)
		if err != nil {
			t.Errorf("inserting into migrated schema: %v", err)
		}
	})
}

func TestCheckDBMigrationStatus(t *testing.T) {
	t.Run("fails on a fresh database", func(t *testing.T) {
		db := openTestDB(t)

		if err := CheckDBMigrationStatus(db); err == nil {
			t.Error("CheckDBMigrationStatus() = nil on unmigrated database, want error")
		}
	})

	t.Run("passes after migration", func(t *testing.T) {
		db := openTestDB(t)

		if err := MigrateUp(db); err != nil {
			t.Fatalf("MigrateUp() error = %v", err)
		}
		if err := CheckDBMigrationStatus(db); err != nil {
			t.Errorf("CheckDBMigrationStatus() error = %v", err)
		}
	})
}
