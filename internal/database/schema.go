package database

// Schema is the full current schema, equivalent to running every migration
// against an empty database. Tests apply it directly to in-memory databases.
const Schema = `
CREATE TABLE mutations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    operation TEXT NOT NULL,
    item_id TEXT NOT NULL DEFAULT '',
    details TEXT NOT NULL DEFAULT '',
    started_at INTEGER NOT NULL,
    finished_at INTEGER,
    status TEXT NOT NULL DEFAULT 'success'
);

CREATE INDEX idx_mutations_started_at ON mutations(started_at);
`
