package sqlite

// Schema DDL for the entries table.
const (
	createEntries = `CREATE TABLE entries (
    entry_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    kind TEXT NOT NULL,
    payload TEXT NOT NULL,
    vector INTEGER NOT NULL DEFAULT 0,
    unit TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxEntriesName = `CREATE UNIQUE INDEX idx_entries_name ON entries(name);`
	idxEntriesKind = `CREATE INDEX idx_entries_kind ON entries(kind);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createEntries,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntriesName,
	idxEntriesKind,
}
