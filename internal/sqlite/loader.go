package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/quantities/pkg/types"
)

// loadEntriesJSONL reads entries.jsonl into the entries table in one
// transaction. Lines that are not valid JSON are skipped and counted. Any
// other bad record aborts the load: all succeed or the table remains empty,
// so a later rewrite of the file cannot drop a record that failed to load.
func loadEntriesJSONL(db *sql.DB, path string) (loaded, skipped int, err error) {
	records, skipped, err := readJSONLFile(path)
	if err != nil {
		return 0, 0, err
	}
	if len(records) == 0 {
		return 0, skipped, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertEntrySQL)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		e, err := unmarshalEntry(rec)
		if err != nil {
			return 0, 0, fmt.Errorf("record %d: %w", i+1, err)
		}
		if e.EntryID == "" {
			return 0, 0, fmt.Errorf("record %d: %w", i+1, types.ErrInvalidID)
		}
		args, err := entryArgs(e)
		if err != nil {
			return 0, 0, fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, 0, fmt.Errorf("record %d (%s): %w", i+1, e.EntryID, err)
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, skipped, nil
}
