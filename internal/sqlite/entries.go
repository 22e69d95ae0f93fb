package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/types"
)

const (
	entryColumns = "entry_id, name, kind, payload, vector, unit, note, created_at, updated_at"

	insertEntrySQL = "INSERT INTO entries (" + entryColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	updateEntrySQL = "UPDATE entries SET name = ?, kind = ?, payload = ?, vector = ?, unit = ?, note = ?, created_at = ?, updated_at = ? WHERE entry_id = ?"
	selectEntrySQL = "SELECT " + entryColumns + " FROM entries"
)

// generateUUID generates a new UUID v7 for entry IDs.
func generateUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}

// entryArgs returns the column values of e in entryColumns order.
func entryArgs(e *types.Entry) ([]any, error) {
	payload, err := json.Marshal(e.Values)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return []any{
		e.EntryID, e.Name, string(e.Kind), string(payload), e.Vector, e.Unit, e.Note,
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateEntry converts a row selected with entryColumns into an Entry.
func hydrateEntry(row rowScanner) (*types.Entry, error) {
	var (
		e                types.Entry
		kind, payload    string
		created, updated string
	)
	if err := row.Scan(&e.EntryID, &e.Name, &kind, &payload, &e.Vector, &e.Unit, &e.Note, &created, &updated); err != nil {
		return nil, err
	}
	e.Kind = dim.Kind(kind)
	if err := json.Unmarshal([]byte(payload), &e.Values); err != nil {
		return nil, fmt.Errorf("decoding payload of %q: %w", e.Name, err)
	}
	var err error
	if e.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at of %q: %w", e.Name, err)
	}
	if e.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at of %q: %w", e.Name, err)
	}
	return &e, nil
}

// Set creates or updates an entry and persists entries.jsonl.
func (b *Backend) Set(e *types.Entry) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrSheetDetached
	}
	id, err := b.setLocked(e, false)
	if err != nil {
		return "", err
	}
	if err := b.persistLocked(); err != nil {
		return "", err
	}
	return id, nil
}

// setLocked validates and upserts e. When keepTimes is set, non-zero
// timestamps on e are kept (used by Import). The caller must hold b.mu.
func (b *Backend) setLocked(e *types.Entry, keepTimes bool) (string, error) {
	if e == nil {
		return "", types.ErrInvalidEntry
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	// rec is written back to e only once it is stored.
	rec := *e
	if rec.EntryID != "" {
		if _, err := uuid.Parse(rec.EntryID); err != nil {
			return "", fmt.Errorf("%q: %w", rec.EntryID, types.ErrInvalidID)
		}
	}

	var existingCreated string
	exists := false
	if rec.EntryID != "" {
		err := b.db.QueryRow("SELECT created_at FROM entries WHERE entry_id = ?", rec.EntryID).Scan(&existingCreated)
		exists = err == nil
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("checking entry existence: %w", err)
		}
	}

	var owner string
	err := b.db.QueryRow("SELECT entry_id FROM entries WHERE name = ?", rec.Name).Scan(&owner)
	switch {
	case err == nil && owner != rec.EntryID:
		return "", fmt.Errorf("%q: %w", rec.Name, types.ErrDuplicateName)
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("checking entry name: %w", err)
	}

	if rec.EntryID == "" {
		if rec.EntryID, err = generateUUID(); err != nil {
			return "", err
		}
	}

	now := time.Now().UTC()
	if !keepTimes || rec.CreatedAt.IsZero() {
		if exists {
			if rec.CreatedAt, err = parseTime(existingCreated); err != nil {
				return "", fmt.Errorf("parsing created_at: %w", err)
			}
		} else {
			rec.CreatedAt = now
		}
	}
	if !keepTimes || rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	args, err := entryArgs(&rec)
	if err != nil {
		return "", err
	}
	if exists {
		// Move entry_id from the front to the WHERE clause.
		_, err = b.db.Exec(updateEntrySQL, append(args[1:], args[0])...)
	} else {
		_, err = b.db.Exec(insertEntrySQL, args...)
	}
	if err != nil {
		return "", fmt.Errorf("persisting entry: %w", err)
	}
	*e = rec

	b.logger.Debug("entry saved",
		zap.String("id", rec.EntryID),
		zap.String("name", rec.Name),
		zap.String("kind", string(rec.Kind)),
		zap.Bool("created", !exists))
	return rec.EntryID, nil
}

// Get retrieves an entry by ID.
func (b *Backend) Get(id string) (*types.Entry, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	return b.getWhere("entry_id = ?", id)
}

// GetByName retrieves an entry by name.
func (b *Backend) GetByName(name string) (*types.Entry, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}
	return b.getWhere("name = ?", name)
}

func (b *Backend) getWhere(cond string, arg any) (*types.Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrSheetDetached
	}
	e, err := hydrateEntry(b.db.QueryRow(selectEntrySQL+" WHERE "+cond, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%v: %w", arg, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting entry %v: %w", arg, err)
	}
	return e, nil
}

// Delete removes an entry and persists entries.jsonl.
func (b *Backend) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrSheetDetached
	}
	res, err := b.db.Exec("DELETE FROM entries WHERE entry_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, types.ErrNotFound)
	}
	b.logger.Debug("entry deleted", zap.String("id", id))
	return b.persistLocked()
}

// List returns entries of the given kind ordered by name. An empty kind
// lists every entry.
func (b *Backend) List(kind dim.Kind) ([]*types.Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrSheetDetached
	}
	if kind != "" && !kind.Valid() {
		return nil, fmt.Errorf("list: %w", dim.ErrUnknownKind)
	}
	return b.listLocked(kind)
}

func (b *Backend) listLocked(kind dim.Kind) ([]*types.Entry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if kind == "" {
		rows, err = b.db.Query(selectEntrySQL + " ORDER BY name")
	} else {
		rows, err = b.db.Query(selectEntrySQL+" WHERE kind = ? ORDER BY name", string(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var out []*types.Entry
	for rows.Next() {
		e, err := hydrateEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return out, nil
}

// persistLocked rewrites entries.jsonl from the database. The caller must
// hold b.mu.
func (b *Backend) persistLocked() error {
	records, err := b.recordsLocked()
	if err != nil {
		return err
	}
	if err := writeJSONL(b.jsonlPath(), records); err != nil {
		return fmt.Errorf("persisting %s: %w", entriesFile, err)
	}
	return nil
}

func (b *Backend) recordsLocked() ([]json.RawMessage, error) {
	entries, err := b.listLocked("")
	if err != nil {
		return nil, err
	}
	records := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		rec, err := marshalEntry(e)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
