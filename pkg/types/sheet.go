package types

import (
	"errors"
	"io"

	"github.com/mesh-intelligence/quantities/pkg/dim"
)

// Sheet stores named quantities. Callers attach to a backend, read and write
// entries, and detach when done.
type Sheet interface {
	// Attach connects the Sheet to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, every other operation returns ErrSheetDetached.
	Detach() error

	// Set creates or updates an entry. When e.EntryID is empty a new UUID v7
	// is generated and written back to e. Returns the ID used.
	// Returns ErrDuplicateName if another entry already has e.Name.
	Set(e *Entry) (string, error)

	// Get retrieves the entry with the given ID.
	// Returns ErrNotFound if no entry exists with that ID.
	Get(id string) (*Entry, error)

	// GetByName retrieves the entry with the given name.
	GetByName(name string) (*Entry, error)

	// Delete removes the entry with the given ID.
	Delete(id string) error

	// List returns the entries of the given kind ordered by name. An empty
	// kind lists every entry.
	List(kind dim.Kind) ([]*Entry, error)

	// Export writes every entry to w as JSON lines.
	Export(w io.Writer) error

	// Import reads JSON lines written by Export and upserts each entry by
	// ID. Returns the number of entries read.
	Import(r io.Reader) (int, error)
}

// Sheet lifecycle errors.
var (
	ErrSheetDetached   = errors.New("sheet is detached")
	ErrAlreadyAttached = errors.New("sheet is already attached")
)

// Entry operation errors.
var (
	ErrNotFound      = errors.New("entry not found")
	ErrInvalidID     = errors.New("invalid entry ID")
	ErrInvalidName   = errors.New("invalid name")
	ErrDuplicateName = errors.New("name already in use")
	ErrInvalidEntry  = errors.New("invalid entry")
	ErrKindMismatch  = errors.New("dimension kind mismatch")
)
