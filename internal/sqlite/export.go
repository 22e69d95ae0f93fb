package sqlite

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/quantities/pkg/types"
)

// Export writes every entry to w as JSON lines, ordered by name.
func (b *Backend) Export(w io.Writer) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrSheetDetached
	}
	records, err := b.recordsLocked()
	if err != nil {
		return err
	}
	return writeJSONLTo(w, records)
}

// ExportFile writes every entry to path atomically.
func (b *Backend) ExportFile(path string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrSheetDetached
	}
	records, err := b.recordsLocked()
	if err != nil {
		return err
	}
	return writeJSONL(path, records)
}

// Import reads JSON lines and upserts each entry by ID, keeping the
// timestamps recorded in the input. Lines that are not valid JSON are
// skipped; an entry that fails validation aborts the import with the entries
// before it applied.
func (b *Backend) Import(r io.Reader) (int, error) {
	records, skipped, err := readJSONL(r)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrSheetDetached
	}

	n := 0
	var importErr error
	for i, rec := range records {
		e, err := unmarshalEntry(rec)
		if err != nil {
			importErr = fmt.Errorf("record %d: %w: %w", i+1, types.ErrInvalidEntry, err)
			break
		}
		if _, err := b.setLocked(e, true); err != nil {
			importErr = fmt.Errorf("record %d: %w", i+1, err)
			break
		}
		n++
	}
	if n > 0 {
		if err := b.persistLocked(); err != nil {
			return n, err
		}
	}
	if skipped > 0 {
		b.logger.Warn("skipped malformed lines", zap.Int("count", skipped))
	}
	b.logger.Debug("entries imported", zap.Int("count", n))
	return n, importErr
}

// ImportFile imports the JSONL file at path.
func (b *Backend) ImportFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return b.Import(f)
}
