package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/types"
)

// entryJSON is one line of entries.jsonl.
type entryJSON struct {
	EntryID   string    `json:"entry_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Values    []float64 `json:"values"`
	Vector    bool      `json:"vector,omitempty"`
	Unit      string    `json:"unit"`
	Note      string    `json:"note,omitempty"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

func toEntryJSON(e *types.Entry) entryJSON {
	return entryJSON{
		EntryID:   e.EntryID,
		Name:      e.Name,
		Kind:      string(e.Kind),
		Values:    e.Values,
		Vector:    e.Vector,
		Unit:      e.Unit,
		Note:      e.Note,
		CreatedAt: formatTime(e.CreatedAt),
		UpdatedAt: formatTime(e.UpdatedAt),
	}
}

func (r entryJSON) entry() (*types.Entry, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &types.Entry{
		EntryID:   r.EntryID,
		Name:      r.Name,
		Kind:      dim.Kind(r.Kind),
		Values:    r.Values,
		Vector:    r.Vector,
		Unit:      r.Unit,
		Note:      r.Note,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func marshalEntry(e *types.Entry) (json.RawMessage, error) {
	data, err := json.Marshal(toEntryJSON(e))
	if err != nil {
		return nil, fmt.Errorf("encoding entry %q: %w", e.Name, err)
	}
	return data, nil
}

func unmarshalEntry(rec json.RawMessage) (*types.Entry, error) {
	var r entryJSON
	if err := json.Unmarshal(rec, &r); err != nil {
		return nil, err
	}
	return r.entry()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
