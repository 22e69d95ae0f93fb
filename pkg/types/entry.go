package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/quantity"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// Entry is a named quantity stored in a sheet. The payload is kept in the
// unit it was written in.
type Entry struct {
	EntryID   string    `json:"entry_id"`         // UUID v7, generated on creation.
	Name      string    `json:"name"`             // Unique name (required, one line).
	Kind      dim.Kind  `json:"kind"`             // Dimension of the quantity.
	Values    []float64 `json:"values"`           // One element for scalars.
	Vector    bool      `json:"vector,omitempty"` // Whether Values is a vector payload.
	Unit      string    `json:"unit"`             // Unit expression Values are in.
	Note      string    `json:"note,omitempty"`   // Free-form description.
	CreatedAt time.Time `json:"created_at"`       // Timestamp of creation.
	UpdatedAt time.Time `json:"updated_at"`       // Timestamp of last modification.
}

// NewEntry builds an unsaved entry from a typed quantity, keeping the unit q
// is currently held in.
func NewEntry[D dim.Dimension](name string, q quantity.Quantity[D]) *Entry {
	return &Entry{
		Name:   name,
		Kind:   q.Kind(),
		Values: q.Values(),
		Vector: q.IsVector(),
		Unit:   q.Unit(),
	}
}

// EntryQuantity returns the quantity stored in e as a Quantity[D], held in
// the canonical unit of D. Returns ErrKindMismatch if e holds another kind.
func EntryQuantity[D dim.Dimension](e *Entry) (quantity.Quantity[D], error) {
	var d D
	if e.Kind != d.Kind() {
		return quantity.Quantity[D]{}, fmt.Errorf("entry %q is %s, not %s: %w", e.Name, e.Kind, d.Kind(), ErrKindMismatch)
	}
	v, err := e.Tagged()
	if err != nil {
		return quantity.Quantity[D]{}, err
	}
	return quantity.FromValue[D](v)
}

// Tagged returns the payload of e as a tagged value in e.Unit.
func (e *Entry) Tagged() (units.Value, error) {
	u, err := units.Default().Parse(e.Unit)
	if err != nil {
		return units.Value{}, err
	}
	if e.Vector {
		return units.Vector(e.Values, u), nil
	}
	if len(e.Values) != 1 {
		return units.Value{}, fmt.Errorf("scalar entry %q has %d values: %w", e.Name, len(e.Values), ErrInvalidEntry)
	}
	return units.Scalar(e.Values[0], u), nil
}

// Validate checks the name, the kind, the payload shape and that the unit
// measures the declared kind.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" || strings.ContainsAny(e.Name, "\r\n") {
		return ErrInvalidName
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("entry %q: kind %q: %w", e.Name, e.Kind, ErrInvalidEntry)
	}
	if len(e.Values) == 0 {
		return fmt.Errorf("entry %q: no values: %w", e.Name, ErrInvalidEntry)
	}
	v, err := e.Tagged()
	if err != nil {
		return fmt.Errorf("entry %q: %w", e.Name, err)
	}
	if err := quantity.Check(e.Kind, v.Unit()); err != nil {
		return fmt.Errorf("entry %q: %w: %w", e.Name, ErrKindMismatch, err)
	}
	return nil
}

// Display renders the payload and unit, for example "79000 kg".
func (e *Entry) Display() string {
	return units.FormatNumber(e.Values, e.Vector, 'g', 6) + " " + e.Unit
}
