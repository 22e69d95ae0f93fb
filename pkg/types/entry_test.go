package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/quantity"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

func TestNewEntryKeepsUnit(t *testing.T) {
	q := quantity.Must(quantity.Must(quantity.NewMass(79000, "kg")).At("lb"))
	e := NewEntry("max_takeoff_mass", q)

	assert.Equal(t, "max_takeoff_mass", e.Name)
	assert.Equal(t, dim.KindMass, e.Kind)
	assert.Equal(t, "lb", e.Unit)
	assert.False(t, e.Vector)
	require.Len(t, e.Values, 1)
	assert.InDelta(t, 174165.5, e.Values[0], 0.1)
	assert.Empty(t, e.EntryID)
	require.NoError(t, e.Validate())
}

func TestEntryQuantity(t *testing.T) {
	e := &Entry{Name: "cruise", Kind: dim.KindVelocity, Values: []float64{450}, Unit: "kt"}

	v, err := EntryQuantity[dim.Velocity](e)
	require.NoError(t, err)
	assert.Equal(t, "m/s", v.Unit())
	assert.InDelta(t, 231.5, v.Raw(), 0.01)

	_, err = EntryQuantity[dim.Mass](e)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestEntryQuantityVector(t *testing.T) {
	e := &Entry{Name: "wind", Kind: dim.KindVelocity, Values: []float64{10, -5}, Vector: true, Unit: "m/s"}

	v, err := EntryQuantity[dim.Velocity](e)
	require.NoError(t, err)
	assert.True(t, v.IsVector())
	assert.Equal(t, []float64{10, -5}, v.Values())
	assert.Equal(t, "[10 -5] m/s", e.Display())
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr error
	}{
		{"empty name", Entry{Kind: dim.KindMass, Values: []float64{1}, Unit: "kg"}, ErrInvalidName},
		{"multi-line name", Entry{Name: "a\nb", Kind: dim.KindMass, Values: []float64{1}, Unit: "kg"}, ErrInvalidName},
		{"unknown kind", Entry{Name: "p", Kind: "momentum", Values: []float64{1}, Unit: "kg"}, ErrInvalidEntry},
		{"no values", Entry{Name: "p", Kind: dim.KindMass, Unit: "kg"}, ErrInvalidEntry},
		{"scalar with two values", Entry{Name: "p", Kind: dim.KindMass, Values: []float64{1, 2}, Unit: "kg"}, ErrInvalidEntry},
		{"unknown unit", Entry{Name: "p", Kind: dim.KindMass, Values: []float64{1}, Unit: "furlong"}, units.ErrUnknownUnit},
		{"wrong unit for kind", Entry{Name: "p", Kind: dim.KindMass, Values: []float64{1}, Unit: "m"}, ErrKindMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	ok := Entry{Name: "tank", Kind: dim.KindVolume, Values: []float64{1200}, Unit: "gal"}
	assert.NoError(t, ok.Validate())
}
