package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEquivalentSpellings(t *testing.T) {
	r := NewRegistry()

	groups := [][]string{
		{"N·m", "N*m", "N m", "N⋅m", "newton*meter", "J"},
		{"kg/m³", "kg/m**3", "kg m^-3", "kg*m⁻³", "kg/(m*m*m)"},
		{"m²", "m**2", "m^2", "m m"},
		{"A·h", "A*h", "Ah", "ampere*hour"},
		{"rad/s", "1/s", "Hz", "s⁻¹", "s**-1", "s^(-1)"},
		{"mA*h", "mAh", "milliampere*hour"},
	}
	for _, group := range groups {
		t.Run(group[0], func(t *testing.T) {
			want, err := r.Parse(group[0])
			require.NoError(t, err)
			for _, expr := range group[1:] {
				got, err := r.Parse(expr)
				require.NoError(t, err, expr)
				assert.InDelta(t, want.Scale, got.Scale, want.Scale*1e-12, expr)
				assert.True(t, want.Dim.Equal(got.Dim), "%s: %s != %s", expr, got.Dim, want.Dim)
			}
		})
	}
}

func TestParseScales(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		expr  string
		scale float64
	}{
		{"kg", 1},
		{"g", 1e-3},
		{"mg", 1e-6},
		{"km", 1e3},
		{"µs", 1e-6},
		{"lb", 0.45359237},
		{"ft/s", 0.3048},
		{"mA*h", 3.6},
		{"kWh", 3.6e6},
		{"hPa", 100},
		{"L", 1e-3},
		{"1000 kg", 1000},
		{"lbf", 4.4482216152605},
		{"hp", 745.69987158227022},
		{"psi", 6894.757293168361},
		{"kt", 1852.0 / 3600},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			u, err := r.Parse(tt.expr)
			require.NoError(t, err)
			assert.InEpsilon(t, tt.scale, u.Scale, 1e-9)
			assert.Equal(t, tt.expr, u.Symbol)
		})
	}
}

func TestParseSignatures(t *testing.T) {
	r := NewRegistry()

	force, err := r.Parse("N")
	require.NoError(t, err)
	assert.Equal(t, Signature{Length: 1, Mass: 1, Time: -2}, force.Dim)
	assert.Equal(t, "[length] * [mass] / [time] ** 2", force.Dim.String())

	rad, err := r.Parse("rad")
	require.NoError(t, err)
	assert.True(t, rad.Dim.Dimensionless())
	assert.Equal(t, "dimensionless", rad.Dim.String())

	empty, err := r.Parse("  ")
	require.NoError(t, err)
	assert.Equal(t, Dimensionless(), empty)
}

func TestParseErrors(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		expr    string
		wantErr error
	}{
		{"furlong", ErrUnknownUnit},
		{"kg/furlong", ErrUnknownUnit},
		{"mkg", ErrUnknownUnit},
		{"kft", ErrUnknownUnit},
		{"kg/", ErrInvalidExpression},
		{"(kg", ErrInvalidExpression},
		{"kg)", ErrInvalidExpression},
		{"kg**", ErrInvalidExpression},
		{"kg$", ErrInvalidExpression},
		{"m-1", ErrInvalidExpression},
		{"kg m-3", ErrInvalidExpression},
		{"-2 m", ErrInvalidExpression},
		{"m*+2", ErrInvalidExpression},
		{"degF*s", ErrOffsetUnit},
		{"degC**2", ErrOffsetUnit},
		{"2 degC", ErrOffsetUnit},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := r.Parse(tt.expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.True(t, errors.Is(ErrOffsetUnit, ErrUnsupportedOperation))
}

func TestParseOffsetUnitAlone(t *testing.T) {
	r := NewRegistry()

	for _, expr := range []string{"degC", "°C", "(degF)", "degF"} {
		u, err := r.Parse(expr)
		require.NoError(t, err, expr)
		assert.True(t, u.HasOffset(), expr)
	}
}

func TestExponentSymbol(t *testing.T) {
	assert.Equal(t, "²", exponentSymbol(2))
	assert.Equal(t, "⁻¹", exponentSymbol(-1))
	assert.Equal(t, "¹²", exponentSymbol(12))
	assert.Equal(t, "**0.5", exponentSymbol(0.5))

	n, err := parseSuperscript([]rune("⁻¹²"))
	require.NoError(t, err)
	assert.Equal(t, -12.0, n)
}
