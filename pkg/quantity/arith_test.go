package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

func TestSameDimensionArithmetic(t *testing.T) {
	a := Must(NewMass(2, "kg"))
	b := Must(NewMass(500, "g"))

	sum := a.Add(b)
	assert.Equal(t, "kg", sum.Unit())
	assert.InDelta(t, a.CanonicalValue()+b.CanonicalValue(), sum.CanonicalValue(), 1e-12)

	diff := a.Sub(b)
	assert.InDelta(t, 1.5, diff.CanonicalValue(), 1e-12)

	// Operands held in other units are normalized first.
	lb := Must(a.At("lb"))
	assert.InDelta(t, 4, lb.Add(a).CanonicalValue(), 1e-12)
	assert.Equal(t, "kg", lb.Add(a).Unit())
}

func TestScaling(t *testing.T) {
	a := Must(NewLength(3, "ft"))
	for _, k := range []float64{0, 1, -2, 0.5, 1e6} {
		got := a.Scale(k)
		assert.InDelta(t, a.CanonicalValue()*k, got.CanonicalValue(), 1e-9)
		assert.Equal(t, "m", got.Unit())
	}

	assert.Equal(t, 10.0, Must(NewMass(30, "kg")).DivScalar(3).Raw())
	assert.Equal(t, "kg", Must(NewMass(30, "kg")).DivScalar(3).Unit())

	each := Must(NewForce(2, "N")).ScaleEach([]float64{1, 2, 3})
	assert.True(t, each.IsVector())
	assert.Equal(t, []float64{2, 4, 6}, each.Values())
}

func TestNegAbs(t *testing.T) {
	q := Must(NewTemperature(-40, "degC"))
	neg := q.Neg()
	assert.Equal(t, "K", neg.Unit())
	assert.InDelta(t, -233.15, neg.Raw(), 1e-9)

	m := Must(NewMass(-10, "kg"))
	assert.Equal(t, 10.0, m.Abs().Raw())
	assert.Equal(t, 10.0, m.Neg().Raw())
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 3.0, Must(NewMass(30, "kg")).Ratio(Must(NewMass(10, "kg"))))

	ft := Must(NewLength(1, "ft"))
	in := Must(NewLength(1, "in"))
	assert.InDelta(t, 12, ft.Ratio(in), 1e-12)

	p := Must(NewPower(1, "kW"))
	q := Must(NewPower(1, "hp"))
	assert.InDelta(t, p.CanonicalValue()/q.CanonicalValue(), p.Ratio(q), 1e-15)
}

func TestCrossDimensionProducts(t *testing.T) {
	force := Must(NewForce(10, "N"))
	arm := Must(NewLength(2, "m"))

	v, err := force.Mul(arm)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v.Raw())
	assert.Equal(t, "N·m", v.Unit().Symbol)

	torque, err := FromValue[dim.Moment](v)
	require.NoError(t, err)
	assert.Equal(t, 20.0, torque.Raw())

	work, err := FromValue[dim.Energy](v)
	require.NoError(t, err)
	assert.Equal(t, "J", work.Unit())

	dist := Must(NewLength(100, "m"))
	dur := Must(NewTime(10, "s"))
	speed, err := dist.Div(dur)
	require.NoError(t, err)
	vel, err := FromValue[dim.Velocity](speed)
	require.NoError(t, err)
	assert.Equal(t, 10.0, vel.Raw())

	side := Must(NewLength(3, "m"))
	sq, err := side.Pow(2)
	require.NoError(t, err)
	area, err := FromValue[dim.Area](sq)
	require.NoError(t, err)
	assert.Equal(t, 9.0, area.Raw())

	period := Must(NewTime(4, "s"))
	inv, err := period.Reciprocal(1)
	require.NoError(t, err)
	omega, err := FromValue[dim.AngularVelocity](inv)
	require.NoError(t, err)
	assert.Equal(t, 0.25, omega.Raw())

	k, err := force.Mul(units.Scalar(3, units.Dimensionless()))
	require.NoError(t, err)
	assert.Equal(t, 30.0, k.Raw())
	assert.Equal(t, "N", k.Unit().Symbol)
}

func TestProductsUseCurrentUnit(t *testing.T) {
	ft := Must(Must(NewLength(1, "m")).At("ft"))
	v, err := ft.Mul(ft)
	require.NoError(t, err)
	assert.Equal(t, "ft·ft", v.Unit().Symbol)

	a, err := FromValue[dim.Area](v)
	require.NoError(t, err)
	assert.InDelta(t, 1, a.Raw(), 1e-12)
}

func TestOffsetUnitProducts(t *testing.T) {
	c := Must(Must(NewTemperature(300, "")).At("degC"))
	_, err := c.Mul(Must(NewTime(1, "s")))
	assert.ErrorIs(t, err, units.ErrOffsetUnit)
	_, err = c.Pow(2)
	assert.ErrorIs(t, err, units.ErrUnsupportedOperation)

	// Canonical storage is Kelvin, so the same temperature multiplies.
	_, err = c.Canonical().Mul(Must(NewTime(1, "s")))
	assert.NoError(t, err)
}

func TestVectorArithmetic(t *testing.T) {
	a := Must(NewVector[dim.Force]([]float64{1, 2, 3}, "N"))
	b := Must(NewVector[dim.Force]([]float64{1, 1, 1}, "kN"))

	assert.Equal(t, []float64{1001, 1002, 1003}, a.Add(b).Values())
	assert.Equal(t, []float64{2, 4, 6}, a.Scale(2).Values())
	assert.Equal(t, []float64{-1, -2, -3}, a.Neg().Values())

	shift := Must(NewForce(1, "N"))
	assert.Equal(t, []float64{2, 3, 4}, a.Add(shift).Values())

	assert.Panics(t, func() {
		a.Add(Must(NewVector[dim.Force]([]float64{1, 2}, "N")))
	})
}
