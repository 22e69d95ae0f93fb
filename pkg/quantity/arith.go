package quantity

import "github.com/mesh-intelligence/quantities/pkg/units"

// Add returns q+o in the canonical unit.
func (q Quantity[D]) Add(o Quantity[D]) Quantity[D] {
	return Quantity[D]{v: mustValue(q.canonical().Add(o.canonical()))}
}

// Sub returns q-o in the canonical unit.
func (q Quantity[D]) Sub(o Quantity[D]) Quantity[D] {
	return Quantity[D]{v: mustValue(q.canonical().Sub(o.canonical()))}
}

// Scale returns q*k in the canonical unit.
func (q Quantity[D]) Scale(k float64) Quantity[D] {
	return Quantity[D]{v: mustValue(q.canonical().Scale(k))}
}

// ScaleEach multiplies q element-wise by ks. A scalar q becomes a vector.
func (q Quantity[D]) ScaleEach(ks []float64) Quantity[D] {
	return Quantity[D]{v: mustValue(q.canonical().ScaleEach(ks))}
}

// DivScalar returns q/k in the canonical unit.
func (q Quantity[D]) DivScalar(k float64) Quantity[D] {
	return Quantity[D]{v: mustValue(q.canonical().Div(units.Scalar(k, units.Dimensionless())))}
}

// Neg returns -q in the canonical unit.
func (q Quantity[D]) Neg() Quantity[D] {
	return Quantity[D]{v: q.canonical().Neg()}
}

// Abs returns |q| element-wise in the canonical unit.
func (q Quantity[D]) Abs() Quantity[D] {
	return Quantity[D]{v: q.canonical().Abs()}
}

// Ratio returns q/o as a plain number, the ratio of the canonical values.
func (q Quantity[D]) Ratio(o Quantity[D]) float64 {
	return q.CanonicalValue() / o.CanonicalValue()
}

// Mul returns the product of q, in its current unit, and o. The result has
// the combined dimension and is no longer typed; re-type it with FromValue.
// It fails with units.ErrOffsetUnit if either side is held in an offset unit.
func (q Quantity[D]) Mul(o units.Operand) (units.Value, error) {
	return q.value().Mul(o)
}

// Div returns the quotient of q and o with the combined dimension.
func (q Quantity[D]) Div(o units.Operand) (units.Value, error) {
	return q.value().Div(o)
}

// Pow raises q to n.
func (q Quantity[D]) Pow(n float64) (units.Value, error) {
	return q.value().Pow(n)
}

// Reciprocal returns k/q in the reciprocal unit.
func (q Quantity[D]) Reciprocal(k float64) (units.Value, error) {
	return q.value().Reciprocal(k)
}
