package quantity

import (
	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// Quantity is a measurement of dimension D. It wraps a tagged value from the
// unit registry, normally held in the canonical unit of D. At is the one
// operation that returns a Quantity held in another unit.
//
// Quantities are immutable values. The zero Quantity is zero in the canonical
// unit.
type Quantity[D dim.Dimension] struct {
	v units.Value
}

// New returns a scalar quantity of x in unit, stored in the canonical unit of
// D. An empty unit means the canonical unit. It fails with
// units.ErrUnknownUnit for unparseable units and with a
// *units.DimensionalityError when unit does not measure D.
func New[D dim.Dimension](x float64, unit string) (Quantity[D], error) {
	u, err := unitFor[D](unit)
	if err != nil {
		return Quantity[D]{}, err
	}
	return FromValue[D](units.Scalar(x, u))
}

// NewVector is New for a vector payload. xs is copied.
func NewVector[D dim.Dimension](xs []float64, unit string) (Quantity[D], error) {
	u, err := unitFor[D](unit)
	if err != nil {
		return Quantity[D]{}, err
	}
	return FromValue[D](units.Vector(xs, u))
}

// FromValue converts a tagged value to the canonical unit of D.
func FromValue[D dim.Dimension](v units.Operand) (Quantity[D], error) {
	c, err := v.Tagged().To(canonicalOf[D]())
	if err != nil {
		return Quantity[D]{}, err
	}
	return Quantity[D]{v: c}, nil
}

// Must returns q and panics if err is non-nil. It is meant for literals in
// tests and package-level variables.
func Must[D dim.Dimension](q Quantity[D], err error) Quantity[D] {
	if err != nil {
		panic(err)
	}
	return q
}

func unitFor[D dim.Dimension](expr string) (units.Unit, error) {
	if expr == "" {
		return canonicalOf[D](), nil
	}
	return units.Default().Parse(expr)
}

// value returns the stored value, substituting canonical zero for the zero
// Quantity.
func (q Quantity[D]) value() units.Value {
	if q.v.IsZero() {
		return units.Scalar(0, canonicalOf[D]())
	}
	return q.v
}

// canonical returns the stored value in the canonical unit.
func (q Quantity[D]) canonical() units.Value {
	return mustValue(q.value().To(canonicalOf[D]()))
}

// At returns q held in unit. The result keeps the dimension of q; use
// Canonical to return to canonical storage.
func (q Quantity[D]) At(unit string) (Quantity[D], error) {
	u, err := unitFor[D](unit)
	if err != nil {
		return Quantity[D]{}, err
	}
	v, err := q.value().To(u)
	if err != nil {
		return Quantity[D]{}, err
	}
	return Quantity[D]{v: v}, nil
}

// To is an alias for At.
func (q Quantity[D]) To(unit string) (Quantity[D], error) {
	return q.At(unit)
}

// Canonical returns q held in the canonical unit of D.
func (q Quantity[D]) Canonical() Quantity[D] {
	return Quantity[D]{v: q.canonical()}
}

// Raw returns the scalar payload in the current unit. It is NaN for vector
// quantities.
func (q Quantity[D]) Raw() float64 {
	return q.value().Raw()
}

// Values returns a copy of the payload in the current unit.
func (q Quantity[D]) Values() []float64 {
	return q.value().Values()
}

// RawIn returns the scalar payload expressed in unit.
func (q Quantity[D]) RawIn(unit string) (float64, error) {
	c, err := q.At(unit)
	if err != nil {
		return 0, err
	}
	return c.Raw(), nil
}

// ValuesIn returns the payload expressed in unit.
func (q Quantity[D]) ValuesIn(unit string) ([]float64, error) {
	c, err := q.At(unit)
	if err != nil {
		return nil, err
	}
	return c.Values(), nil
}

// Magnitude returns |x| for scalars and the Euclidean norm for vectors, in
// the current unit.
func (q Quantity[D]) Magnitude() float64 {
	return q.value().Magnitude()
}

// CanonicalValue returns the payload in the canonical unit as one float: the
// value itself for scalars, the Euclidean norm for vectors. Ratios, ordering
// and float coercion all go through it.
func (q Quantity[D]) CanonicalValue() float64 {
	c := q.canonical()
	if c.IsVector() {
		return c.Magnitude()
	}
	return c.Raw()
}

// Unit returns the symbol of the current unit.
func (q Quantity[D]) Unit() string {
	return q.value().Unit().Symbol
}

// Kind returns the dimension kind of q.
func (q Quantity[D]) Kind() dim.Kind {
	return kindOf[D]()
}

// IsVector reports whether q holds a vector payload.
func (q Quantity[D]) IsVector() bool {
	return q.v.IsVector()
}

// Tagged returns the stored value. Quantity implements units.Operand, so a
// quantity can be passed to units.Value arithmetic directly.
func (q Quantity[D]) Tagged() units.Value {
	return q.value()
}

// mustValue unwraps operations that cannot fail on canonical storage.
// Canonical units carry no offset and always match D.
func mustValue(v units.Value, err error) units.Value {
	if err != nil {
		panic("quantity: " + err.Error())
	}
	return v
}
