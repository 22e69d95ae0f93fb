package units

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Operand is anything that carries a tagged value. Value itself and every
// typed quantity implement it.
type Operand interface {
	Tagged() Value
}

// Value is a numeric payload tagged with a unit. The payload is either a
// scalar or a vector; vector operations are element-wise and a scalar
// operand is broadcast over a vector one. Combining two vectors of different
// lengths panics.
//
// Values are immutable: every method returns a new Value and accessors
// return copies.
type Value struct {
	data   []float64
	vector bool
	unit   Unit
}

var _ Operand = Value{}

// Scalar returns a scalar value in u.
func Scalar(x float64, u Unit) Value {
	return Value{data: []float64{x}, unit: u}
}

// Vector returns a vector value in u. xs is copied.
func Vector(xs []float64, u Unit) Value {
	return Value{data: slices.Clone(xs), vector: true, unit: u}
}

// Tagged returns v.
func (v Value) Tagged() Value {
	return v
}

// Unit returns the unit of v.
func (v Value) Unit() Unit {
	return v.unit
}

// IsZero reports whether v is the zero Value, which carries no unit.
func (v Value) IsZero() bool {
	return v.data == nil && v.unit == (Unit{})
}

// IsVector reports whether v holds a vector payload.
func (v Value) IsVector() bool {
	return v.vector
}

// Len returns the number of components; 1 for scalars.
func (v Value) Len() int {
	if !v.vector {
		return 1
	}
	return len(v.data)
}

// Raw returns the scalar payload. It returns NaN for vector values.
func (v Value) Raw() float64 {
	if v.vector {
		return math.NaN()
	}
	return v.first()
}

// Values returns a copy of the payload. Scalars yield a single element.
func (v Value) Values() []float64 {
	if !v.vector {
		return []float64{v.first()}
	}
	return slices.Clone(v.data)
}

// Magnitude returns |x| for scalars and the Euclidean norm for vectors,
// in the unit of v.
func (v Value) Magnitude() float64 {
	if !v.vector {
		return math.Abs(v.first())
	}
	return floats.Norm(v.data, 2)
}

func (v Value) first() float64 {
	if len(v.data) == 0 {
		return 0
	}
	return v.data[0]
}

func (v Value) with(data []float64, u Unit) Value {
	if !v.vector {
		return Value{data: data[:1], unit: u}
	}
	return Value{data: data, vector: true, unit: u}
}

// To converts v to the unit u. It fails with a *DimensionalityError when
// the signatures differ.
func (v Value) To(u Unit) (Value, error) {
	from := v.unit
	if !from.Compatible(u) {
		return Value{}, &DimensionalityError{From: from, To: u}
	}
	out := v.Values()
	if from.Scale != u.Scale || from.Offset != u.Offset {
		floats.AddConst(from.Offset, out)
		floats.Scale(from.Scale/u.Scale, out)
		floats.AddConst(-u.Offset, out)
	}
	return v.with(out, u), nil
}

// Mul returns the product v*o in the combined unit.
func (v Value) Mul(o Operand) (Value, error) {
	w := o.Tagged()
	if err := noOffset("multiply", v, w); err != nil {
		return Value{}, err
	}
	return combine(v, w, v.unit.mul(w.unit), mulOp), nil
}

// Div returns the quotient v/o in the combined unit.
func (v Value) Div(o Operand) (Value, error) {
	w := o.Tagged()
	if err := noOffset("divide", v, w); err != nil {
		return Value{}, err
	}
	return combine(v, w, v.unit.div(w.unit), divOp), nil
}

// Pow raises v to n.
func (v Value) Pow(n float64) (Value, error) {
	if err := noOffset("exponentiate", v); err != nil {
		return Value{}, err
	}
	out := v.Values()
	for i, x := range out {
		out[i] = math.Pow(x, n)
	}
	return v.with(out, v.unit.pow(n)), nil
}

// Scale multiplies v by the plain number k.
func (v Value) Scale(k float64) (Value, error) {
	if err := noOffset("scale", v); err != nil {
		return Value{}, err
	}
	out := v.Values()
	floats.Scale(k, out)
	return v.with(out, v.unit), nil
}

// ScaleEach multiplies v element-wise by ks. A scalar v is broadcast and the
// result is a vector.
func (v Value) ScaleEach(ks []float64) (Value, error) {
	if err := noOffset("scale", v); err != nil {
		return Value{}, err
	}
	return combine(v, Vector(ks, dimensionless), v.unit, mulOp), nil
}

// Reciprocal returns k/v in the reciprocal unit.
func (v Value) Reciprocal(k float64) (Value, error) {
	if err := noOffset("divide", v); err != nil {
		return Value{}, err
	}
	one := Unit{Symbol: "1", Scale: 1}
	return combine(Scalar(k, dimensionless), v, one.div(v.unit), divOp), nil
}

// Add returns v+o in the unit of v. o is converted first.
func (v Value) Add(o Operand) (Value, error) {
	w, err := v.align("add", o)
	if err != nil {
		return Value{}, err
	}
	return combine(v, w, v.unit, addOp), nil
}

// Sub returns v-o in the unit of v. o is converted first.
func (v Value) Sub(o Operand) (Value, error) {
	w, err := v.align("subtract", o)
	if err != nil {
		return Value{}, err
	}
	return combine(v, w, v.unit, subOp), nil
}

// Neg returns -v.
func (v Value) Neg() Value {
	out := v.Values()
	floats.Scale(-1, out)
	return v.with(out, v.unit)
}

// Abs returns the element-wise absolute value of v.
func (v Value) Abs() Value {
	out := v.Values()
	for i, x := range out {
		out[i] = math.Abs(x)
	}
	return v.with(out, v.unit)
}

func (v Value) align(op string, o Operand) (Value, error) {
	w := o.Tagged()
	if err := noOffset(op, v, w); err != nil {
		return Value{}, err
	}
	return w.To(v.unit)
}

// String renders the payload with six significant digits followed by the
// unit symbol.
func (v Value) String() string {
	return FormatNumber(v.Values(), v.vector, 'g', 6) + " " + v.unit.Symbol
}

// FormatNumber renders a payload the way Value.String does, with the given
// verb ('e', 'f', 'g') and precision.
func FormatNumber(xs []float64, vector bool, verb byte, prec int) string {
	if !vector {
		if len(xs) == 0 {
			return "0"
		}
		return strconv.FormatFloat(xs[0], verb, prec, 64)
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatFloat(x, verb, prec, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func noOffset(op string, vs ...Value) error {
	for _, v := range vs {
		if v.unit.HasOffset() {
			return fmt.Errorf("%s %q: %w", op, v.unit.Symbol, ErrOffsetUnit)
		}
	}
	return nil
}

type binaryOp int

const (
	addOp binaryOp = iota
	subOp
	mulOp
	divOp
)

func (op binaryOp) apply(x, y float64) float64 {
	switch op {
	case addOp:
		return x + y
	case subOp:
		return x - y
	case mulOp:
		return x * y
	default:
		return x / y
	}
}

// combine applies op element-wise, broadcasting scalars.
func combine(a, b Value, u Unit, op binaryOp) Value {
	switch {
	case !a.vector && !b.vector:
		return Scalar(op.apply(a.first(), b.first()), u)
	case a.vector && b.vector:
		dst := make([]float64, len(a.data))
		switch op {
		case addOp:
			floats.AddTo(dst, a.data, b.data)
		case subOp:
			floats.SubTo(dst, a.data, b.data)
		case mulOp:
			floats.MulTo(dst, a.data, b.data)
		default:
			floats.DivTo(dst, a.data, b.data)
		}
		return Value{data: dst, vector: true, unit: u}
	case a.vector:
		y := b.first()
		dst := slices.Clone(a.data)
		for i, x := range dst {
			dst[i] = op.apply(x, y)
		}
		return Value{data: dst, vector: true, unit: u}
	default:
		x := a.first()
		dst := slices.Clone(b.data)
		for i, y := range dst {
			dst[i] = op.apply(x, y)
		}
		return Value{data: dst, vector: true, unit: u}
	}
}
