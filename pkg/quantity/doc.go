// Package quantity provides physical quantities that carry their dimension in
// the type system.
//
// A Quantity[D] stores its payload in the canonical SI unit of D (see
// dim.Kind.Canonical) and converts to any compatible unit on demand:
//
//	m, err := quantity.NewMass(1000, "lb")
//	kg := m.Raw()                    // 453.59237
//	lb, err := m.RawIn("lb")         // 1000
//	total := m.Add(quantity.Must(quantity.NewMass(1, "kg")))
//
// Adding, subtracting and comparing are only defined between quantities of
// the same dimension; mixing dimensions does not compile. Products,
// quotients and powers change the dimension and return an untyped
// units.Value, which FromValue can re-type:
//
//	f := quantity.Must(quantity.NewForce(10, "N"))
//	arm := quantity.Must(quantity.NewLength(2, "m"))
//	v, err := f.Mul(arm)                          // 20 N·m
//	torque, err := quantity.FromValue[dim.Moment](v)
//
// Values may be scalars or vectors; vector operations are element-wise and
// Magnitude reduces a vector to its Euclidean norm.
package quantity
