package quantity

import (
	"fmt"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// canonicalUnits holds the parsed canonical unit of every kind. It is built
// once at init; a canonical expression that fails to parse is a programming
// error.
var canonicalUnits = func() map[dim.Kind]units.Unit {
	out := make(map[dim.Kind]units.Unit, len(dim.Kinds()))
	for _, k := range dim.Kinds() {
		u, err := units.Default().Parse(k.Canonical())
		if err != nil {
			panic(fmt.Sprintf("quantity: canonical unit of %s: %v", k, err))
		}
		out[k] = u
	}
	return out
}()

// CanonicalUnit returns the parsed canonical unit of k.
func CanonicalUnit(k dim.Kind) (units.Unit, error) {
	u, ok := canonicalUnits[k]
	if !ok {
		return units.Unit{}, fmt.Errorf("%q: %w", k, dim.ErrUnknownKind)
	}
	return u, nil
}

// KindsOf lists the kinds whose canonical signature matches u, in
// declaration order. Energy and moment share a signature, so "J" yields both.
func KindsOf(u units.Unit) []dim.Kind {
	var out []dim.Kind
	for _, k := range dim.Kinds() {
		if canonicalUnits[k].Compatible(u) {
			out = append(out, k)
		}
	}
	return out
}

// Check reports whether values in u can be stored as kind k. It fails with a
// *units.DimensionalityError naming the canonical unit of k.
func Check(k dim.Kind, u units.Unit) error {
	c, err := CanonicalUnit(k)
	if err != nil {
		return err
	}
	if !c.Compatible(u) {
		return &units.DimensionalityError{From: u, To: c}
	}
	return nil
}

func kindOf[D dim.Dimension]() dim.Kind {
	var d D
	return d.Kind()
}

func canonicalOf[D dim.Dimension]() units.Unit {
	return canonicalUnits[kindOf[D]()]
}
