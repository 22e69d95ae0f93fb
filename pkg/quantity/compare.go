package quantity

import "cmp"

// Equal reports whether q and o hold the same canonical payload. Units do
// not matter: 1 kg equals 1000 g.
func (q Quantity[D]) Equal(o Quantity[D]) bool {
	a, b := q.canonical(), o.canonical()
	if a.IsVector() != b.IsVector() || a.Len() != b.Len() {
		return false
	}
	bs := b.Values()
	for i, x := range a.Values() {
		if x != bs[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or +1 comparing canonical values. Vectors compare
// by their L2 norm, so Compare can return 0 for quantities that are not
// Equal: [3 4] m and 5 m. Do not deduplicate on Compare == 0.
func (q Quantity[D]) Compare(o Quantity[D]) int {
	return cmp.Compare(q.CanonicalValue(), o.CanonicalValue())
}

// Less reports whether q < o.
func (q Quantity[D]) Less(o Quantity[D]) bool {
	return q.CanonicalValue() < o.CanonicalValue()
}

// LessEq reports whether q <= o.
func (q Quantity[D]) LessEq(o Quantity[D]) bool {
	return q.CanonicalValue() <= o.CanonicalValue()
}

// Greater reports whether q > o.
func (q Quantity[D]) Greater(o Quantity[D]) bool {
	return q.CanonicalValue() > o.CanonicalValue()
}

// GreaterEq reports whether q >= o.
func (q Quantity[D]) GreaterEq(o Quantity[D]) bool {
	return q.CanonicalValue() >= o.CanonicalValue()
}
