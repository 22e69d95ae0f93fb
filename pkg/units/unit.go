package units

import (
	"math"
	"strconv"
	"strings"
)

// Base dimensions, in signature order.
const (
	Length = iota
	Mass
	Time
	Temperature
	Current
	Amount
	Luminosity

	numBase
)

var baseNames = [numBase]string{
	Length:      "length",
	Mass:        "mass",
	Time:        "time",
	Temperature: "temperature",
	Current:     "current",
	Amount:      "substance",
	Luminosity:  "luminosity",
}

// exponentTolerance absorbs rounding in fractional powers (for example the
// square root of an area).
const exponentTolerance = 1e-9

// Signature holds the exponents of a unit over the base dimensions.
// The zero Signature is dimensionless.
type Signature [numBase]float64

// Base returns the signature of a single base dimension.
func Base(d int) Signature {
	var s Signature
	s[d] = 1
	return s
}

// Mul returns the signature of a product.
func (s Signature) Mul(o Signature) Signature {
	var out Signature
	for i := range s {
		out[i] = s[i] + o[i]
	}
	return out
}

// Div returns the signature of a quotient.
func (s Signature) Div(o Signature) Signature {
	var out Signature
	for i := range s {
		out[i] = s[i] - o[i]
	}
	return out
}

// Pow returns the signature raised to n.
func (s Signature) Pow(n float64) Signature {
	var out Signature
	for i := range s {
		out[i] = s[i] * n
	}
	return out
}

// Equal reports whether two signatures have the same exponents.
func (s Signature) Equal(o Signature) bool {
	for i := range s {
		if math.Abs(s[i]-o[i]) > exponentTolerance {
			return false
		}
	}
	return true
}

// Dimensionless reports whether every exponent is zero.
func (s Signature) Dimensionless() bool {
	return s.Equal(Signature{})
}

// String renders the signature as "[mass] * [length] / [time] ** 2".
func (s Signature) String() string {
	var num, den []string
	for i, e := range s {
		if math.Abs(e) <= exponentTolerance {
			continue
		}
		term := "[" + baseNames[i] + "]"
		if a := math.Abs(e); math.Abs(a-1) > exponentTolerance {
			term += " ** " + strconv.FormatFloat(a, 'g', -1, 64)
		}
		if e > 0 {
			num = append(num, term)
		} else {
			den = append(den, term)
		}
	}
	if len(num) == 0 && len(den) == 0 {
		return "dimensionless"
	}
	out := strings.Join(num, " * ")
	if len(num) == 0 {
		out = "1"
	}
	if len(den) > 0 {
		out += " / " + strings.Join(den, " / ")
	}
	return out
}

// Unit describes a parsed unit: its display symbol, its scale relative to
// the SI base units, an additive offset for offset temperature scales, and its
// dimensional signature.
//
// A value x in the unit corresponds to (x + Offset) * Scale in SI base units.
type Unit struct {
	Symbol string
	Scale  float64
	Offset float64
	Dim    Signature
}

// dimensionless is the unit of plain numbers.
var dimensionless = Unit{Symbol: "dimensionless", Scale: 1}

// Dimensionless returns the unit of plain numbers.
func Dimensionless() Unit {
	return dimensionless
}

// HasOffset reports whether the unit is an offset scale such as degC.
func (u Unit) HasOffset() bool {
	return u.Offset != 0
}

// Compatible reports whether values in u can be converted to o.
func (u Unit) Compatible(o Unit) bool {
	return u.Dim.Equal(o.Dim)
}

func (u Unit) String() string {
	return u.Symbol
}

// plain reports whether u is the unit of plain numbers.
func (u Unit) plain() bool {
	return u.Symbol == dimensionless.Symbol && u.Scale == 1 && u.Dim.Dimensionless()
}

// toBase converts x from u to SI base units.
func (u Unit) toBase(x float64) float64 {
	return (x + u.Offset) * u.Scale
}

// mul combines two units into their product.
func (u Unit) mul(o Unit) Unit {
	switch {
	case o.plain():
		return Unit{Symbol: u.Symbol, Scale: u.Scale, Dim: u.Dim}
	case u.plain():
		return Unit{Symbol: o.Symbol, Scale: o.Scale, Dim: o.Dim}
	}
	return Unit{
		Symbol: group(u.Symbol) + "·" + group(o.Symbol),
		Scale:  u.Scale * o.Scale,
		Dim:    u.Dim.Mul(o.Dim),
	}
}

// div combines two units into their quotient.
func (u Unit) div(o Unit) Unit {
	if o.plain() {
		return Unit{Symbol: u.Symbol, Scale: u.Scale, Dim: u.Dim}
	}
	return Unit{
		Symbol: group(u.Symbol) + "/" + wrap(o.Symbol),
		Scale:  u.Scale / o.Scale,
		Dim:    u.Dim.Div(o.Dim),
	}
}

// pow raises the unit to n.
func (u Unit) pow(n float64) Unit {
	return Unit{
		Symbol: wrap(u.Symbol) + exponentSymbol(n),
		Scale:  math.Pow(u.Scale, n),
		Dim:    u.Dim.Pow(n),
	}
}

// group parenthesizes a symbol that contains a quotient so that it can be
// juxtaposed with another factor.
func group(sym string) string {
	if strings.ContainsAny(sym, "/ ") {
		return "(" + sym + ")"
	}
	return sym
}

// wrap parenthesizes any compound symbol.
func wrap(sym string) string {
	if strings.ContainsAny(sym, "*·⋅/^ ") || strings.ContainsAny(sym, superscriptDigits) {
		return "(" + sym + ")"
	}
	return sym
}

const superscriptDigits = "⁰¹²³⁴⁵⁶⁷⁸⁹⁻"

var superscriptRunes = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

// exponentSymbol renders integral exponents as superscripts and anything
// else with "**".
func exponentSymbol(n float64) string {
	if n != math.Trunc(n) || math.Abs(n) > 99 {
		return "**" + strconv.FormatFloat(n, 'g', -1, 64)
	}
	var b strings.Builder
	for _, r := range strconv.Itoa(int(n)) {
		if r == '-' {
			b.WriteRune('⁻')
			continue
		}
		b.WriteRune(superscriptRunes[r-'0'])
	}
	return b.String()
}
