package quantity

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// String renders the payload in the current unit with six significant
// digits: "10 kg", "[1 2 3] m/s".
func (q Quantity[D]) String() string {
	return q.value().String()
}

// Format implements fmt.Formatter. The verbs e, E, f, F, g and G format the
// number with the given width and precision (default precision 6) and append
// the unit. %v and %s behave like %g; %#v prints GoString.
func (q Quantity[D]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			io.WriteString(f, q.GoString())
			return
		}
		verb = 'g'
	case 's':
		verb = 'g'
	case 'F':
		verb = 'f'
	case 'e', 'E', 'f', 'g', 'G':
	default:
		fmt.Fprintf(f, "%%!%c(%s)", verb, q.String())
		return
	}
	prec, ok := f.Precision()
	if !ok {
		prec = 6
	}
	v := q.value()
	num := units.FormatNumber(v.Values(), v.IsVector(), byte(verb), prec)
	if w, ok := f.Width(); ok && len(num) < w {
		pad := strings.Repeat(" ", w-len(num))
		if f.Flag('-') {
			num += pad
		} else {
			num = pad + num
		}
	}
	io.WriteString(f, num+" "+v.Unit().Symbol)
}

// GoString renders q as a constructor call, for example Mass(10, "kg").
func (q Quantity[D]) GoString() string {
	v := q.value()
	var num string
	if v.IsVector() {
		parts := make([]string, 0, v.Len())
		for _, x := range v.Values() {
			parts = append(parts, strconv.FormatFloat(x, 'g', -1, 64))
		}
		num = "[]float64{" + strings.Join(parts, ", ") + "}"
	} else {
		num = strconv.FormatFloat(v.Raw(), 'g', -1, 64)
	}
	return fmt.Sprintf("%s(%s, %q)", kindOf[D]().TypeName(), num, v.Unit().Symbol)
}

// Hash returns a hash of the kind and the canonical payload. Quantities that
// are Equal hash equal whatever unit they are held in.
func (q Quantity[D]) Hash() uint64 {
	c := q.canonical()
	d := xxhash.New()
	d.WriteString(string(kindOf[D]()))
	var buf [8]byte
	if c.IsVector() {
		d.Write([]byte{'v'})
	}
	for _, x := range c.Values() {
		if x == 0 {
			x = 0 // folds -0
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// MarshalText encodes q as "<number> <unit>" in its current unit, with full
// precision. Vectors encode as "[x y z] <unit>".
func (q Quantity[D]) MarshalText() ([]byte, error) {
	v := q.value()
	return []byte(units.FormatNumber(v.Values(), v.IsVector(), 'g', -1) + " " + v.Unit().Symbol), nil
}

// UnmarshalText decodes the form written by MarshalText. The unit may be
// omitted, meaning the canonical unit. The decoded quantity is held in the
// canonical unit.
func (q *Quantity[D]) UnmarshalText(text []byte) error {
	parsed, err := Parse[D](string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Parse reads a quantity written as "<number> <unit>" or "[x y z] <unit>",
// such as "10 lb" or "9.81 m/s**2".
func Parse[D dim.Dimension](s string) (Quantity[D], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity[D]{}, fmt.Errorf("parse %s: empty input: %w", kindOf[D]().TypeName(), ErrSyntax)
	}
	if strings.HasPrefix(s, "[") {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Quantity[D]{}, fmt.Errorf("parse %s %q: missing ']': %w", kindOf[D]().TypeName(), s, ErrSyntax)
		}
		fields := strings.Fields(strings.ReplaceAll(s[1:end], ",", " "))
		xs := make([]float64, len(fields))
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Quantity[D]{}, fmt.Errorf("parse %s %q: %w", kindOf[D]().TypeName(), s, ErrSyntax)
			}
			xs[i] = x
		}
		return NewVector[D](xs, strings.TrimSpace(s[end+1:]))
	}
	n := numberPrefix(s)
	num, unit := s[:n], s[n:]
	x, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity[D]{}, fmt.Errorf("parse %s %q: %w", kindOf[D]().TypeName(), s, ErrSyntax)
	}
	return New[D](x, strings.TrimSpace(unit))
}

// numberPrefix returns the length of the decimal literal at the start of s,
// so that "10kg", "10 kg" and "10\tkg" split alike. An exponent is taken only
// when digits follow it, leaving "2 erg" and "2em" to the unit.
func numberPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	return i
}
