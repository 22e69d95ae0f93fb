package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mesh-intelligence/quantities/pkg/dim"
	"github.com/mesh-intelligence/quantities/pkg/quantity"
	"github.com/mesh-intelligence/quantities/pkg/types"
	"github.com/mesh-intelligence/quantities/pkg/units"
)

// newPrinter returns a number printer for the BCP 47 tag locale.
func newPrinter(locale string) (*message.Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("config key %q: %w", cfgKeyLocale, err)
	}
	return message.NewPrinter(tag), nil
}

// formatNumbers renders a payload with prec significant digits using the
// locale's separators. Vectors are bracketed.
func (a *app) formatNumbers(xs []float64, vector bool, prec int) string {
	if !vector {
		if len(xs) == 0 {
			return a.printer.Sprintf("%.*g", prec, 0.0)
		}
		return a.printer.Sprintf("%.*g", prec, xs[0])
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = a.printer.Sprintf("%.*g", prec, x)
	}
	return "[" + strings.Join(parts, "; ") + "]"
}

// writeJSON writes v to w as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return systemError(fmt.Errorf("marshal output: %w", err))
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseNumbers reads a command-line value: a plain number such as "1.5" or
// a vector such as "[1, 2, 3]" or "1,2,3".
func parseNumbers(s string) ([]float64, bool, error) {
	s = strings.TrimSpace(s)
	inner, bracketed := strings.CutPrefix(s, "[")
	if bracketed {
		var ok bool
		if inner, ok = strings.CutSuffix(inner, "]"); !ok {
			return nil, false, fmt.Errorf("value %q: missing ']': %w", s, quantity.ErrSyntax)
		}
	}
	if !bracketed && !strings.Contains(s, ",") {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false, fmt.Errorf("value %q: %w", s, quantity.ErrSyntax)
		}
		return []float64{x}, false, nil
	}

	fields := strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, false, fmt.Errorf("value %q: empty vector: %w", s, quantity.ErrSyntax)
	}
	xs := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false, fmt.Errorf("value %q: component %q: %w", s, f, quantity.ErrSyntax)
		}
		xs[i] = x
	}
	return xs, true, nil
}

// userErrors are the failures caused by input rather than by the
// environment.
var userErrors = []error{
	units.ErrUnknownUnit,
	units.ErrDimensionality,
	units.ErrUnsupportedOperation,
	units.ErrDuplicateUnit,
	units.ErrInvalidDefinition,
	dim.ErrUnknownKind,
	quantity.ErrSyntax,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidName,
	types.ErrDuplicateName,
	types.ErrInvalidEntry,
	types.ErrKindMismatch,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	fs.ErrNotExist,
}

// classify returns err unchanged when it is a user error and marks it as a
// system error otherwise.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return err
		}
	}
	return systemError(err)
}
