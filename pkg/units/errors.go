package units

import (
	"errors"
	"fmt"
)

// Registry and algebra errors.
var (
	ErrUnknownUnit          = errors.New("unknown unit")
	ErrDimensionality       = errors.New("dimensionality mismatch")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrOffsetUnit           = fmt.Errorf("ambiguous operation with offset unit: %w", ErrUnsupportedOperation)
	ErrInvalidExpression    = fmt.Errorf("invalid unit expression: %w", ErrUnsupportedOperation)
	ErrDuplicateUnit        = errors.New("unit already defined")
	ErrInvalidDefinition    = errors.New("invalid unit definition")
)

// DimensionalityError reports a conversion between units whose signatures
// differ. It matches ErrDimensionality with errors.Is.
type DimensionalityError struct {
	From Unit
	To   Unit
}

func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("cannot convert from '%s' (%s) to '%s' (%s)",
		e.From.Symbol, e.From.Dim, e.To.Symbol, e.To.Dim)
}

// Unwrap returns ErrDimensionality.
func (e *DimensionalityError) Unwrap() error {
	return ErrDimensionality
}
