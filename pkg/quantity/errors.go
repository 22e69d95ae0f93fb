package quantity

import "errors"

// ErrSyntax is returned by Parse and UnmarshalText for malformed input.
var ErrSyntax = errors.New("malformed quantity")
