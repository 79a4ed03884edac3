package translate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn is returned when a table reference names a column its
	// headers do not contain.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNoTrace is returned for trace access in a model without a Markov trace.
	ErrNoTrace = errors.New("model has no Markov trace")
	// ErrArgCount is returned when a table or trace reference has the wrong
	// number of arguments.
	ErrArgCount = errors.New("wrong number of arguments")
	// ErrNotIndexed is returned when a table, function, distribution or trace
	// is used without its argument list.
	ErrNotIndexed = errors.New("table reference is missing its arguments")
	// ErrMatrixLiteral is returned for ragged or non-numeric matrix literals.
	ErrMatrixLiteral = errors.New("invalid matrix literal")
)

// Error is a malformed-expression error. It names the whole expression being
// translated and wraps the cause.
type Error struct {
	Expr string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translate %q: %v", e.Expr, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
