package config

import "fmt"

// ParamError reports a parameter, variable or table whose value could not be
// resolved or is outside its valid domain.
type ParamError struct {
	Symbol string
	Err    error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %v", e.Symbol, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}
