package config

import (
	"errors"
	"fmt"
	"go/token"
)

// Validate checks the structural invariants of the model: identifiers are
// unique Go identifiers, table shapes are rectangular and spline data is
// consistent with its table. All problems are reported together.
func (m *Model) Validate() error {
	var errs []error
	seen := make(map[string]string)
	declare := func(kind, name string) {
		if !token.IsIdentifier(name) {
			errs = append(errs, fmt.Errorf("%s %q is not a valid identifier", kind, name))
			return
		}
		if prev, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("%s %q is already declared as a %s", kind, name, prev))
			return
		}
		seen[name] = kind
	}

	for _, p := range m.Parameters {
		declare("parameter", p.Name)
	}
	for _, v := range m.Variables {
		declare("variable", v.Name)
	}
	for _, t := range m.Tables {
		declare("table", t.Name)
		if err := t.validate(); err != nil {
			errs = append(errs, &ParamError{Symbol: t.Name, Err: err})
		}
	}
	for _, f := range m.Formulas {
		declare("formula", f.Name)
		if f.Expression == "" {
			errs = append(errs, fmt.Errorf("formula %q has an empty expression", f.Name))
		}
	}
	for _, d := range m.Dimensions {
		if !token.IsIdentifier(d) {
			errs = append(errs, fmt.Errorf("dimension %q is not a valid identifier", d))
		}
	}
	if len(m.Dimensions) > 0 && len(m.States) == 0 {
		errs = append(errs, errors.New("reward dimensions require at least one state"))
	}
	return errors.Join(errs...)
}

func (t *Table) validate() error {
	if len(t.Headers) == 0 {
		return errors.New("table has no headers")
	}
	if len(t.Data) == 0 {
		return errors.New("table has no rows")
	}
	for r, row := range t.Data {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("row %d has %d values, want %d", r, len(row), len(t.Headers))
		}
	}
	if t.Type == LookupTable && t.NumCols() < 2 {
		return errors.New("lookup table needs a key column and at least one value column")
	}
	if t.Type == LookupTable && t.LookupMethod != Exact {
		for r := 1; r < len(t.Data); r++ {
			if t.Data[r][0] <= t.Data[r-1][0] {
				return fmt.Errorf("key column is not strictly increasing at row %d", r)
			}
		}
	}
	if !t.UsesSplines() {
		return nil
	}
	if len(t.Splines) != t.NumCols()-1 {
		return fmt.Errorf("table has %d splines, want one per value column (%d)", len(t.Splines), t.NumCols()-1)
	}
	for i, s := range t.Splines {
		if err := s.validate(); err != nil {
			return fmt.Errorf("spline for column %q: %w", t.Headers[i+1], err)
		}
	}
	return nil
}

func (s *CubicSpline) validate() error {
	if s == nil {
		return errors.New("missing spline")
	}
	n := len(s.Knots)
	if n < 2 {
		return errors.New("spline needs at least two knots")
	}
	if len(s.KnotHeights) != n {
		return fmt.Errorf("%d knot heights for %d knots", len(s.KnotHeights), n)
	}
	if len(s.Coeffs) != n-1 {
		return fmt.Errorf("%d coefficient rows for %d segments", len(s.Coeffs), n-1)
	}
	for i, c := range s.Coeffs {
		if len(c) != 4 {
			return fmt.Errorf("segment %d has %d coefficients, want 4", i, len(c))
		}
	}
	for i := 1; i < n; i++ {
		if s.Knots[i] <= s.Knots[i-1] {
			return fmt.Errorf("knots are not strictly increasing at %d", i)
		}
	}
	if s.BoundaryCondition < 0 || s.BoundaryCondition > 3 {
		return fmt.Errorf("unknown boundary condition %d", s.BoundaryCondition)
	}
	return nil
}
