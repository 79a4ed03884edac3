package config

import (
	"fmt"
	"strings"
)

// ModelType is the structure of a decision model.
type ModelType int

const (
	DecisionTree ModelType = iota
	Markov
)

func (t ModelType) String() string {
	if t == Markov {
		return "Markov Model"
	}
	return "Decision Tree"
}

// SimulationType selects cohort or individual-level simulation.
type SimulationType int

const (
	Cohort SimulationType = iota
	MonteCarlo
)

func (s SimulationType) String() string {
	if s == MonteCarlo {
		return "Monte Carlo"
	}
	return "Cohort"
}

// Model is the unified, format-agnostic representation of a decision model
// as far as the exporter needs it.
type Model struct {
	Name       string
	Type       ModelType
	Simulation SimulationType
	Meta       Metadata

	// States are the Markov state names, in trace column order.
	States []string
	// Dimensions are the reward dimensions (e.g. cost, QALY).
	Dimensions []string

	Parameters []*Parameter
	Variables  []*Variable
	Tables     []*Table
	Formulas   []*Formula
}

// Metadata is the authoring information carried into generated headers.
type Metadata struct {
	Author          string
	Created         string
	VersionCreated  string
	Modifier        string
	Modified        string
	VersionModified string
}

// ValueKind tags the resolved type of a parameter or variable.
type ValueKind int

const (
	Double ValueKind = iota
	Integer
	Boolean
	Matrix
)

func (k ValueKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Matrix:
		return "matrix"
	default:
		return "double"
	}
}

// Value is a resolved numeric value. Only the field matching Kind is set.
type Value struct {
	Kind    ValueKind
	Double  float64
	Integer int64
	Boolean bool
	Matrix  [][]float64
}

func DoubleValue(v float64) Value { return Value{Kind: Double, Double: v} }
func IntegerValue(v int64) Value { return Value{Kind: Integer, Integer: v} }
func BooleanValue(v bool) Value { return Value{Kind: Boolean, Boolean: v} }
func MatrixValue(v [][]float64) Value { return Value{Kind: Matrix, Matrix: v} }

// Parameter is a named constant of the model.
type Parameter struct {
	Name       string
	Notes      string
	Expression string
	Value      Value
}

// Variable is per-entity state. Value holds its initial value.
type Variable struct {
	Name       string
	Notes      string
	Expression string
	Value      Value
}

// ResultType is the declared type of a formula.
type ResultType int

const (
	ResultNumber ResultType = iota
	ResultMatrix
)

// Formula is a named model expression. Person-level formulas are evaluated
// against one simulated entity.
type Formula struct {
	Name        string
	Expression  string
	PersonLevel bool
	Result      ResultType
}

// TableType is the subtype of a table.
type TableType int

const (
	LookupTable TableType = iota
	DistributionTable
	MatrixTable
)

func (t TableType) String() string {
	return [...]string{"Lookup", "Distribution", "Matrix"}[t]
}

// LookupMethod selects how lookup tables match an index.
type LookupMethod int

const (
	Exact LookupMethod = iota
	Truncate
	Interpolate
)

func (m LookupMethod) String() string {
	return [...]string{"Exact", "Truncate", "Interpolate"}[m]
}

// Interpolation is the interpolation kind of an Interpolate table.
type Interpolation int

const (
	Linear Interpolation = iota
	CubicSplines
)

func (i Interpolation) String() string {
	return [...]string{"Linear", "Cubic Splines"}[i]
}

// Extrapolation is the out-of-domain policy of an Interpolate table.
type Extrapolation int

const (
	NoExtrapolation Extrapolation = iota
	LeftOnly
	RightOnly
	BothSides
)

func (e Extrapolation) String() string {
	return [...]string{"No", "Left only", "Right only", "Both"}[e]
}

// Table is a lookup, distribution or matrix table.
type Table struct {
	Name          string
	Notes         string
	Type          TableType
	LookupMethod  LookupMethod
	Interpolation Interpolation
	Boundary      string
	Extrapolate   Extrapolation
	Headers       []string
	Data          [][]float64
	// Splines holds one spline per value column when Interpolation is
	// CubicSplines.
	Splines []*CubicSpline
}

func (t *Table) NumRows() int { return len(t.Data) }
func (t *Table) NumCols() int { return len(t.Headers) }

// UsesSplines reports whether lookups go through the spline data.
func (t *Table) UsesSplines() bool {
	return t.Type == LookupTable && t.LookupMethod == Interpolate && t.Interpolation == CubicSplines
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// CubicSpline holds fitted piecewise cubic coefficients for one column.
type CubicSpline struct {
	Knots             []float64
	KnotHeights       []float64
	Coeffs            [][]float64
	BoundaryCondition int
}

// parse helpers accept both the model-file spelling (snake_case) and the
// spelling used by the modeling tool ("Cubic Splines", "Left only").

func canon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// ParseModelType parses "decision_tree" or "markov".
func ParseModelType(s string) (ModelType, error) {
	switch canon(s) {
	case "", "decisiontree", "tree":
		return DecisionTree, nil
	case "markov", "markovmodel":
		return Markov, nil
	}
	return 0, fmt.Errorf("unknown model type %q", s)
}

// ParseSimulationType parses "cohort" or "monte_carlo".
func ParseSimulationType(s string) (SimulationType, error) {
	switch canon(s) {
	case "", "cohort":
		return Cohort, nil
	case "montecarlo", "microsimulation":
		return MonteCarlo, nil
	}
	return 0, fmt.Errorf("unknown simulation type %q", s)
}

// ParseTableType parses a table subtype.
func ParseTableType(s string) (TableType, error) {
	switch canon(s) {
	case "", "lookup":
		return LookupTable, nil
	case "distribution":
		return DistributionTable, nil
	case "matrix":
		return MatrixTable, nil
	}
	return 0, fmt.Errorf("unknown table type %q", s)
}

// ParseLookupMethod parses a lookup method.
func ParseLookupMethod(s string) (LookupMethod, error) {
	switch canon(s) {
	case "", "exact":
		return Exact, nil
	case "truncate":
		return Truncate, nil
	case "interpolate":
		return Interpolate, nil
	}
	return 0, fmt.Errorf("unknown lookup method %q", s)
}

// ParseInterpolation parses an interpolation kind.
func ParseInterpolation(s string) (Interpolation, error) {
	switch canon(s) {
	case "", "linear":
		return Linear, nil
	case "cubicsplines", "cubicspline", "spline", "splines":
		return CubicSplines, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

// ParseExtrapolation parses an extrapolation policy.
func ParseExtrapolation(s string) (Extrapolation, error) {
	switch canon(s) {
	case "", "no", "none":
		return NoExtrapolation, nil
	case "leftonly", "left":
		return LeftOnly, nil
	case "rightonly", "right":
		return RightOnly, nil
	case "both":
		return BothSides, nil
	}
	return 0, fmt.Errorf("unknown extrapolation %q", s)
}

// ParseResultType parses "number" or "matrix".
func ParseResultType(s string) (ResultType, error) {
	switch canon(s) {
	case "", "number", "double":
		return ResultNumber, nil
	case "matrix":
		return ResultMatrix, nil
	}
	return 0, fmt.Errorf("unknown formula result %q", s)
}
