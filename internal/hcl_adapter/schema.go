package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode every top-level attribute and block of a model
// file. Top-level attributes may appear in only one of the loaded files.
type fileRoot struct {
	Name       string       `hcl:"name,optional"`
	Type       string       `hcl:"type,optional"`
	Simulation string       `hcl:"simulation,optional"`
	States     []string     `hcl:"states,optional"`
	Dimensions []string     `hcl:"dimensions,optional"`
	Meta       *Meta        `hcl:"meta,block"`
	Parameters []*Parameter `hcl:"parameter,block"`
	Variables  []*Variable  `hcl:"variable,block"`
	Tables     []*Table     `hcl:"table,block"`
	Formulas   []*Formula   `hcl:"formula,block"`
}

// Meta maps to a `meta` block.
type Meta struct {
	Author          string `hcl:"author,optional"`
	Created         string `hcl:"created,optional"`
	VersionCreated  string `hcl:"version_created,optional"`
	Modifier        string `hcl:"modifier,optional"`
	Modified        string `hcl:"modified,optional"`
	VersionModified string `hcl:"version_modified,optional"`
}

// Parameter maps to a `parameter "name"` block. When Value is omitted it is
// resolved from Expression.
type Parameter struct {
	Name       string         `hcl:"name,label"`
	Expression string         `hcl:"expression"`
	Notes      string         `hcl:"notes,optional"`
	Value      hcl.Expression `hcl:"value,optional"`
}

// Variable maps to a `variable "name"` block.
type Variable struct {
	Name       string         `hcl:"name,label"`
	Expression string         `hcl:"expression"`
	Notes      string         `hcl:"notes,optional"`
	Value      hcl.Expression `hcl:"value,optional"`
}

// Table maps to a `table "name"` block.
type Table struct {
	Name          string      `hcl:"name,label"`
	Type          string      `hcl:"type"`
	Notes         string      `hcl:"notes,optional"`
	LookupMethod  string      `hcl:"lookup_method,optional"`
	Interpolation string      `hcl:"interpolation,optional"`
	Boundary      string      `hcl:"boundary,optional"`
	Extrapolate   string      `hcl:"extrapolate,optional"`
	Headers       []string    `hcl:"headers"`
	Data          [][]float64 `hcl:"data"`
	Splines       []*Spline   `hcl:"spline,block"`
}

// Spline maps to a `spline` block inside a table, one per value column.
type Spline struct {
	Knots             []float64   `hcl:"knots"`
	KnotHeights       []float64   `hcl:"knot_heights"`
	Coefficients      [][]float64 `hcl:"coefficients"`
	BoundaryCondition int         `hcl:"boundary_condition,optional"`
}

// Formula maps to a `formula "name"` block.
type Formula struct {
	Name        string `hcl:"name,label"`
	Expression  string `hcl:"expression"`
	PersonLevel bool   `hcl:"person_level,optional"`
	Result      string `hcl:"result,optional"`
}
