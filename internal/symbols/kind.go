package symbols

import "github.com/vk/modelexport/internal/config"

// Kind is the category of a scanned word. The set of implementations is
// closed; consumers switch on the concrete type.
type Kind interface {
	kind()
}

// Table is a reference to a model table.
type Table struct {
	Name    string
	Subtype config.TableType
	Headers []string
}

// Column returns the position of the named header, or -1.
func (t Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Variable is a reference to a per-entity model variable.
type Variable struct {
	Name string
}

// TraceKeyword is the reserved word giving access to the Markov trace.
type TraceKeyword struct{}

// Function is a built-in scalar function.
type Function struct {
	Spec FunctionSpec
}

// MatrixFunction is a built-in function operating on matrices.
type MatrixFunction struct {
	Name string
}

// Distribution is a built-in probability distribution.
type Distribution struct {
	Name string
}

// Constant is a named numeric constant.
type Constant struct {
	Name   string
	Target string
}

// MatrixLiteralStart marks the '[' opening a matrix literal.
type MatrixLiteralStart struct{}

// Unclassified covers operators, numeric literals and any other text that is
// passed through unchanged.
type Unclassified struct{}

func (Table) kind() {}
func (Variable) kind() {}
func (TraceKeyword) kind() {}
func (Function) kind() {}
func (MatrixFunction) kind() {}
func (Distribution) kind() {}
func (Constant) kind() {}
func (MatrixLiteralStart) kind() {}
func (Unclassified) kind() {}
