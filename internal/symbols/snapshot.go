package symbols

import (
	"strings"

	"github.com/vk/modelexport/internal/config"
)

// TraceWord is the reserved word for Markov trace access.
const TraceWord = "trace"

// Snapshot is an immutable copy of the model's symbol tables, taken once per
// export so classification cannot change while a model is being translated.
type Snapshot struct {
	tables    map[string]Table
	variables map[string]bool
	declared  map[string]bool
	hasTrace  bool
}

// NewSnapshot copies the symbols of m.
func NewSnapshot(m *config.Model) *Snapshot {
	s := &Snapshot{
		tables:    make(map[string]Table, len(m.Tables)),
		variables: make(map[string]bool, len(m.Variables)),
		declared:  make(map[string]bool),
		hasTrace:  m.Type == config.Markov && len(m.States) > 0 && len(m.Dimensions) > 0,
	}
	for _, t := range m.Tables {
		s.tables[t.Name] = Table{
			Name:    t.Name,
			Subtype: t.Type,
			Headers: append([]string(nil), t.Headers...),
		}
	}
	for _, v := range m.Variables {
		s.variables[v.Name] = true
		s.declared[v.Name] = true
	}
	for _, t := range m.Tables {
		s.declared[t.Name] = true
	}
	for _, p := range m.Parameters {
		s.declared[p.Name] = true
	}
	for _, f := range m.Formulas {
		s.declared[f.Name] = true
	}
	return s
}

// Declared reports whether the model defines name as a parameter, variable,
// table or formula.
func (s *Snapshot) Declared(name string) bool {
	return s.declared[name]
}

// HasTrace reports whether the model records a Markov trace.
func (s *Snapshot) HasTrace() bool {
	return s.hasTrace
}

// Table returns the table with the given name.
func (s *Snapshot) Table(name string) (Table, bool) {
	t, ok := s.tables[name]
	return t, ok
}

// Classify returns the kind of word. rest is the unscanned remainder of the
// expression starting at word. The first matching category wins: tables,
// variables, the trace keyword, functions, matrix functions, distributions,
// constants, then matrix literals.
func (s *Snapshot) Classify(word, rest string) Kind {
	if t, ok := s.tables[word]; ok {
		return t
	}
	if s.variables[word] {
		return Variable{Name: word}
	}
	if word == TraceWord {
		return TraceKeyword{}
	}
	if f, ok := functions[word]; ok {
		return Function{Spec: f}
	}
	if matrixFunctions[word] {
		return MatrixFunction{Name: word}
	}
	if distributions[word] {
		return Distribution{Name: word}
	}
	if target, ok := constants[word]; ok {
		return Constant{Name: word, Target: target}
	}
	if word == "" && strings.HasPrefix(rest, "[") {
		return MatrixLiteralStart{}
	}
	return Unclassified{}
}
