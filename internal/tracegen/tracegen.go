// Package tracegen emits the Markov trace of a generated program: a typed
// wrapper around the runtime Trace with one named reward pair per dimension,
// and the package-level trace the model's expressions refer to.
package tracegen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode/utf8"

	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/translate"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FileName is the file holding the generated wrapper.
const FileName = "markov_trace.go"

// TypeName and ConstructorName are the generated wrapper declarations.
const (
	TypeName        = "MarkovTrace"
	ConstructorName = "NewMarkovTrace"
)

// Names already taken inside the generated Update method.
var taken = map[string]bool{"prev": true, "m": true}

// Param is the pair of Update arguments carrying one dimension's reward.
type Param struct {
	Dimension  string
	Reward     string
	Discounted string
}

// Generator emits the trace of one model.
type Generator struct {
	name       string
	states     []string
	dimensions []string
	params     []Param
}

// New creates a generator for a model with the given states and reward
// dimensions.
func New(name string, states, dimensions []string) *Generator {
	return &Generator{
		name:       name,
		states:     states,
		dimensions: dimensions,
		params:     Params(dimensions),
	}
}

// Needed reports whether the model has a trace at all.
func (g *Generator) Needed() bool {
	return len(g.states) > 0 && len(g.dimensions) > 0
}

// Params derives Update parameter names from dimension names: the dimension
// with a lowercase first letter, and the same with a "Dis" suffix for the
// discounted reward. Names that would clash get the dimension index appended.
func Params(dimensions []string) []Param {
	lower := cases.Lower(language.Und)
	used := make(map[string]bool, 2*len(dimensions))
	for n := range taken {
		used[n] = true
	}

	params := make([]Param, len(dimensions))
	for i, d := range dimensions {
		r, size := utf8.DecodeRuneInString(d)
		base := lower.String(string(r)) + d[size:]
		if base == "" || token.IsKeyword(base) || !token.IsIdentifier(base) ||
			used[base] || used[base+"Dis"] {
			base = fmt.Sprintf("dim%d", i)
		}
		used[base], used[base+"Dis"] = true, true
		params[i] = Param{Dimension: d, Reward: base, Discounted: base + "Dis"}
	}
	return params
}

// Params returns the Update parameters of the generated wrapper.
func (g *Generator) Params() []Param {
	return g.params
}

// Emit declares the package-level trace in u.
func (g *Generator) Emit(u *codegen.Unit) {
	if !g.Needed() {
		return
	}
	b := u.Section(codegen.Trace)
	b.Line("// %s is the cohort trace, updated once per cycle.", translate.TraceVar)
	b.Line("var %s = %s()", translate.TraceVar, ConstructorName)
	b.Blank()
}

// Wrapper renders the source of the MarkovTrace type in package pkg.
func (g *Generator) Wrapper(pkg string) (codegen.Artifact, error) {
	if !g.Needed() {
		return codegen.Artifact{}, fmt.Errorf("trace wrapper: model has no states or no dimensions")
	}
	u := codegen.NewUnit(FileName, pkg)
	b := u.Section(codegen.Trace)

	b.Line("// %s is the trace of %s with one named reward pair per dimension.", TypeName, g.label())
	b.Line("type %s struct {", TypeName)
	b.Line("*Trace")
	b.Line("}")
	b.Blank()

	b.Line("// %s creates an empty trace.", ConstructorName)
	b.Line("func %s() *%s {", ConstructorName, TypeName)
	b.Line("return &%s{Trace: NewTrace(%q, %s, %s)}", TypeName, g.name,
		codegen.Strings(g.states), codegen.Strings(g.dimensions))
	b.Line("}")
	b.Blank()

	sig := make([]string, 0, 2*len(g.params))
	rewards := make([]string, len(g.params))
	discounted := make([]string, len(g.params))
	for i, p := range g.params {
		sig = append(sig, p.Reward, p.Discounted)
		rewards[i] = p.Reward
		discounted[i] = p.Discounted
	}
	b.Line("// Update appends the next cycle given the state occupancy and, per")
	b.Line("// dimension, the undiscounted and discounted reward of the cycle.")
	b.Line("func (m *%s) Update(prev []float64, %s float64) {", TypeName, strings.Join(sig, ", "))
	b.Line("m.Trace.Update(prev, []float64{%s}, []float64{%s})",
		strings.Join(rewards, ", "), strings.Join(discounted, ", "))
	b.Line("}")

	src, err := u.Format()
	if err != nil {
		return codegen.Artifact{}, fmt.Errorf("trace wrapper: %w", err)
	}
	return codegen.Artifact{Name: FileName, Data: src}, nil
}

func (g *Generator) label() string {
	if g.name == "" {
		return "the model"
	}
	return g.name
}
