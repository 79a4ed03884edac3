package export

import (
	"fmt"
	"strings"

	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/translate"
)

const (
	entityType        = "Entity"
	entityConstructor = "newEntity"
	copyMatrixHelper  = "copyMatrix"
)

const copyMatrixBody = `func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, r := range m {
		out[i] = append([]float64(nil), r...)
	}
	return out
}`

// goType is the declared type of a value of kind k.
func goType(k config.ValueKind) string {
	switch k {
	case config.Boolean:
		return "bool"
	case config.Matrix:
		return "[][]float64"
	default:
		return "float64"
	}
}

// literal is the initializer of v.
func literal(v config.Value) string {
	switch v.Kind {
	case config.Boolean:
		return fmt.Sprint(v.Boolean)
	case config.Matrix:
		return codegen.Matrix(v.Matrix)
	case config.Integer:
		return fmt.Sprint(v.Integer)
	default:
		return codegen.Float(v.Double)
	}
}

// oneLine flattens an expression for use in a trailing comment.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func joinLines(lines []string) string {
	return strings.ReplaceAll(strings.Join(lines, "\n"), "*/", "* /")
}

func declare(b *codegen.Block, name, notes, expr string, v config.Value) {
	if notes != "" {
		b.Emit(codegen.Comment(notes))
	}
	b.Line("var %s %s = %s // Expression: %s", name, goType(v.Kind), literal(v), oneLine(expr))
}

func (s *Session) declareParameters(u *codegen.Unit) {
	b := u.Section(codegen.Parameters)
	for _, p := range s.model.Parameters {
		declare(b, p.Name, p.Notes, p.Expression, p.Value)
	}
	if b.Len() > 0 {
		b.Blank()
	}
}

// declareVariables writes the cohort-level variables and the Entity record
// person-level formulas evaluate against.
func (s *Session) declareVariables(u *codegen.Unit) {
	b := u.Section(codegen.Variables)
	for _, v := range s.model.Variables {
		declare(b, v.Name, v.Notes, v.Expression, v.Value)
	}
	if b.Len() > 0 {
		b.Blank()
	}

	if !s.needsEntity() {
		return
	}
	e := u.Section(codegen.Entity)
	e.Line("// %s is the state of one simulated individual.", entityType)
	e.Line("type %s struct {", entityType)
	for _, v := range s.model.Variables {
		e.Line("%s %s", v.Name, goType(v.Value.Kind))
	}
	e.Line("}")
	e.Blank()

	e.Line("// %s returns an individual initialized with the model's variable values.", entityConstructor)
	e.Line("func %s() *%s {", entityConstructor, entityType)
	e.Line("return &%s{", entityType)
	for _, v := range s.model.Variables {
		if v.Value.Kind == config.Matrix {
			s.reg.Register(copyMatrixHelper, copyMatrixBody)
			e.Line("%s: %s(%s),", v.Name, copyMatrixHelper, v.Name)
			continue
		}
		e.Line("%s: %s,", v.Name, v.Name)
	}
	e.Line("}")
	e.Line("}")
	e.Blank()
}

func (s *Session) needsEntity() bool {
	if len(s.model.Variables) > 0 {
		return true
	}
	for _, f := range s.model.Formulas {
		if f.PersonLevel {
			return true
		}
	}
	return false
}

func (s *Session) declareFormulas(u *codegen.Unit) error {
	b := u.Section(codegen.Formulas)
	for _, f := range s.model.Formulas {
		expr, err := s.tr.Translate(f.Expression, f.PersonLevel)
		if err != nil {
			return fmt.Errorf("formula %s: %w", f.Name, err)
		}
		if expr == "" {
			return fmt.Errorf("formula %s: expression is empty", f.Name)
		}
		result := "float64"
		if f.Result == config.ResultMatrix {
			result = "[][]float64"
		}
		params := ""
		if f.PersonLevel {
			params = fmt.Sprintf("%s *%s", translate.EntityVar, entityType)
		}

		b.Line("// Expression: %s", oneLine(f.Expression))
		b.Line("func %s(%s) %s {", f.Name, params, result)
		b.Line("return %s", expr)
		b.Line("}")
		b.Blank()
	}
	return nil
}

func (s *Session) declareHelpers(u *codegen.Unit) {
	b := u.Section(codegen.Helpers)
	for _, h := range s.reg.Definitions() {
		b.Emit(h.Body)
		b.Blank()
	}
}

// declareMain prints the value of every cohort-level formula.
func (s *Session) declareMain(u *codegen.Unit) {
	u.Import("fmt")
	b := u.Section(codegen.Main)
	b.Line("func main() {")
	for _, f := range s.model.Formulas {
		if f.PersonLevel {
			continue
		}
		b.Line("fmt.Printf(\"%%s = %%v\\n\", %q, %s())", f.Name, f.Name)
	}
	b.Line("}")
}
