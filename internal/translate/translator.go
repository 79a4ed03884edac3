package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/scan"
	"github.com/vk/modelexport/internal/symbols"
)

// EntityVar is the receiver of variable references in person-level code.
const EntityVar = "curEntity"

// TraceVar is the generated Markov trace object.
const TraceVar = "trace"

// distribution mode flags, passed as the last argument of a distribution.
var modes = map[string]string{
	"~": "ModeSample",
	"f": "ModePDF",
	"F": "ModeCDF",
	"Q": "ModeQuantile",
	"E": "ModeMean",
	"V": "ModeVariance",
}

// Translator turns model expressions into Go expressions.
type Translator struct {
	syms *symbols.Snapshot
	reg  *Registry

	usesDistributions bool
	usesMatrix        bool
}

// New creates a translator that classifies against syms and registers
// helpers in reg.
func New(syms *symbols.Snapshot, reg *Registry) *Translator {
	return &Translator{syms: syms, reg: reg}
}

// UsesDistributions reports whether any translated expression called a
// distribution.
func (t *Translator) UsesDistributions() bool { return t.usesDistributions }

// UsesMatrixFunctions reports whether any translated expression called a
// matrix function.
func (t *Translator) UsesMatrixFunctions() bool { return t.usesMatrix }

// Translate converts expr to Go. When personLevel is set, variable references
// become fields of the current entity.
func (t *Translator) Translate(expr string, personLevel bool) (string, error) {
	out, err := t.translate(scan.Normalize(expr), personLevel)
	if err != nil {
		return "", &Error{Expr: expr, Err: err}
	}
	return out, nil
}

// translate consumes text one word at a time. After a word, the single break
// character following it is copied unless the word's handler consumed
// through a closing delimiter.
func (t *Translator) translate(text string, personLevel bool) (string, error) {
	var out strings.Builder
	for len(text) > 0 {
		pos := scan.NextBreak(text)
		if pos == 0 && text[0] == '"' {
			end := strings.IndexByte(text[1:], '"')
			if end < 0 {
				return "", fmt.Errorf("unterminated string: %w", scan.ErrUnbalanced)
			}
			pos = end + 2
			out.WriteString(text[:pos])
			text = text[pos:]
			continue
		}

		word := text[:pos]
		split := ""
		if pos < len(text) {
			split = text[pos : pos+1]
		}

		next, err := t.word(&out, text, word, split, pos, personLevel)
		if err != nil {
			return "", err
		}
		text = text[min(next, len(text)):]
	}
	return out.String(), nil
}

// word emits the translation of one word and returns where scanning resumes.
func (t *Translator) word(out *strings.Builder, text, word, split string, pos int, personLevel bool) (int, error) {
	switch k := t.syms.Classify(word, text).(type) {
	case symbols.Table:
		return t.table(out, k, text, pos, split, personLevel)

	case symbols.Variable:
		if personLevel {
			out.WriteString(EntityVar + ".")
		}
		out.WriteString(word + split)
		return pos + 1, nil

	case symbols.TraceKeyword:
		if !t.syms.HasTrace() {
			return 0, ErrNoTrace
		}
		return t.trace(out, text, pos, personLevel)

	case symbols.Function:
		end, args, err := t.callArgs(text, pos, word, personLevel)
		if err != nil {
			return 0, err
		}
		out.WriteString(k.Spec.Target + "(" + strings.Join(args, ", ") + ")")
		if !k.Spec.Inline() {
			t.reg.Register(k.Spec.Name, k.Spec.Helper)
		}
		return end + 1, nil

	case symbols.MatrixFunction:
		end, args, err := t.callArgs(text, pos, word, personLevel)
		if err != nil {
			return 0, err
		}
		t.usesMatrix = true
		out.WriteString(word + "(" + strings.Join(args, ", ") + ")")
		return end + 1, nil

	case symbols.Distribution:
		return t.distribution(out, text, word, pos, personLevel)

	case symbols.Constant:
		out.WriteString(k.Target + split)
		return pos + 1, nil

	case symbols.MatrixLiteralStart:
		end, err := scan.MatchBracket(text, 0)
		if err != nil {
			return 0, err
		}
		m, err := scan.ParseMatrix(text[1:end])
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMatrixLiteral, err)
		}
		if len(m) == 1 {
			out.WriteString(codegen.Floats(m[0]))
		} else {
			out.WriteString(codegen.Matrix(m))
		}
		return end + 1, nil

	case symbols.Unclassified:
		out.WriteString(word + split)
		return pos + 1, nil

	default:
		panic(fmt.Sprintf("translate: unhandled symbol kind %T", k))
	}
}

func (t *Translator) table(out *strings.Builder, tbl symbols.Table, text string, pos int, split string, personLevel bool) (int, error) {
	switch tbl.Subtype {
	case config.LookupTable:
		if split != "[" {
			return 0, fmt.Errorf("lookup table %s: %w", tbl.Name, ErrNotIndexed)
		}
		end, args, err := delimitedArgs(text, pos, scan.MatchBracket)
		if err != nil {
			return 0, err
		}
		if len(args) != 2 {
			return 0, fmt.Errorf("lookup table %s takes an index and a column, got %d arguments: %w", tbl.Name, len(args), ErrArgCount)
		}
		idx, err := t.translate(args[0], personLevel)
		if err != nil {
			return 0, err
		}
		col, err := column(tbl, args[1])
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "%s.Lookup(%s, %d)", tbl.Name, idx, col)
		return end + 1, nil

	case config.DistributionTable:
		if split != "(" {
			return 0, fmt.Errorf("distribution table %s: %w", tbl.Name, ErrNotIndexed)
		}
		end, args, err := delimitedArgs(text, pos, scan.MatchParen)
		if err != nil {
			return 0, err
		}
		if len(args) != 1 {
			return 0, fmt.Errorf("distribution table %s takes one column, got %d arguments: %w", tbl.Name, len(args), ErrArgCount)
		}
		col, err := column(tbl, args[0])
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "%s.ExpectedValue(%d)", tbl.Name, col)
		return end + 1, nil

	default:
		if split != "[" {
			out.WriteString(tbl.Name + ".Data" + split)
			return pos + 1, nil
		}
		end, args, err := delimitedArgs(text, pos, scan.MatchBracket)
		if err != nil {
			return 0, err
		}
		if len(args) != 2 {
			return 0, fmt.Errorf("matrix table %s takes a row and a column, got %d arguments: %w", tbl.Name, len(args), ErrArgCount)
		}
		ij, err := t.translateAll(args, personLevel)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "%s.Data[int(%s)][int(%s)]", tbl.Name, ij[0], ij[1])
		return end + 1, nil
	}
}

func (t *Translator) trace(out *strings.Builder, text string, pos int, personLevel bool) (int, error) {
	if pos >= len(text) || text[pos] != '[' {
		return 0, fmt.Errorf("trace: %w", ErrNotIndexed)
	}
	end, args, err := delimitedArgs(text, pos, scan.MatchBracket)
	if err != nil {
		return 0, err
	}
	if len(args) != 2 {
		return 0, fmt.Errorf("trace takes a cycle and a column, got %d arguments: %w", len(args), ErrArgCount)
	}
	cycle, err := t.translate(args[0], personLevel)
	if err != nil {
		return 0, err
	}
	if scan.IsQuoted(args[1]) {
		fmt.Fprintf(out, "%s.ValueByName(int(%s), %s)", TraceVar, cycle, strconv.Quote(scan.Unquote(args[1])))
		return end + 1, nil
	}
	col, err := t.translate(args[1], personLevel)
	if err != nil {
		return 0, err
	}
	fmt.Fprintf(out, "%s.Value(int(%s), int(%s))", TraceVar, cycle, col)
	return end + 1, nil
}

func (t *Translator) distribution(out *strings.Builder, text, name string, pos int, personLevel bool) (int, error) {
	if pos >= len(text) || text[pos] != '(' {
		return 0, fmt.Errorf("distribution %s: %w", name, ErrNotIndexed)
	}
	end, raw, err := delimitedArgs(text, pos, scan.MatchParen)
	if err != nil {
		return 0, err
	}
	mode := "ModeMean"
	// A model symbol spelled like a flag is an argument.
	if last := raw[len(raw)-1]; !t.syms.Declared(last) {
		if m, ok := modes[last]; ok {
			mode = m
			raw = raw[:len(raw)-1]
		}
	}
	args, err := t.translateAll(raw, personLevel)
	if err != nil {
		return 0, err
	}
	t.usesDistributions = true
	out.WriteString(name + "(" + strings.Join(append([]string{mode}, args...), ", ") + ")")
	return end + 1, nil
}

// callArgs splits and translates the parenthesized argument list of a call.
func (t *Translator) callArgs(text string, pos int, name string, personLevel bool) (int, []string, error) {
	if pos >= len(text) || text[pos] != '(' {
		return 0, nil, fmt.Errorf("function %s: %w", name, ErrNotIndexed)
	}
	end, raw, err := delimitedArgs(text, pos, scan.MatchParen)
	if err != nil {
		return 0, nil, err
	}
	if len(raw) == 1 && raw[0] == "" {
		return end, nil, nil
	}
	args, err := t.translateAll(raw, personLevel)
	return end, args, err
}

func (t *Translator) translateAll(raw []string, personLevel bool) ([]string, error) {
	out := make([]string, len(raw))
	for i, a := range raw {
		s, err := t.translate(a, personLevel)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// delimitedArgs matches the delimiter opened at pos and splits its contents.
func delimitedArgs(text string, pos int, match func(string, int) (int, error)) (int, []string, error) {
	end, err := match(text, pos)
	if err != nil {
		return 0, nil, err
	}
	args, err := scan.SplitArgs(text[pos+1 : end])
	if err != nil {
		return 0, nil, err
	}
	return end, args, nil
}

func column(tbl symbols.Table, arg string) (int, error) {
	name := scan.Unquote(arg)
	col := tbl.Column(name)
	if col < 0 {
		return 0, fmt.Errorf("table %s has no column %q: %w", tbl.Name, name, ErrUnknownColumn)
	}
	return col, nil
}
