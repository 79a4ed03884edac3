package codegen

import (
	"math"
	"strconv"
	"strings"
)

// Float returns v as a Go expression of type float64 that reproduces it
// exactly.
func Float(v float64) string {
	switch {
	case math.IsNaN(v):
		return "math.NaN()"
	case math.IsInf(v, 1):
		return "math.Inf(1)"
	case math.IsInf(v, -1):
		return "math.Inf(-1)"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Floats returns a []float64 composite literal.
func Floats(vs []float64) string {
	return "[]float64" + floatList(vs)
}

// Matrix returns a single-line [][]float64 composite literal.
func Matrix(m [][]float64) string {
	rows := make([]string, len(m))
	for i, r := range m {
		rows[i] = floatList(r)
	}
	return "[][]float64{" + strings.Join(rows, ", ") + "}"
}

// MatrixBlock returns a [][]float64 composite literal with one row per line,
// indented by one tab.
func MatrixBlock(m [][]float64) string {
	var sb strings.Builder
	sb.WriteString("[][]float64{\n")
	for _, r := range m {
		sb.WriteString("\t")
		sb.WriteString(floatList(r))
		sb.WriteString(",\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Strings returns a []string composite literal.
func Strings(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = strconv.Quote(s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

func floatList(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = Float(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Comment turns free text into line comments.
func Comment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+l, " \t\r")
	}
	return strings.Join(lines, "\n")
}
