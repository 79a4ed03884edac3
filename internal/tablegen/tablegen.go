// Package tablegen emits the construction of model tables for a generated
// program, either with their data inline or backed by CSV files written next
// to it.
package tablegen

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/modelexport/internal/amrt"
	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/config"
)

// Format is how table data is persisted.
type Format int

const (
	Inline Format = iota
	External
)

func (f Format) String() string {
	if f == External {
		return "csv"
	}
	return "inline"
}

// ParseFormat parses "inline" or "csv".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "inline":
		return Inline, nil
	case "csv", "external":
		return External, nil
	}
	return 0, fmt.Errorf("unknown table format %q: must be 'inline' or 'csv'", s)
}

// DataDirVar is the generated variable holding the directory of the table
// files in External mode.
const DataDirVar = "dataDir"

var (
	kinds = map[config.TableType]string{
		config.LookupTable:       "KindLookup",
		config.DistributionTable: "KindDistribution",
		config.MatrixTable:       "KindMatrix",
	}
	methods = map[config.LookupMethod]string{
		config.Exact:       "MethodExact",
		config.Truncate:    "MethodTruncate",
		config.Interpolate: "MethodInterpolate",
	}
	interpolations = map[config.Interpolation]string{
		config.Linear:       "InterpolateLinear",
		config.CubicSplines: "InterpolateCubicSplines",
	}
	extrapolations = map[config.Extrapolation]string{
		config.NoExtrapolation: "ExtrapolateNo",
		config.LeftOnly:        "ExtrapolateLeftOnly",
		config.RightOnly:       "ExtrapolateRightOnly",
		config.BothSides:       "ExtrapolateBoth",
	}
	boundaries = []string{"BoundaryNatural", "BoundaryClamped", "BoundaryNotAKnot", "BoundaryPeriodic"}
)

// HeadersVar and DataVar name the inline literals of a table.
func HeadersVar(table string) string { return "headers_" + table }
func DataVar(table string) string { return "data_" + table }

// Generator writes table declarations into a code unit.
type Generator struct {
	format Format
}

// New creates a generator for the given persistence format.
func New(format Format) *Generator {
	return &Generator{format: format}
}

// Format is the persistence format of the generator.
func (g *Generator) Format() Format {
	return g.format
}

// Emit declares every table in u. In External mode it returns one CSV
// artifact per table; the files must be written next to the generated code.
func (g *Generator) Emit(u *codegen.Unit, tables []*config.Table) ([]codegen.Artifact, error) {
	if len(tables) == 0 {
		return nil, nil
	}
	u.Import("math")
	b := u.Section(codegen.Tables)
	var artifacts []codegen.Artifact

	if g.format == External {
		u.Import("path/filepath")
		b.Line("// %s is the directory holding the table files.", DataDirVar)
		b.Line("var %s = %q", DataDirVar, ".")
		b.Blank()
	}

	for _, t := range tables {
		if t.Notes != "" {
			b.Emit(codegen.Comment(t.Notes))
		}
		switch g.format {
		case External:
			data, err := CSV(t)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", t.Name, err)
			}
			artifacts = append(artifacts, codegen.Artifact{Name: FileName(t.Name), Data: data})
			b.Line("var %s = MustLoadTable(%q, %s, %d, %d, filepath.Join(%s, %q))",
				t.Name, t.Name, options(t), t.NumRows(), t.NumCols(), DataDirVar, FileName(t.Name))
		default:
			b.Line("var %s = %s", HeadersVar(t.Name), codegen.Strings(t.Headers))
			b.Blank()
			b.Line("var %s = %s", DataVar(t.Name), codegen.MatrixBlock(t.Data))
			b.Blank()
			b.Line("var %s = NewTable(%q, %s, %s, %s)",
				t.Name, t.Name, options(t), HeadersVar(t.Name), DataVar(t.Name))
		}
		b.Blank()
		if t.UsesSplines() {
			emitSplines(b, t)
		}
	}
	return artifacts, nil
}

// FileName is the CSV file of a table in External mode.
func FileName(table string) string {
	return table + ".csv"
}

// CSV serializes a table the way the generated program reads it back.
func CSV(t *config.Table) ([]byte, error) {
	var buf bytes.Buffer
	rt := amrt.NewTable(t.Name, amrt.TableOptions{}, t.Headers, t.Data)
	if err := rt.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func options(t *config.Table) string {
	fields := []string{"Kind: " + kinds[t.Type]}
	if t.Type == config.LookupTable {
		fields = append(fields, "Method: "+methods[t.LookupMethod])
		if t.LookupMethod == config.Interpolate {
			fields = append(fields,
				"Interpolation: "+interpolations[t.Interpolation],
				"Extrapolate: "+extrapolations[t.Extrapolate])
		}
	}
	if t.Boundary != "" {
		fields = append(fields, "Boundary: "+strconv.Quote(t.Boundary))
	}
	return "TableOptions{" + strings.Join(fields, ", ") + "}"
}

// emitSplines replays the fitted spline data of t into an init function.
func emitSplines(b *codegen.Block, t *config.Table) {
	b.Line("func init() {")
	b.Line("%s.Splines = []*CubicSpline{", t.Name)
	for i, s := range t.Splines {
		b.Emit(codegen.Comment(t.Headers[i+1]))
		b.Line("{")
		b.Line("Knots: %s,", codegen.Floats(s.Knots))
		b.Line("KnotHeights: %s,", codegen.Floats(s.KnotHeights))
		b.Line("Coeffs: %s,", codegen.Matrix(s.Coeffs))
		b.Line("Boundary: %s,", boundaries[s.BoundaryCondition])
		b.Line("},")
	}
	b.Line("}")
	b.Line("}")
	b.Blank()
}
