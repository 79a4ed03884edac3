package export

import (
	"context"
	"errors"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/scan"
	"github.com/vk/modelexport/internal/tablegen"
	"github.com/vk/modelexport/internal/translate"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func testModel() *config.Model {
	return &config.Model{
		Name:       "Hip Replacement",
		Type:       config.Markov,
		Simulation: config.Cohort,
		Meta:       config.Metadata{Author: "J. Doe", VersionCreated: "1.0"},
		States:     []string{"Well", "Revision", "Dead"},
		Dimensions: []string{"Cost", "QALY"},
		Parameters: []*config.Parameter{
			{Name: "cWell", Notes: "Annual cost", Expression: "500 * 2", Value: config.IntegerValue(1000)},
			{Name: "pRev", Expression: "Norm(0.1, 0.01, ~)", Value: config.DoubleValue(0.1)},
			{Name: "discount", Expression: "true", Value: config.BooleanValue(true)},
			{Name: "P", Expression: "[[0.9, 0.1], [0, 1]]", Value: config.MatrixValue([][]float64{{0.9, 0.1}, {0, 1}})},
		},
		Variables: []*config.Variable{
			{Name: "age", Expression: "60", Value: config.IntegerValue(60)},
			{Name: "history", Expression: "[1, 0]", Value: config.MatrixValue([][]float64{{1, 0}})},
		},
		Tables: []*config.Table{
			{
				Name:          "Mort",
				Type:          config.LookupTable,
				LookupMethod:  config.Interpolate,
				Interpolation: config.Linear,
				Headers:       []string{"Age", "Rate"},
				Data:          [][]float64{{40, 0.01}, {80, 0.1}},
			},
			{
				Name:    "M",
				Type:    config.MatrixTable,
				Headers: []string{"a", "b"},
				Data:    [][]float64{{1, 2}, {3, 4}},
			},
		},
		Formulas: []*config.Formula{
			{Name: "cost", Expression: "cWell + Mort[age, 'Rate'] * logit(pRev)"},
			{Name: "risk", Expression: "Norm(1.96, 0, 1, F) + det(M) + M[0, 1]"},
			{Name: "wellShare", Expression: "trace[0, 'Well'] + trace[0, 1]"},
			{Name: "personRisk", Expression: "Mort[age + 10, 'Rate']", PersonLevel: true},
			{Name: "ident", Expression: "iden(2)", Result: config.ResultMatrix},
		},
	}
}

// alignment matches the padding gofmt inserts before trailing comments and
// in aligned struct fields.
var alignment = regexp.MustCompile(` {2,}`)

func artifactMap(artifacts []codegen.Artifact) map[string]string {
	m := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		m[a.Name] = string(a.Data)
	}
	return m
}

// typeCheck type-checks the generated Go files as one package.
func typeCheck(t *testing.T, artifacts []codegen.Artifact) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for _, a := range artifacts {
		if !strings.HasSuffix(a.Name, ".go") {
			continue
		}
		f, err := parser.ParseFile(fset, a.Name, a.Data, parser.ParseComments)
		require.NoError(t, err, "parse %s", a.Name)
		files = append(files, f)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	_, err := conf.Check("main", fset, files, nil)
	require.NoError(t, err)
}

func TestGenerate(t *testing.T) {
	// --- Arrange ---
	s := NewSession(testModel(), Options{Now: fixedNow})

	// --- Act ---
	artifacts, err := s.Generate(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	assert.Equal(t, []string{
		"model.go", "markov_trace.go",
		"table.go", "spline.go", "trace.go", "distributions.go", "matrix.go",
		"go.mod",
	}, names)

	files := artifactMap(artifacts)
	model := alignment.ReplaceAllString(files["model.go"], " ")
	assert.True(t, strings.HasPrefix(model, codegen.GeneratedMarker))
	for _, want := range []string{
		"Generated by modelexport on 2024-03-01T12:00:00Z",
		"Model: Hip Replacement",
		"Type: Markov Model",
		"Simulation: Cohort",
		"Author: J. Doe",
		"Version created: 1.0",
		"package main",
		"// Annual cost\nvar cWell float64 = 1000 // Expression: 500 * 2",
		"var pRev float64 = 0.1 // Expression: Norm(0.1, 0.01, ~)",
		"var discount bool = true // Expression: true",
		"var P [][]float64 = [][]float64{{0.9, 0.1}, {0, 1}}",
		"type Entity struct {",
		"history: copyMatrix(history),",
		"var trace = NewMarkovTrace()",
		"func cost() float64 {\n\treturn cWell + Mort.Lookup(age, 1)*logit(pRev)\n}",
		"return Norm(ModeCDF, 1.96, 0, 1) + det(M.Data) + M.Data[int(0)][int(1)]",
		`return trace.ValueByName(int(0), "Well") + trace.Value(int(0), int(1))`,
		"func personRisk(curEntity *Entity) float64 {\n\treturn Mort.Lookup(curEntity.age+10, 1)\n}",
		"func ident() [][]float64 {",
		"func logit(",
		"func copyMatrix(",
		`fmt.Printf("%s = %v\n", "cost", cost())`,
	} {
		assert.Contains(t, model, want)
	}
	assert.NotContains(t, model, `"personRisk"`)

	assert.Equal(t, "module hip-replacement\n\ngo 1.22\n", files["go.mod"])
	assert.Contains(t, files["markov_trace.go"], "cost, costDis, qALY, qALYDis float64")
	assert.Contains(t, files["table.go"], "package main")

	typeCheck(t, artifacts)
}

func TestGenerate_OnlyNeededRuntime(t *testing.T) {
	m := &config.Model{
		Name:       "tree",
		Parameters: []*config.Parameter{{Name: "p", Expression: "0.5", Value: config.DoubleValue(0.5)}},
		Formulas:   []*config.Formula{{Name: "value", Expression: "exp(p)*2"}},
	}
	artifacts, err := NewSession(m, Options{Package: "tree", Now: fixedNow}).Generate(context.Background())
	require.NoError(t, err)

	files := artifactMap(artifacts)
	assert.Len(t, files, 2)
	assert.Contains(t, files["model.go"], "package tree")
	assert.Contains(t, files["model.go"], "return math.Exp(p) * 2")
	assert.NotContains(t, files["model.go"], "func main()")
	assert.NotContains(t, files["model.go"], "type Entity")
	typeCheck(t, artifacts)
}

func TestGenerate_ExternalTables(t *testing.T) {
	m := testModel()
	artifacts, err := NewSession(m, Options{Format: tablegen.External, Now: fixedNow}).Generate(context.Background())
	require.NoError(t, err)

	files := artifactMap(artifacts)
	assert.Equal(t, "Age,Rate\n40,0.01\n80,0.1\n", files["Mort.csv"])
	assert.Contains(t, files, "M.csv")
	assert.Contains(t, files["model.go"], `MustLoadTable("Mort"`)
	typeCheck(t, artifacts)
}

func TestGenerate_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(m *config.Model)
		wantErr error
	}{
		{
			name:    "unbalanced formula",
			mutate:  func(m *config.Model) { m.Formulas[0].Expression = "max(1, 2" },
			wantErr: scan.ErrUnbalanced,
		},
		{
			name:    "unknown column",
			mutate:  func(m *config.Model) { m.Formulas[0].Expression = "Mort[age, 'Cost']" },
			wantErr: translate.ErrUnknownColumn,
		},
		{
			name:    "trace without dimensions",
			mutate:  func(m *config.Model) { m.Dimensions = nil },
			wantErr: translate.ErrNoTrace,
		},
		{
			name:    "runtime name",
			mutate:  func(m *config.Model) { m.Tables[1].Name = "Table" },
			wantErr: ErrReservedName,
		},
		{
			name:    "builtin name",
			mutate:  func(m *config.Model) { m.Parameters[0].Name = "pi" },
			wantErr: ErrReservedName,
		},
		{
			name:    "generated name",
			mutate:  func(m *config.Model) { m.Variables[0].Name = "newEntity" },
			wantErr: ErrReservedName,
		},
		{
			name:    "inline literal prefix",
			mutate:  func(m *config.Model) { m.Parameters[1].Name = "data_Mort" },
			wantErr: ErrReservedName,
		},
		{
			name:    "package imported by the runtime",
			mutate:  func(m *config.Model) { m.Parameters[0].Name = "strconv" },
			wantErr: ErrReservedName,
		},
		{
			name:    "versioned package imported by the runtime",
			mutate:  func(m *config.Model) { m.Variables[0].Name = "rand" },
			wantErr: ErrReservedName,
		},
		{
			name:    "predeclared identifier",
			mutate:  func(m *config.Model) { m.Formulas[4].Name = "float64" },
			wantErr: ErrReservedName,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := testModel()
			tc.mutate(m)
			artifacts, err := NewSession(m, Options{Now: fixedNow}).Generate(context.Background())
			assert.Nil(t, artifacts)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenerate_ReservedNameIsParamError(t *testing.T) {
	m := testModel()
	m.Parameters[0].Name = "trace"
	_, err := NewSession(m, Options{}).Generate(context.Background())

	var pe *config.ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "trace", pe.Symbol)
}

func TestRun(t *testing.T) {
	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "out")
	s := NewSession(testModel(), Options{OutDir: out, Format: tablegen.External, Now: fixedNow})

	// --- Act ---
	res, err := s.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, s.ID.String(), res.SessionID)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	var onDisk []string
	for _, e := range entries {
		onDisk = append(onDisk, e.Name())
	}
	assert.ElementsMatch(t, res.Files, onDisk)

	data, err := os.ReadFile(filepath.Join(out, "Mort.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Age,Rate\n40,0.01\n80,0.1\n", string(data))

	info, err := os.Stat(filepath.Join(out, ModelFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestRun_GenerationErrorWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	m := testModel()
	m.Formulas[1].Expression = "Norm(0, 1"

	_, err := NewSession(m, Options{OutDir: out}).Run(context.Background())
	require.ErrorIs(t, err, scan.ErrUnbalanced)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_WriteErrorLeavesNoTempFiles(t *testing.T) {
	// --- Arrange ---
	out := t.TempDir()
	blocker := filepath.Join(out, ModelFile)
	require.NoError(t, os.Mkdir(blocker, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blocker, "keep"), nil, 0o644))

	// --- Act ---
	_, err := NewSession(testModel(), Options{OutDir: out}).Run(context.Background())

	// --- Assert ---
	require.Error(t, err)
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ModelFile, entries[0].Name())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "out")

	_, err := NewSession(testModel(), Options{OutDir: out}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestModulePath(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"Hip Replacement", "hip-replacement"},
		{"  ", "model"},
		{"Model/V2 final", "model-v2-final"},
		{"__x__", "__x__"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ModulePath(tc.in))
		})
	}
}
