package codegen

import (
	"go/parser"
	"go/token"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	testCases := []struct {
		name string
		v    float64
		want string
	}{
		{name: "integer", v: 3, want: "3"},
		{name: "fraction", v: 0.1, want: "0.1"},
		{name: "negative", v: -2.5, want: "-2.5"},
		{name: "large", v: 1e21, want: "1e+21"},
		{name: "nan", v: math.NaN(), want: "math.NaN()"},
		{name: "positive infinity", v: math.Inf(1), want: "math.Inf(1)"},
		{name: "negative infinity", v: math.Inf(-1), want: "math.Inf(-1)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Float(tc.v))
		})
	}
}

func TestCompositeLiterals(t *testing.T) {
	assert.Equal(t, "[]float64{1, 2, 3}", Floats([]float64{1, 2, 3}))
	assert.Equal(t, "[][]float64{{1, 2}, {3, 4}}", Matrix([][]float64{{1, 2}, {3, 4}}))
	assert.Equal(t, "[][]float64{\n\t{1, 2},\n\t{3, 4},\n}", MatrixBlock([][]float64{{1, 2}, {3, 4}}))
	assert.Equal(t, `[]string{"Age", "Rate \"adj\""}`, Strings([]string{"Age", `Rate "adj"`}))
}

func TestUnit_SectionOrderAndFormat(t *testing.T) {
	u := NewUnit("model.go", "main")
	u.Header = "Model name: test"
	u.Import("fmt")
	u.Import("math")
	u.Import("os")

	u.Section(Main).Emit("func main() {\n\tfmt.Println(total())\n}")
	u.Section(Formulas).Line("func total() float64 {\n\treturn %s * 2\n}", "p")
	u.Section(Parameters).Line("var p float64 = %s // Expression: %s", Float(math.Pi), "pi")

	out, err := u.Format()
	require.NoError(t, err)
	src := string(out)

	assert.True(t, strings.HasPrefix(src, GeneratedMarker))
	assert.Contains(t, src, "Model name: test")
	assert.NotContains(t, src, `"os"`, "unused imports are removed")
	assert.NotContains(t, src, `"math"`)
	assert.Less(t, strings.Index(src, "var p"), strings.Index(src, "func total"))
	assert.Less(t, strings.Index(src, "func total"), strings.Index(src, "func main"))

	_, err = parser.ParseFile(token.NewFileSet(), "model.go", out, 0)
	require.NoError(t, err)
}

func TestUnit_FormatRejectsInvalidGo(t *testing.T) {
	u := NewUnit("bad.go", "main")
	u.Section(Formulas).Emit("func broken( {")
	_, err := u.Format()
	assert.Error(t, err)
}

const runtimeSrc = `// Package amrt is a runtime.
package amrt

import "math"

type Table struct{}

func (t *Table) Lookup() float64 { return math.NaN() }

var (
	Rand, _ = 1, 2
	normal  = 3
)

const ModeMean = 0

func det() float64 { return 0 }
`

func TestRewritePackage(t *testing.T) {
	out, err := RewritePackage("table.go", []byte(runtimeSrc), "main")
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "table.go", out, parser.PackageClauseOnly)
	require.NoError(t, err)
	assert.Equal(t, "main", f.Name.Name)
	assert.True(t, strings.HasPrefix(string(out), GeneratedMarker))
}

func TestTopLevelNames(t *testing.T) {
	names, err := TopLevelNames("table.go", []byte(runtimeSrc))
	require.NoError(t, err)
	assert.Equal(t, []string{"ModeMean", "Rand", "Table", "det", "normal"}, names)

	_, err = TopLevelNames("bad.go", []byte("package"))
	assert.Error(t, err)
}

func TestImportNames(t *testing.T) {
	src := `package amrt

import (
	"encoding/csv"
	"math/rand/v2"
	str "strings"
	_ "embed"
	. "fmt"
	"github.com/hashicorp/hcl/v2"
)
`
	names, err := ImportNames("imports.go", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"csv", "hcl", "rand", "str"}, names)

	_, err = ImportNames("bad.go", []byte("package"))
	assert.Error(t, err)
}
