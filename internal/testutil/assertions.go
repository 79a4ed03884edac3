package testutil

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadGenerated returns the content of one generated file.
func ReadGenerated(t *testing.T, result *HarnessResult, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(result.OutDir, name))
	require.NoError(t, err, "generated file %s", name)
	return string(data)
}

// RequireCompiles type-checks every generated .go file as one package.
func RequireCompiles(t *testing.T, result *HarnessResult) *types.Package {
	t.Helper()
	entries, err := os.ReadDir(result.OutDir)
	require.NoError(t, err)

	fset := token.NewFileSet()
	var files []*ast.File
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(result.OutDir, e.Name()), nil, parser.ParseComments)
		require.NoError(t, err)
		files = append(files, f)
	}
	require.NotEmpty(t, files, "no generated Go files in %s", result.OutDir)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check(files[0].Name.Name, fset, files, nil)
	require.NoError(t, err, "generated code does not type-check")
	return pkg
}

// RequireNoTempFiles fails if an interrupted write left staging files behind.
func RequireNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp-*"))
	require.NoError(t, err)
	require.Empty(t, matches, "temporary files left in %s", dir)
}
