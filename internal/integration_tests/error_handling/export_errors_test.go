package integration_tests

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelexport/internal/app"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/export"
	"github.com/vk/modelexport/internal/scan"
	"github.com/vk/modelexport/internal/testutil"
	"github.com/vk/modelexport/internal/translate"
)

func TestErrorHandling_MalformedExpression(t *testing.T) {
	testCases := []struct {
		name    string
		formula string
		wantErr error
	}{
		{name: "unbalanced parenthesis", formula: "max(p, 1", wantErr: scan.ErrUnbalanced},
		{name: "unterminated string", formula: "T[1, 'Val", wantErr: scan.ErrUnbalanced},
		{name: "unknown column", formula: "T[1, 'Nope']", wantErr: translate.ErrUnknownColumn},
		{name: "trace in a decision tree", formula: "trace[0, 1]", wantErr: translate.ErrNoTrace},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hcl := `
name = "Broken"

parameter "p" {
  expression = "1"
}

table "T" {
  type    = "lookup"
  headers = ["Key", "Val"]
  data    = [[1, 2]]
}

formula "f" {
  expression = "` + tc.formula + `"
}
`
			result := testutil.RunExport(t, map[string]string{"m.hcl": hcl}, app.Config{})

			require.ErrorIs(t, result.Err, tc.wantErr)
			var te *translate.Error
			require.True(t, errors.As(result.Err, &te))
			assert.Equal(t, tc.formula, te.Expr)

			_, statErr := os.Stat(result.OutDir)
			assert.True(t, os.IsNotExist(statErr), "nothing may be written on a failed export")
		})
	}
}

func TestErrorHandling_InvalidParameter(t *testing.T) {
	hcl := `
parameter "ok" {
  expression = "1"
}

parameter "pSick" {
  expression = "Beta(2, 8)"
}
`
	result := testutil.RunExport(t, map[string]string{"m.hcl": hcl}, app.Config{})

	var pe *config.ParamError
	require.True(t, errors.As(result.Err, &pe), "got %v", result.Err)
	assert.Equal(t, "pSick", pe.Symbol)
}

func TestErrorHandling_ReservedName(t *testing.T) {
	testCases := []struct {
		name   string
		symbol string
	}{
		{name: "runtime type", symbol: "Trace"},
		{name: "package imported by table runtime", symbol: "strconv"},
		{name: "package imported by distribution runtime", symbol: "rand"},
		{name: "package imported by csv reader", symbol: "csv"},
		{name: "package imported by model file", symbol: "filepath"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hcl := `
parameter "` + tc.symbol + `" {
  expression = "1"
}

table "T" {
  type    = "lookup"
  headers = ["Key", "Val"]
  data    = [[1, 2]]
}

formula "f" {
  expression = "Norm(` + tc.symbol + `, 1) + T[1, 'Val']"
}
`
			result := testutil.RunExport(t, map[string]string{"m.hcl": hcl}, app.Config{})

			require.ErrorIs(t, result.Err, export.ErrReservedName)
			var pe *config.ParamError
			require.True(t, errors.As(result.Err, &pe))
			assert.Equal(t, tc.symbol, pe.Symbol)
			_, statErr := os.Stat(result.OutDir)
			assert.True(t, os.IsNotExist(statErr), "nothing may be written on a failed export")
		})
	}
}

func TestErrorHandling_WriteFailureLeavesNoTempFiles(t *testing.T) {
	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(filepath.Join(out, "go.mod", "occupied"), 0o755))
	hcl := `
parameter "p" {
  expression = "1"
}

formula "f" {
  expression = "p * 2"
}
`

	// --- Act ---
	result := testutil.RunExport(t, map[string]string{"m.hcl": hcl}, app.Config{OutDir: out})

	// --- Assert ---
	require.Error(t, result.Err)
	testutil.RequireNoTempFiles(t, out)
}
