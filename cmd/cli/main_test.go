package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const model = `
name       = "Screening"
type       = "markov"
states     = ["Healthy", "Sick"]
dimensions = ["Cost"]

parameter "cTest" {
  expression = "25"
}

table "Sens" {
  type    = "lookup"
  headers = ["Age", "Value"]
  data    = [[40, 0.8], [60, 0.9]]
}

formula "expected" {
  expression = "cTest * Sens[40, 'Value'] + trace[0, 'Sick']"
}
`

func TestRun_Export(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "screening.hcl")
	require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o600))
	outDir := filepath.Join(dir, "out")
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-o", outDir, "-format", "csv", "-log-format", "json", modelPath})

	// --- Assert ---
	require.NoError(t, err)
	for _, f := range []string{"model.go", "markov_trace.go", "table.go", "spline.go", "trace.go", "Sens.csv", "go.mod"} {
		assert.FileExists(t, filepath.Join(outDir, f))
	}
	assert.Contains(t, out.String(), `"msg":"Model exported."`)
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		parameter "p" {
			expression = "1"
		// Missing closing brace here
	`
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0o600), "failed to set up test file")

	// --- Act ---
	runErr := run(context.Background(), &bytes.Buffer{}, []string{"-o", t.TempDir(), filePath})

	// --- Assert ---
	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "failed to load model")
	assert.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
