package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	// --- Arrange ---
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	for _, f := range []string{
		"one.hcl", "two.txt", "five.HCL", "six.hcl.bak",
		filepath.Join("a", "three.hcl"),
		filepath.Join("a", "b", "four.hcl"),
		filepath.Join(".git", "hidden.hcl"),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, f), nil, 0o644))
	}

	// --- Act ---
	files, err := FindFilesByExtension(root, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "b", "four.hcl"),
		filepath.Join(root, "a", "three.hcl"),
		filepath.Join(root, "five.HCL"),
		filepath.Join(root, "one.hcl"),
	}, files)
}

func TestFindFilesByExtension_Errors(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(".", "") })
}
