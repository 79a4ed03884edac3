package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelexport/internal/config"
)

// stubLoader returns a fixed model or error.
type stubLoader struct {
	model *config.Model
	err   error
	paths []string
}

func (l *stubLoader) Load(_ context.Context, paths ...string) (*config.Model, error) {
	l.paths = paths
	return l.model, l.err
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{ModelPath: "m.hcl", OutDir: "out"})
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.Package)

	testCases := []struct {
		name string
		cfg  Config
	}{
		{name: "no model path", cfg: Config{OutDir: "out"}},
		{name: "no out dir", cfg: Config{ModelPath: "m.hcl"}},
		{name: "bad format", cfg: Config{ModelPath: "m.hcl", OutDir: "out", Format: "xml"}},
		{name: "bad package", cfg: Config{ModelPath: "m.hcl", OutDir: "out", Package: "1pkg"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestApp_Run(t *testing.T) {
	// --- Arrange ---
	out := filepath.Join(t.TempDir(), "gen")
	loader := &stubLoader{model: &config.Model{
		Name:       "Tiny",
		Parameters: []*config.Parameter{{Name: "p", Expression: "0.5", Value: config.DoubleValue(0.5)}},
		Formulas:   []*config.Formula{{Name: "half", Expression: "p/2"}},
	}}
	var logs bytes.Buffer
	a := NewApp(&logs, &Config{ModelPath: "tiny.hcl", OutDir: out, Package: "main", LogLevel: "info", LogFormat: "json"}, loader)

	// --- Act ---
	res, err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny.hcl"}, loader.paths)
	assert.Equal(t, []string{"model.go", "go.mod"}, res.Files)
	assert.FileExists(t, filepath.Join(out, "model.go"))
	assert.Contains(t, logs.String(), `"msg":"Model exported."`)
	assert.Contains(t, logs.String(), `"session_id":"`+res.SessionID+`"`)

	src, err := os.ReadFile(filepath.Join(out, "model.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "return p / 2")
}

func TestApp_Run_LoadError(t *testing.T) {
	loadErr := errors.New("boom")
	a := NewApp(&bytes.Buffer{}, &Config{ModelPath: "x", OutDir: t.TempDir()}, &stubLoader{err: loadErr})

	_, err := a.Run(context.Background())
	assert.ErrorIs(t, err, loadErr)
	assert.Contains(t, err.Error(), "failed to load model")
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level, format string
		wantLevel     slog.Level
		wantJSON      bool
	}{
		{level: "debug", format: "text", wantLevel: slog.LevelDebug},
		{level: "warn", format: "json", wantLevel: slog.LevelWarn, wantJSON: true},
		{level: "WARNING", format: "JSON", wantLevel: slog.LevelWarn, wantJSON: true},
		{level: "error", format: "", wantLevel: slog.LevelError},
		{level: "bogus", format: "text", wantLevel: slog.LevelInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(tc.level, tc.format, &buf)

			assert.True(t, logger.Enabled(context.Background(), tc.wantLevel))
			assert.False(t, logger.Enabled(context.Background(), tc.wantLevel-1))

			logger.Error("x")
			assert.Equal(t, tc.wantJSON, bytes.HasPrefix(buf.Bytes(), []byte("{")))
		})
	}
}
