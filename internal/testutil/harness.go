package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modelexport/internal/app"
	"github.com/vk/modelexport/internal/export"
	"github.com/vk/modelexport/internal/hcl_adapter"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Result    *export.Result
	OutDir    string
}

// RunExport writes the given model files into a temporary directory and
// exports them with the HCL loader. cfg may leave ModelPath and OutDir empty;
// they default to the temporary model and output directories.
func RunExport(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	// 1. Write all model files below a temporary root.
	tmpDir := t.TempDir()
	modelDir := filepath.Join(tmpDir, "model")
	require.NoError(t, os.Mkdir(modelDir, 0o755))
	for name, content := range files {
		filePath := filepath.Join(modelDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	// 2. Fill in the paths the test did not choose.
	if cfg.ModelPath == "" {
		cfg.ModelPath = modelDir
	}
	if cfg.OutDir == "" {
		cfg.OutDir = filepath.Join(tmpDir, "out")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	// 3. Run the export.
	logBuffer := &SafeBuffer{}
	res, runErr := app.NewApp(logBuffer, appConfig, hcl_adapter.NewLoader()).Run(context.Background())

	if os.Getenv("MODELEXPORT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Result:    res,
		OutDir:    cfg.OutDir,
	}
}
