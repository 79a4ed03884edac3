package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/ctxlog"
)

// writeAll stages every artifact in a temporary file inside dir and renames
// them into place once all were written. Temporary files are removed on
// every error path.
func writeAll(ctx context.Context, dir string, artifacts []codegen.Artifact) (err error) {
	logger := ctxlog.FromContext(ctx)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	temps := make([]string, 0, len(artifacts))
	defer func() {
		if err == nil {
			return
		}
		for _, t := range temps {
			if rmErr := os.Remove(t); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				logger.Warn("Failed to remove temporary file.", "path", t, "error", rmErr)
			}
		}
	}()

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		tmp, err := stage(dir, a)
		if tmp != "" {
			temps = append(temps, tmp)
		}
		if err != nil {
			return err
		}
	}

	for i, a := range artifacts {
		dst := filepath.Join(dir, a.Name)
		if err := os.Rename(temps[i], dst); err != nil {
			return fmt.Errorf("write %s: %w", a.Name, err)
		}
		logger.Debug("Wrote artifact.", "path", dst, "bytes", len(a.Data))
	}
	return nil
}

// stage writes one artifact to a temporary file and returns its path.
func stage(dir string, a codegen.Artifact) (string, error) {
	f, err := os.CreateTemp(dir, "."+a.Name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("write %s: %w", a.Name, err)
	}
	if _, err := f.Write(a.Data); err != nil {
		f.Close()
		return f.Name(), fmt.Errorf("write %s: %w", a.Name, err)
	}
	if err := f.Close(); err != nil {
		return f.Name(), fmt.Errorf("write %s: %w", a.Name, err)
	}
	if err := os.Chmod(f.Name(), 0o644); err != nil {
		return f.Name(), fmt.Errorf("write %s: %w", a.Name, err)
	}
	return f.Name(), nil
}
