package hcl_adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/ctxlog"
	"github.com/vk/modelexport/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL model loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// ErrNoModelFiles is returned when none of the given paths holds an .hcl file.
var ErrNoModelFiles = errors.New("no .hcl model files found")

// Load parses every .hcl file under paths, merges them into one model,
// resolves parameter and variable values after the symbols they reference and
// validates the result.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoModelFiles, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	var (
		roots  []*fileRoot
		header fileRoot
	)
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := mergeHeader(&header, &root, file); err != nil {
			return nil, err
		}
		roots = append(roots, &root)
	}

	model := &config.Model{}
	if err := l.translateHeader(model, &header); err != nil {
		return nil, err
	}
	values, err := l.resolveValues(ctx, roots)
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := l.translateFile(model, root, values); err != nil {
			return nil, err
		}
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}

	logger.Debug("HCL loading complete.",
		"model", model.Name,
		"parameters", len(model.Parameters),
		"variables", len(model.Variables),
		"tables", len(model.Tables),
		"formulas", len(model.Formulas),
	)
	return model, nil
}

func mergeHeader(dst, src *fileRoot, file string) error {
	if err := errors.Join(
		mergeAttr(&dst.Name, src.Name, "name", file),
		mergeAttr(&dst.Type, src.Type, "type", file),
		mergeAttr(&dst.Simulation, src.Simulation, "simulation", file),
		mergeAttr(&dst.States, src.States, "states", file),
		mergeAttr(&dst.Dimensions, src.Dimensions, "dimensions", file),
	); err != nil {
		return err
	}
	if src.Meta != nil {
		if dst.Meta != nil {
			return fmt.Errorf("block 'meta' in %s is already set by another model file", file)
		}
		dst.Meta = src.Meta
	}
	return nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		files, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return allFiles, nil
}
