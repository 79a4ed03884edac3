package app

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/vk/modelexport/internal/tablegen"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string // .hcl file or directory
	OutDir    string

	Format  string // "inline" or "csv"
	Package string
	Module  string // go.mod module path, derived from the model name if empty

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		return nil, errors.New("OutDir is a required configuration field and cannot be empty")
	}
	if _, err := tablegen.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.Package == "" {
		cfg.Package = "main"
	}
	if !token.IsIdentifier(cfg.Package) {
		return nil, fmt.Errorf("invalid package name %q", cfg.Package)
	}
	return &cfg, nil
}
