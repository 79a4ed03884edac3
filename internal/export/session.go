package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/ctxlog"
	"github.com/vk/modelexport/internal/symbols"
	"github.com/vk/modelexport/internal/tablegen"
	"github.com/vk/modelexport/internal/tracegen"
	"github.com/vk/modelexport/internal/translate"
)

// ModelFile is the generated file holding the model's declarations.
const ModelFile = "model.go"

// Options controls one export.
type Options struct {
	// OutDir receives every artifact. It is created if missing.
	OutDir string
	// Format selects inline table literals or CSV files.
	Format tablegen.Format
	// Package is the package clause of the generated files. Only package
	// main gets a main function.
	Package string
	// Module is the module path written to go.mod. Derived from the model
	// name when empty.
	Module string
	// Now stamps the header of the generated model file.
	Now func() time.Time
}

// Result describes a finished export.
type Result struct {
	SessionID string
	Files     []string
}

// Session exports one model.
type Session struct {
	ID    uuid.UUID
	model *config.Model
	opts  Options

	syms *symbols.Snapshot
	reg  *translate.Registry
	tr   *translate.Translator
}

// NewSession prepares the export of m. The model is snapshotted immediately;
// later changes to it are not seen by the session.
func NewSession(m *config.Model, opts Options) *Session {
	if opts.Package == "" {
		opts.Package = "main"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	syms := symbols.NewSnapshot(m)
	reg := translate.NewRegistry()
	return &Session{
		ID:    uuid.New(),
		model: m,
		opts:  opts,
		syms:  syms,
		reg:   reg,
		tr:    translate.New(syms, reg),
	}
}

// Run generates every artifact and writes them to the output directory.
// Nothing is written unless generation succeeds.
func (s *Session) Run(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, logger := ctxlog.With(ctx, "session_id", s.ID.String())
	logger.Info("Export started.", "model", s.model.Name, "out_dir", s.opts.OutDir, "format", s.opts.Format.String())

	artifacts, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := writeAll(ctx, s.opts.OutDir, artifacts); err != nil {
		return nil, err
	}

	files := make([]string, len(artifacts))
	for i, a := range artifacts {
		files[i] = a.Name
	}
	logger.Info("Export finished.", "files", len(files))
	return &Result{SessionID: s.ID.String(), Files: files}, nil
}

// Generate renders every artifact in memory. The model file comes first.
func (s *Session) Generate(ctx context.Context) ([]codegen.Artifact, error) {
	logger := ctxlog.FromContext(ctx)
	m := s.model

	if err := checkNames(m); err != nil {
		return nil, err
	}

	u := codegen.NewUnit(ModelFile, s.opts.Package)
	u.Header = s.header()
	u.Import("math")

	s.declareParameters(u)
	s.declareVariables(u)
	logger.Debug("Declared parameters and variables.", "parameters", len(m.Parameters), "variables", len(m.Variables))

	data, err := tablegen.New(s.opts.Format).Emit(u, m.Tables)
	if err != nil {
		return nil, err
	}
	logger.Debug("Declared tables.", "tables", len(m.Tables), "data_files", len(data))

	var trace *tracegen.Generator
	if s.syms.HasTrace() {
		trace = tracegen.New(m.Name, m.States, m.Dimensions)
		trace.Emit(u)
		logger.Debug("Declared Markov trace.", "states", len(m.States), "dimensions", len(m.Dimensions))
	}

	if err := s.declareFormulas(u); err != nil {
		return nil, err
	}
	s.declareHelpers(u)
	if s.opts.Package == "main" {
		s.declareMain(u)
	}
	logger.Debug("Translated formulas.", "formulas", len(m.Formulas), "helpers", s.reg.Len())

	src, err := u.Format()
	if err != nil {
		return nil, err
	}
	artifacts := []codegen.Artifact{{Name: ModelFile, Data: src}}

	if trace != nil {
		w, err := trace.Wrapper(s.opts.Package)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, w)
	}

	runtime, err := s.runtime(ctx)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, runtime...)
	artifacts = append(artifacts, data...)
	artifacts = append(artifacts, codegen.Artifact{Name: "go.mod", Data: s.goMod()})
	return artifacts, nil
}

func (s *Session) header() string {
	m := s.model
	lines := []string{
		fmt.Sprintf("Generated by modelexport on %s", s.opts.Now().UTC().Format(time.RFC3339)),
		"",
		"Model: " + m.Name,
		"Type: " + m.Type.String(),
		"Simulation: " + m.Simulation.String(),
	}
	meta := []struct{ label, value string }{
		{"Author", m.Meta.Author},
		{"Created", m.Meta.Created},
		{"Version created", m.Meta.VersionCreated},
		{"Modified by", m.Meta.Modifier},
		{"Modified", m.Meta.Modified},
		{"Version modified", m.Meta.VersionModified},
	}
	for _, kv := range meta {
		if kv.value != "" {
			lines = append(lines, kv.label+": "+kv.value)
		}
	}
	return joinLines(lines)
}
