package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/modelexport/internal/amrt"
	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/ctxlog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GoVersion is the language version declared by the generated go.mod.
const GoVersion = "1.22"

// units returns the runtime units the generated model depends on. It must
// be called after every formula has been translated.
func (s *Session) units() []amrt.Unit {
	need := map[amrt.Unit]bool{
		amrt.UnitTable:         len(s.model.Tables) > 0,
		amrt.UnitTrace:         s.syms.HasTrace(),
		amrt.UnitDistributions: s.tr.UsesDistributions(),
		amrt.UnitMatrix:        s.tr.UsesMatrixFunctions(),
	}
	var units []amrt.Unit
	for _, u := range amrt.Units() {
		if need[u] {
			units = append(units, u)
		}
	}
	return units
}

// runtime copies the needed runtime files into the generated package.
func (s *Session) runtime(ctx context.Context) ([]codegen.Artifact, error) {
	logger := ctxlog.FromContext(ctx)
	var artifacts []codegen.Artifact
	for _, u := range s.units() {
		for _, f := range u.Files() {
			src, err := amrt.Source(f)
			if err != nil {
				return nil, err
			}
			out, err := codegen.RewritePackage(f, src, s.opts.Package)
			if err != nil {
				return nil, fmt.Errorf("runtime unit %s: %w", u, err)
			}
			artifacts = append(artifacts, codegen.Artifact{Name: f, Data: out})
		}
		logger.Debug("Added runtime unit.", "unit", string(u))
	}
	return artifacts, nil
}

var notModuleChar = regexp.MustCompile(`[^a-z0-9._-]+`)

// ModulePath derives a go.mod module path from a model name.
func ModulePath(name string) string {
	p := cases.Lower(language.Und).String(strings.TrimSpace(name))
	p = strings.Trim(notModuleChar.ReplaceAllString(p, "-"), "-.")
	if p == "" {
		return "model"
	}
	return p
}

func (s *Session) goMod() []byte {
	module := s.opts.Module
	if module == "" {
		module = ModulePath(s.model.Name)
	}
	return []byte(fmt.Sprintf("module %s\n\ngo %s\n", module, GoVersion))
}
