package export

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"strings"

	"github.com/vk/modelexport/internal/amrt"
	"github.com/vk/modelexport/internal/codegen"
	"github.com/vk/modelexport/internal/config"
	"github.com/vk/modelexport/internal/symbols"
	"github.com/vk/modelexport/internal/tablegen"
	"github.com/vk/modelexport/internal/tracegen"
	"github.com/vk/modelexport/internal/translate"
)

// ErrReservedName is returned when a model symbol would collide with a
// name the generated program needs.
var ErrReservedName = errors.New("name is reserved in generated code")

// Identifiers declared by the generated model file itself.
var generatedNames = []string{
	tablegen.DataDirVar,
	entityType,
	entityConstructor,
	copyMatrixHelper,
	tracegen.TypeName,
	tracegen.ConstructorName,
	translate.TraceVar,
	translate.EntityVar,
	"main",
	"init",
	// packages imported by generated files
	"math",
	"fmt",
	"filepath",
	"os",
}

// Prefixes of the inline table literals.
var generatedPrefixes = []string{tablegen.HeadersVar(""), tablegen.DataVar("")}

// reservedNames collects every identifier a model symbol must not use.
func reservedNames() (map[string]string, error) {
	reserved := make(map[string]string)
	for _, n := range types.Universe.Names() {
		reserved[n] = "a predeclared Go identifier"
	}
	for _, n := range symbols.Builtins() {
		reserved[n] = "a built-in function or constant"
	}
	for _, n := range generatedNames {
		reserved[n] = "declared by the generated program"
	}
	for _, u := range amrt.Units() {
		for _, f := range u.Files() {
			src, err := amrt.Source(f)
			if err != nil {
				return nil, err
			}
			names, err := codegen.TopLevelNames(f, src)
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				reserved[n] = "declared by the runtime"
			}
			imports, err := codegen.ImportNames(f, src)
			if err != nil {
				return nil, err
			}
			for _, n := range imports {
				reserved[n] = "a package imported by the runtime"
			}
		}
	}
	return reserved, nil
}

// checkNames rejects model symbols that would not compile or would shadow a
// declaration of the generated program.
func checkNames(m *config.Model) error {
	reserved, err := reservedNames()
	if err != nil {
		return err
	}

	var names []string
	for _, p := range m.Parameters {
		names = append(names, p.Name)
	}
	for _, v := range m.Variables {
		names = append(names, v.Name)
	}
	for _, t := range m.Tables {
		names = append(names, t.Name)
	}
	for _, f := range m.Formulas {
		names = append(names, f.Name)
	}

	var errs []error
	for _, n := range names {
		reason, ok := reserved[n]
		if !ok && token.IsKeyword(n) {
			reason, ok = "a Go keyword", true
		}
		for _, p := range generatedPrefixes {
			if !ok && strings.HasPrefix(n, p) {
				reason, ok = "declared by the generated program", true
			}
		}
		if ok {
			errs = append(errs, &config.ParamError{Symbol: n, Err: fmt.Errorf("%w: %s", ErrReservedName, reason)})
		}
	}
	return errors.Join(errs...)
}
