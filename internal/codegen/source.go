package codegen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sort"
	"strconv"
	"strings"
)

// Artifact is one file produced by an export.
type Artifact struct {
	Name string
	Data []byte
}

// RewritePackage returns src with its package clause set to pkg and a
// generated-code marker prepended.
func RewritePackage(name string, src []byte, pkg string) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	f.Name.Name = pkg

	var out bytes.Buffer
	out.WriteString(GeneratedMarker + "\n\n")
	if err := format.Node(&out, fset, f); err != nil {
		return nil, fmt.Errorf("print %s: %w", name, err)
	}
	return out.Bytes(), nil
}

// TopLevelNames returns the package-level identifiers declared in src,
// sorted. Methods are not included.
func TopLevelNames(name string, src []byte) ([]string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), name, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	var names []string
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				names = append(names, d.Name.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						if n.Name != "_" {
							names = append(names, n.Name)
						}
					}
				}
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// ImportNames returns the names under which src refers to its imported
// packages, sorted. Unaliased imports use the last path element, skipping a
// major version suffix such as /v2. Blank and dot imports bind no name.
func ImportNames(name string, src []byte) ([]string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	var names []string
	for _, imp := range f.Imports {
		if imp.Name != nil {
			if imp.Name.Name != "_" && imp.Name.Name != "." {
				names = append(names, imp.Name.Name)
			}
			continue
		}
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("parse %s: import %s: %w", name, imp.Path.Value, err)
		}
		names = append(names, packageName(path))
	}
	sort.Strings(names)
	return names, nil
}

func packageName(path string) string {
	elems := strings.Split(path, "/")
	last := elems[len(elems)-1]
	if len(elems) > 1 && isMajorVersion(last) {
		last = elems[len(elems)-2]
	}
	return last
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}
