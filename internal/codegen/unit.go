package codegen

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/tools/imports"
)

// Section is a region of a generated file. Sections are rendered in the
// order of their values regardless of the order they were written in.
type Section int

const (
	Parameters Section = iota
	Variables
	Entity
	Tables
	Trace
	Formulas
	Helpers
	Main
	numSections
)

// Block accumulates the source text of one section.
type Block struct {
	buf bytes.Buffer
}

// Line writes one formatted line.
func (b *Block) Line(format string, args ...any) {
	fmt.Fprintf(&b.buf, format, args...)
	b.buf.WriteByte('\n')
}

// Emit writes s verbatim followed by a newline.
func (b *Block) Emit(s string) {
	b.buf.WriteString(s)
	b.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (b *Block) Blank() {
	b.buf.WriteByte('\n')
}

// String returns the text written so far.
func (b *Block) String() string {
	return b.buf.String()
}

// Len is the number of bytes written so far.
func (b *Block) Len() int {
	return b.buf.Len()
}

// Unit is one generated Go source file.
type Unit struct {
	Name    string
	Package string
	// Header is a comment placed between the generated-code marker and the
	// package clause, without comment delimiters.
	Header   string
	imports  map[string]bool
	sections [numSections]Block
}

// NewUnit creates an empty file in package pkg.
func NewUnit(name, pkg string) *Unit {
	return &Unit{Name: name, Package: pkg, imports: make(map[string]bool)}
}

// Import records a dependency on the import path. Unused imports are dropped
// by Format.
func (u *Unit) Import(path string) {
	u.imports[path] = true
}

// Section returns the block for s.
func (u *Unit) Section(s Section) *Block {
	return &u.sections[s]
}

// Bytes renders the unformatted file.
func (u *Unit) Bytes() []byte {
	var out bytes.Buffer
	out.WriteString(GeneratedMarker + "\n\n")
	if u.Header != "" {
		out.WriteString("/*\n" + u.Header + "\n*/\n\n")
	}
	fmt.Fprintf(&out, "package %s\n\n", u.Package)

	if len(u.imports) > 0 {
		paths := make([]string, 0, len(u.imports))
		for p := range u.imports {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		out.WriteString("import (\n")
		for _, p := range paths {
			out.WriteString("\t" + strconv.Quote(p) + "\n")
		}
		out.WriteString(")\n\n")
	}

	for i := range u.sections {
		if u.sections[i].Len() == 0 {
			continue
		}
		out.Write(u.sections[i].buf.Bytes())
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// Format renders the file, removes unused imports and gofmts it.
func (u *Unit) Format() ([]byte, error) {
	return Format(u.Name, u.Bytes())
}

// GeneratedMarker is the standard first line of generated Go files.
const GeneratedMarker = "// Code generated by modelexport. DO NOT EDIT."

// Format gofmts src and removes unused imports. Every package the file
// refers to must already be imported.
func Format(name string, src []byte) ([]byte, error) {
	out, err := imports.Process(name, src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return out, nil
}
