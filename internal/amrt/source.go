package amrt

import (
	"embed"
	"fmt"
)

//go:embed table.go spline.go trace.go distributions.go matrix.go
var sources embed.FS

// Unit names a group of runtime files that are emitted together.
type Unit string

const (
	UnitTable         Unit = "table"
	UnitTrace         Unit = "trace"
	UnitDistributions Unit = "distributions"
	UnitMatrix        Unit = "matrix"
)

var unitFiles = map[Unit][]string{
	UnitTable:         {"table.go", "spline.go"},
	UnitTrace:         {"trace.go"},
	UnitDistributions: {"distributions.go"},
	UnitMatrix:        {"matrix.go"},
}

// Units lists every unit in emission order.
func Units() []Unit {
	return []Unit{UnitTable, UnitTrace, UnitDistributions, UnitMatrix}
}

// Files returns the file names that make up u.
func (u Unit) Files() []string {
	return unitFiles[u]
}

// Source returns the Go source of one runtime file.
func Source(name string) ([]byte, error) {
	b, err := sources.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("runtime source %q: %w", name, err)
	}
	return b, nil
}
