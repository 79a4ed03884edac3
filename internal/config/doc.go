// Package config defines the format-agnostic decision model consumed by the
// exporter, along with the Loader interface for reading it from a concrete
// file format.
//
// The `config.Model` is the single source of truth for the `symbols` and
// `export` packages. It is read-only to the exporter; the export session
// takes a snapshot of it before translating anything. Concrete loaders, such
// as the HCL one, are provided in separate packages.
package config
