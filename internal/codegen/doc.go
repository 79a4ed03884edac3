// Package codegen holds the building blocks for emitting Go source: a
// sectioned file buffer rendered in a fixed order and formatted with
// goimports, Go literal helpers, and package-clause rewriting for the
// embedded runtime files.
package codegen
