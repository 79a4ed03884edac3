// Package app contains the core application logic: it wires the model
// loader to an export session, decoupled from any specific entrypoint like
// a CLI.
package app
