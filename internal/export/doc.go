// Package export turns a loaded model into a standalone Go program: the
// model's declarations and translated formulas, the runtime files they
// depend on, table data files and a go.mod.
//
// A Session is single-use. It owns its symbol snapshot, helper registry and
// translator, so concurrent exports never share state. All artifacts are
// written to temporary files first and renamed into place only when every
// one of them was written.
package export
