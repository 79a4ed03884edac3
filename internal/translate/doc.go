// Package translate converts model expressions into Go expressions.
//
// Translation is a single left-to-right pass over the normalized expression.
// Each word is classified against a symbols.Snapshot and rewritten:
// table references become runtime Table calls, variables become fields of
// the current entity in person-level code, built-in functions are mapped to
// their Go spelling, and matrix literals become composite literals.
// Arguments of calls and table references are translated recursively.
//
// Built-in functions without a direct Go equivalent are recorded in a
// Registry so that each helper definition is emitted exactly once per
// export, in the order it was first used.
package translate
