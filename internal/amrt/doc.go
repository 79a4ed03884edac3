// Package amrt is the numeric runtime that exported models depend on:
// lookup, distribution and matrix tables with cubic-spline interpolation,
// the Markov reward trace, a handful of probability distributions and
// matrix functions.
//
// The package is ordinary tested Go. The exporter embeds the runtime files
// (see Source) and writes them next to the generated model with the package
// clause rewritten, so generated programs need nothing beyond the standard
// library. Runtime files must therefore only depend on the standard library
// and on files of the same Unit.
package amrt
