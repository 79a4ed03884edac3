// Package symbols classifies the words of a model expression: model tables
// and variables, the trace keyword, and the catalog of built-in functions,
// matrix functions, distributions and constants with their Go spellings.
package symbols
