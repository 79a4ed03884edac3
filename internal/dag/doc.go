// Package dag is a small directed acyclic graph of named symbols. The model
// loader uses it to resolve parameter and variable values in dependency
// order and to reject circular definitions.
package dag
