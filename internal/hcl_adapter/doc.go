// Package hcl_adapter loads models written in HCL into the format-agnostic
// config.Model, resolving parameter and variable values on the way.
package hcl_adapter
