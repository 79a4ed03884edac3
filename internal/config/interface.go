package config

import "context"

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads model files from the given paths and translates them into
	// the format-agnostic model with every parameter and variable value
	// resolved.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
