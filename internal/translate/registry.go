package translate

// Helper is the Go definition of a non-inline built-in function.
type Helper struct {
	Name string
	Body string
}

// Registry is the insertion-ordered set of helper definitions needed by one
// export. It is not safe for concurrent use; every export owns its own.
type Registry struct {
	index   map[string]int
	helpers []Helper
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a helper unless one with the same name is already present.
// It reports whether the helper was added.
func (r *Registry) Register(name, body string) bool {
	if _, ok := r.index[name]; ok {
		return false
	}
	r.index[name] = len(r.helpers)
	r.helpers = append(r.helpers, Helper{Name: name, Body: body})
	return true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len is the number of registered helpers.
func (r *Registry) Len() int {
	return len(r.helpers)
}

// Definitions returns the helpers in first-registered order.
func (r *Registry) Definitions() []Helper {
	return append([]Helper(nil), r.helpers...)
}
