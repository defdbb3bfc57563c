package dispatch

import (
	"errors"
	"fmt"
	"sort"

	"github.com/danmuck/spinesniff/internal/skeleton"
)

var (
	ErrRuntimeExists  = errors.New("dispatch: runtime already registered")
	ErrRuntimeNil     = errors.New("dispatch: runtime is nil")
	ErrInvalidVersion = errors.New("dispatch: invalid runtime version")
)

// Registry stores runtimes by schema version.
type Registry struct {
	items map[skeleton.SchemaVersion]Runtime
}

// NewRegistry creates an empty runtime registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[skeleton.SchemaVersion]Runtime)}
}

// Register adds a runtime to the registry.
func (r *Registry) Register(rt Runtime) error {
	if rt == nil {
		return ErrRuntimeNil
	}
	v := rt.Version()
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, int(v))
	}
	if _, ok := r.items[v]; ok {
		return fmt.Errorf("%w: %s", ErrRuntimeExists, v)
	}
	r.items[v] = rt
	return nil
}

// Resolve returns the runtime for v.
func (r *Registry) Resolve(v skeleton.SchemaVersion) (Runtime, bool) {
	rt, ok := r.items[v]
	return rt, ok
}

// Versions returns registered versions in ascending order.
func (r *Registry) Versions() []skeleton.SchemaVersion {
	list := make([]skeleton.SchemaVersion, 0, len(r.items))
	for v := range r.items {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i] < list[j]
	})
	return list
}
