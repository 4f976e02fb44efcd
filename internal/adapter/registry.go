package adapter

import (
	"fmt"
	"sort"

	"github.com/mbelyaev/ferry/internal/common"
)

// Registry maps backend names to adapter instances. It is built once at
// startup; lookups never construct anything.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters[a.Name()] = a
	}
	return r
}

// Lookup returns the adapter registered for the backend name. A miss is a
// distinct failure kind from a missing profile; match it with
// common.ErrAdapterNotFound.
func (r *Registry) Lookup(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("backend %q: %w", name, common.ErrAdapterNotFound)
	}
	return a, nil
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for n := range r.adapters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
