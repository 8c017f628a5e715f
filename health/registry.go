package health

import (
	"fmt"
	"slices"
	"sync"
)

// Registry is a caller-owned, ordered collection of checks.
//
// Registering a name that already exists replaces the earlier check in
// place. Checks returns a snapshot, so an invocation never observes later
// registrations.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
	order  []string
}

// NewRegistry creates a registry holding checks, in order. It panics if any
// check is nil or unnamed; use Register to handle those as errors.
func NewRegistry(checks ...Check) *Registry {
	r := &Registry{checks: make(map[string]Check, len(checks))}
	for _, c := range checks {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds check to the registry, replacing any check with the same name.
// It returns ErrInvalidCheck for a nil check or one without a usable name.
func (r *Registry) Register(check Check) error {
	if check == nil {
		return fmt.Errorf("%w: nil check", ErrInvalidCheck)
	}
	name, ok := nameOf(check)
	switch {
	case !ok:
		return fmt.Errorf("%w: name panicked", ErrInvalidCheck)
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidCheck)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checks[name]; !exists {
		r.order = append(r.order, name)
	}
	r.checks[name] = check
	return nil
}

// Unregister removes the named check. It reports whether a check was removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.checks[name]; !ok {
		return false
	}
	delete(r.checks, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	return true
}

// Get returns the named check, or ErrCheckNotFound.
func (r *Registry) Get(name string) (Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.checks[name]
	if !ok {
		return nil, ErrCheckNotFound
	}
	return c, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Checks returns a snapshot of the registered checks in registration order.
func (r *Registry) Checks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Check, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.checks[name])
	}
	return out
}

var _ CheckSource = (*Registry)(nil)
