package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var ErrDuplicateHandler = errors.New("duplicate type handler")

// Registry maps value types to handlers. Registration happens at
// store-creation time, before any mutation; lookups may come from a
// concurrently running loader, so the registry is the one guarded
// structure in the system.
type Registry struct {
	mu            sync.RWMutex
	allowOverride bool
	byType        map[reflect.Type]Handler
	byName        map[string]Handler
	order         []Handler
}

// NewRegistry creates a registry. allowOverride selects the duplicate
// registration policy: false rejects with ErrDuplicateHandler, true
// lets the later registration win for subsequent encodes.
func NewRegistry(allowOverride bool) *Registry {
	return &Registry{
		allowOverride: allowOverride,
		byType:        map[reflect.Type]Handler{},
		byName:        map[string]Handler{},
	}
}

func (r *Registry) Register(h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := h.Type()
	if t == nil {
		return fmt.Errorf("handler %q has no type", h.Name())
	}
	if _, exists := r.byType[t]; exists && !r.allowOverride {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, t)
	}
	if prev, exists := r.byName[h.Name()]; exists && prev.Type() != t && !r.allowOverride {
		return fmt.Errorf("%w: name %q already registered for %s",
			ErrDuplicateHandler, h.Name(), prev.Type())
	}
	r.byType[t] = h
	r.byName[h.Name()] = h
	r.order = append(r.order, h)
	return nil
}

// ForType returns the handler registered for the exact type t.
func (r *Registry) ForType(t reflect.Type) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byType[t]
	return h, ok
}

// ForName returns the handler registered under a constructor name.
func (r *Registry) ForName(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byName[name]
	return h, ok
}

// Handlers returns all handlers in registration order. Overridden
// registrations appear once, in their first position.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]Handler, 0, len(r.byName))
	seen := map[string]bool{}
	for _, h := range r.order {
		cur, ok := r.byName[h.Name()]
		if !ok || seen[h.Name()] {
			continue
		}
		seen[h.Name()] = true
		res = append(res, cur)
	}
	return res
}
