package schema

import (
	"errors"
	"fmt"
	"sync"
)

// Registry validation errors.
var (
	ErrDuplicateObject = errors.New("object already registered")
	ErrDuplicateField  = errors.New("duplicate field label")
	ErrUnknownRefers   = errors.New("refers to an unregistered table")
	ErrNoPrimary       = errors.New("object declares no primary field")
)

// Registry keeps objects in registration order, which must be FK-safe:
// an object may only refer to tables registered before it.
type Registry struct {
	mu      sync.RWMutex
	objects []Object
	byName  map[string]Object
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Object{}}
}

func (r *Registry) Register(o Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[o.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, o.Name)
	}
	if _, ok := o.PrimaryField(); !ok {
		return fmt.Errorf("%w: %s", ErrNoPrimary, o.Name)
	}

	seen := map[string]bool{}
	for _, f := range o.Fields {
		if seen[f.Label] {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateField, o.Name, f.Label)
		}
		seen[f.Label] = true

		if table, _, ok := refersParts(f.Refers); ok && table != o.Name {
			if _, known := r.byName[table]; !known {
				return fmt.Errorf("%w: %s.%s -> %s", ErrUnknownRefers, o.Name, f.Label, table)
			}
		}
	}

	r.objects = append(r.objects, o)
	r.byName[o.Name] = o
	return nil
}

func (r *Registry) MustRegister(o Object) {
	if err := r.Register(o); err != nil {
		panic(err)
	}
}

// Lookup returns a registered object by table name.
func (r *Registry) Lookup(name string) (Object, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.byName[name]
	return o, ok
}

// All returns objects in registration order.
func (r *Registry) All() []Object {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Object, len(r.objects))
	copy(out, r.objects)
	return out
}
