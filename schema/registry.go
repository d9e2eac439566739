package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrDuplicateType = errors.New("type already registered")
	ErrNilType       = errors.New("nil type")
)

// UnknownTypeError is returned when a type name resolves nowhere.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown schema.org type %q", e.Name)
}

// TypeRegistry resolves Schema.org type names to descriptors. Safe for
// concurrent use.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// NewTypeRegistry returns a registry pre-populated with the built-in types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{types: make(map[string]*Type)}
	for _, t := range []*Type{Thing, Article, Person, Organization} {
		r.types[t.Name] = t
	}
	return r
}

// Register adds a type. Registering a nil type or a name that already
// exists is an error.
func (r *TypeRegistry) Register(t *Type) error {
	if t == nil {
		return ErrNilType
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
	}
	r.types[t.Name] = t
	return nil
}

// Lookup resolves a type name.
func (r *TypeRegistry) Lookup(name string) (*Type, error) {
	r.mu.RLock()
	t, ok := r.types[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return t, nil
}

// Names returns all registered type names in sorted order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTypes is the registry used by the package-level helpers and by
// ParseDocument when no registry is passed.
var DefaultTypes = NewTypeRegistry()

// RegisterType adds a type to DefaultTypes.
func RegisterType(t *Type) error { return DefaultTypes.Register(t) }

// Lookup resolves a type name against DefaultTypes.
func Lookup(name string) (*Type, error) { return DefaultTypes.Lookup(name) }

// MustLookup is Lookup for wiring done at program start; it panics on
// unknown names.
func MustLookup(name string) *Type {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// TypeNames returns the names registered in DefaultTypes.
func TypeNames() []string { return DefaultTypes.Names() }
