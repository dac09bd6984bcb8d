package paramtype

import (
	"fmt"
	"slices"
)

// Registry holds every type an expression may reference.
type Registry struct {
	inferred Type
	types    map[string]Type
	names    []string
}

// New creates a registry containing the built-in types followed by custom.
// Names are validated in declaration order and the first violation is returned.
func New(custom ...Type) (*Registry, error) {
	str := String()
	all := append([]Type{Int(), str, Bool()}, custom...)

	r := &Registry{
		inferred: str,
		types:    make(map[string]Type, len(all)),
		names:    make([]string, 0, len(all)),
	}

	for _, t := range all {
		name := t.Name()
		if _, exists := r.types[name]; exists {
			return nil, fmt.Errorf("%w: cannot re-declare type %q", ErrDuplicateName, name)
		}
		if !isAlphabetic(name) {
			return nil, fmt.Errorf("%w: type %q", ErrInvalidName, name)
		}
		r.types[name] = t
		r.names = append(r.names, name)
	}

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(custom ...Type) *Registry {
	r, err := New(custom...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Inferred returns the type applied to parameters without an explicit type.
func (r *Registry) Inferred() Type {
	return r.inferred
}

// Names returns registered type names in declaration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
