package helpers

import (
	"errors"
	"fmt"
	"sort"
)

// Variadic marks a helper without an upper argument bound.
const Variadic = -1

// Errors reported by helper calls.
var (
	ErrArity    = errors.New("wrong number of arguments")
	ErrArgument = errors.New("invalid argument")
)

// Func is a helper body. args are the positional arguments of
// the call, hash its key=value arguments (possibly nil).
type Func func(args []any, hash map[string]any) (any, error)

// Helper is a named template function.
type Helper struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      Func

	// Block allows opening the helper as a block; the block renders
	// when the result is truthy and the inverse block otherwise.
	Block bool
}

// Call checks the arity and runs the helper.
func (h Helper) Call(args []any, hash map[string]any) (any, error) {
	if !h.Accepts(len(args)) {
		return nil, fmt.Errorf(
			"%s: %w: expected %s, got %d",
			h.Name, ErrArity, h.arity(), len(args),
		)
	}

	out, err := h.Fn(args, hash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.Name, err)
	}

	return out, nil
}

// Accepts reports whether n positional arguments are allowed.
func (h Helper) Accepts(n int) bool {
	return n >= h.MinArgs && (h.MaxArgs == Variadic || n <= h.MaxArgs)
}

func (h Helper) arity() string {
	switch {
	case h.MaxArgs == Variadic:
		return fmt.Sprintf("at least %d", h.MinArgs)
	case h.MinArgs == h.MaxArgs:
		return fmt.Sprintf("%d", h.MinArgs)
	default:
		return fmt.Sprintf("%d to %d", h.MinArgs, h.MaxArgs)
	}
}

// Set maps helper names to helpers.
type Set map[string]Helper

// NewSet builds a set; later helpers replace earlier ones with
// the same name.
func NewSet(hs ...Helper) Set {
	set := make(Set, len(hs))
	for _, h := range hs {
		set[h.Name] = h
	}

	return set
}

// With returns a copy of s extended with hs.
func (s Set) With(hs ...Helper) Set {
	out := make(Set, len(s)+len(hs))
	for name, h := range s {
		out[name] = h
	}

	for _, h := range hs {
		out[h.Name] = h
	}

	return out
}

// Names returns the sorted helper names.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Bundle returns the helper set of the bundle renderer.
func Bundle() Set {
	return NewSet(stringHelpers()...).With(commonHelpers()...)
}

// Full returns the helper set of the index and inline
// renderers.
func Full() Set {
	return Bundle().
		With(documentHelpers()...).
		With(identHelpers()...).
		With(pathHelpers()...).
		With(hashHelpers()...)
}
