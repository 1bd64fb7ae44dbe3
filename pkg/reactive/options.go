package reactive

import "fmt"

// Option configures a Cell, Derived or Linked node at construction.
type Option[T any] func(*nodeOptions[T])

type nodeOptions[T any] struct {
	name  string
	equal func(T, T) bool
}

// WithName labels the node. Names appear in errors and observer events.
func WithName[T any](name string) Option[T] {
	return func(o *nodeOptions[T]) {
		o.name = name
	}
}

// WithEquals replaces the default equality used to decide whether a new value
// is a change. Useful when reflect.DeepEqual is too expensive or has the wrong
// semantics for T.
func WithEquals[T any](fn func(T, T) bool) Option[T] {
	return func(o *nodeOptions[T]) {
		o.equal = fn
	}
}

func applyOptions[T any](kind Kind, id uint64, opts []Option[T]) nodeOptions[T] {
	var o nodeOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = fmt.Sprintf("%s#%d", kind, id)
	}
	if o.equal == nil {
		o.equal = defaultEquals[T]
	}
	return o
}
