package store

import (
	"fmt"

	"github.com/vango-dev/linkstore/pkg/deep"
	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/record"
)

// Feature extends a store under construction.
type Feature interface {
	apply(acc *accumulator) (*Extension, error)
}

// FeatureFunc adapts a function to Feature. The function sees the state and
// properties produced by earlier features, never their methods.
type FeatureFunc func(v View) (*Extension, error)

func (f FeatureFunc) apply(acc *accumulator) (*Extension, error) {
	return f(acc.view())
}

// WithState adds one writable state member per key of initial.
func WithState(initial record.Record) Feature {
	return WithStateFunc(func() record.Record { return initial })
}

// WithStateFunc is WithState with the initial record produced by factory at
// build time.
func WithStateFunc(factory func() record.Record) Feature {
	return FeatureFunc(func(View) (*Extension, error) {
		initial := factory()
		ext := &Extension{}
		for _, f := range initial.Fields() {
			ext.AddState(f.Key, reactive.NewCell[any](f.Value, reactive.WithName[any](f.Key)))
		}
		return ext, nil
	})
}

// WithComputed adds one read-only property per entry returned by factory.
func WithComputed(factory func(v View) Computed) Feature {
	return FeatureFunc(func(v View) (*Extension, error) {
		computed := factory(v)
		ext := &Extension{}
		for _, name := range sortedKeys(computed) {
			ext.AddProperty(name, reactive.NewDerived(computed[name], reactive.WithName[any](name)))
		}
		return ext, nil
	})
}

// Source is the result of a linked-state factory: either a plain value or a
// writable node whose value is read through.
type Source struct {
	value  any
	handle reactive.Writable[any]
}

// Value wraps a plain value, normally a record.
func Value(v any) Source {
	return Source{value: v}
}

// Handle wraps a writable node. The linked state reads through it on every
// evaluation, so writes to the node flow into the decomposed members.
func Handle(w reactive.Writable[any]) Source {
	return Source{handle: w}
}

func (s Source) resolve() any {
	if s.handle != nil {
		return s.handle.Get()
	}
	return s.value
}

// WithLinkedState adds one linked state member per key of the record produced
// by factory.
//
// factory runs inside a linked computation: every member it reads becomes a
// dependency, and it re-runs when any of them changes. Each key becomes its
// own linked cell reading that key of the shared record, exposed with a deep
// view. Overriding one key leaves the others following the record; an override
// is dropped as soon as the record itself changes.
//
// When the factory returns a Handle, writes to a key are written through to
// the handle as a copy of its record with that key replaced, so the inner
// node keeps the value.
//
// The factory is evaluated once at build time to learn the keys. A value that
// is not a record fails the build with *InvalidLinkedStateShapeError.
func WithLinkedState(factory func(v View) Source) Feature {
	return FeatureFunc(func(v View) (*Extension, error) {
		current := new(Source)
		top := reactive.NewLinked(func() any {
			*current = factory(v)
			return current.resolve()
		}, reactive.WithName[any]("linked-state"))

		initial, ok := record.As(top.Peek())
		if !ok {
			return nil, &InvalidLinkedStateShapeError{Got: fmt.Sprintf("%T", top.Peek())}
		}

		ext := &Extension{}
		for _, key := range initial.Keys() {
			cell := reactive.NewLinked(func() any {
				r, _ := record.As(top.Get())
				value, _ := r.Get(key)
				return value
			}, reactive.WithName[any](key))
			field := &linkedField{key: key, cell: cell, top: top, source: current}
			ext.addDecomposed(key, field, deep.Wrap(field))
		}
		return ext, nil
	})
}

// linkedField is one decomposed key of a linked state. Writes go to the
// handle the factory last returned, if any, and otherwise pin an override on
// the key's own linked cell.
type linkedField struct {
	key    string
	cell   *reactive.Linked[any]
	top    *reactive.Linked[any]
	source *Source
}

func (f *linkedField) Get() any        { return f.cell.Get() }
func (f *linkedField) Peek() any       { return f.cell.Peek() }
func (f *linkedField) Version() uint64 { return f.cell.Version() }

func (f *linkedField) Set(value any) {
	f.top.Peek()
	h := f.source.handle
	if h == nil {
		f.cell.Set(value)
		return
	}
	f.cell.Reset()
	rec, _ := record.As(h.Peek())
	h.Set(rec.With(f.key, value))
}

func (f *linkedField) Update(fn func(any) any) {
	f.Set(fn(f.Peek()))
}

// WithMethods adds the methods returned by factory. Unlike every other
// feature, factory sees earlier methods and may write state through the scope.
func WithMethods(factory func(s *MethodScope) Methods) Feature {
	return methodsFeature(factory)
}

type methodsFeature func(s *MethodScope) Methods

func (f methodsFeature) apply(acc *accumulator) (*Extension, error) {
	methods := f(acc.methodScope())
	ext := &Extension{}
	for _, name := range sortedKeys(methods) {
		ext.AddMethod(name, methods[name])
	}
	return ext, nil
}
