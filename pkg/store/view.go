package store

import (
	"fmt"

	"github.com/vango-dev/linkstore/pkg/deep"
	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/record"
)

// Getter is implemented by View, MethodScope and Store.
type Getter interface {
	Get(name string) any
}

// Read returns the named member's value as T, tracking the read.
// It panics if the member does not exist or holds a value of another type;
// both are wiring mistakes in the features, not runtime conditions.
func Read[T any](g Getter, name string) T {
	v := g.Get(name)
	if v == nil {
		var zero T
		return zero
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("store: member %q holds %T, not %T", name, v, zero))
	}
	return out
}

// View is the read-only surface a feature sees: the state and properties
// produced by the features before it. Methods are never part of a View.
type View struct {
	names []string
	state map[string]reactive.Writable[any]
	views map[string]*deep.View
	props map[string]reactive.Readable[any]
}

// Get returns the current value of a state or property member and tracks the
// read. It panics with ErrUnknownMember for names the view does not contain.
func (v View) Get(name string) any {
	r, ok := v.Lookup(name)
	if !ok {
		panic(unknownMember(name))
	}
	return r.Get()
}

// Lookup returns the named state or property as a read-only node.
func (v View) Lookup(name string) (reactive.Readable[any], bool) {
	if c, ok := v.state[name]; ok {
		return reactive.ReadOnly[any](c), true
	}
	if p, ok := v.props[name]; ok {
		return p, true
	}
	return nil, false
}

// Deep returns the deep view of a state member, when it has one.
func (v View) Deep(name string) (*deep.View, bool) {
	dv, ok := v.views[name]
	return dv, ok
}

// Has reports whether the view contains name.
func (v View) Has(name string) bool {
	_, ok := v.Lookup(name)
	return ok
}

// Names returns the visible member names in registration order.
func (v View) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// MethodScope is what WithMethods factories receive: the full view of earlier
// members, including methods, plus write access to state.
type MethodScope struct {
	View
	methods map[string]Method
}

// State returns the named state member for writing.
func (s *MethodScope) State(name string) (reactive.Writable[any], bool) {
	c, ok := s.state[name]
	return c, ok
}

// Set writes a state member.
func (s *MethodScope) Set(name string, value any) error {
	c, err := writable(name, s.state, s.props, s.methods)
	if err != nil {
		return err
	}
	c.Set(value)
	return nil
}

// Patch writes several state members. All names are validated before any is
// written.
func (s *MethodScope) Patch(values record.Record) error {
	return patch(values, s.state, s.props, s.methods)
}

// Method returns an earlier method by name.
func (s *MethodScope) Method(name string) (Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Call invokes an earlier method by name.
func (s *MethodScope) Call(name string, args ...any) (any, error) {
	m, ok := s.methods[name]
	if !ok {
		if s.Has(name) {
			return nil, fmt.Errorf("%w: %q", ErrNotMethod, name)
		}
		return nil, unknownMember(name)
	}
	return m(args...)
}

func writable(name string, state map[string]reactive.Writable[any], props map[string]reactive.Readable[any], methods map[string]Method) (reactive.Writable[any], error) {
	if c, ok := state[name]; ok {
		return c, nil
	}
	_, isProp := props[name]
	_, isMethod := methods[name]
	if isProp || isMethod {
		return nil, fmt.Errorf("%w: %q", ErrNotWritable, name)
	}
	return nil, unknownMember(name)
}

func patch(values record.Record, state map[string]reactive.Writable[any], props map[string]reactive.Readable[any], methods map[string]Method) error {
	cells := make([]reactive.Writable[any], 0, values.Len())
	for _, key := range values.Keys() {
		c, err := writable(key, state, props, methods)
		if err != nil {
			return err
		}
		cells = append(cells, c)
	}
	for i, f := range values.Fields() {
		cells[i].Set(f.Value)
	}
	return nil
}
