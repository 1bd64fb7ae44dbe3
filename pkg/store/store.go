package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vango-dev/linkstore/pkg/deep"
	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/record"
)

// Store is an assembled set of state, property and method members.
//
// A Store is not safe for concurrent use; drive it from one goroutine.
type Store struct {
	id      uuid.UUID
	reg     *registry
	state   map[string]reactive.Writable[any]
	views   map[string]*deep.View
	props   map[string]reactive.Readable[any]
	methods map[string]Method
}

func newStore(id uuid.UUID, acc *accumulator) *Store {
	return &Store{
		id:      id,
		reg:     acc.reg,
		state:   acc.state,
		views:   acc.views,
		props:   acc.props,
		methods: acc.methods,
	}
}

// ID returns the store's instance identifier.
func (s *Store) ID() uuid.UUID {
	return s.id
}

// Names returns every member name in registration order.
func (s *Store) Names() []string {
	out := make([]string, len(s.reg.order))
	copy(out, s.reg.order)
	return out
}

// Kind returns the kind of the named member.
func (s *Store) Kind(name string) (MemberKind, bool) {
	k, ok := s.reg.kinds[name]
	return k, ok
}

// State returns a state member.
func (s *Store) State(name string) (reactive.Writable[any], bool) {
	c, ok := s.state[name]
	return c, ok
}

// Property returns a property member.
func (s *Store) Property(name string) (reactive.Readable[any], bool) {
	p, ok := s.props[name]
	return p, ok
}

// Method returns a method member.
func (s *Store) Method(name string) (Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Deep returns the deep view of a state member. Linked-state members carry one
// from construction; plain state members get one on first request.
func (s *Store) Deep(name string) (*deep.View, bool) {
	if v, ok := s.views[name]; ok {
		return v, true
	}
	c, ok := s.state[name]
	if !ok {
		return nil, false
	}
	v := deep.Wrap(c)
	s.views[name] = v
	return v, true
}

// Get returns the value of a state or property member and tracks the read.
// It panics with ErrUnknownMember for other names; use Value to get an error.
func (s *Store) Get(name string) any {
	v, err := s.Value(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Value returns the value of a state or property member and tracks the read.
func (s *Store) Value(name string) (any, error) {
	if c, ok := s.state[name]; ok {
		return c.Get(), nil
	}
	if p, ok := s.props[name]; ok {
		return p.Get(), nil
	}
	if _, ok := s.methods[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrNotValue, name)
	}
	return nil, unknownMember(name)
}

// Set writes a state member.
func (s *Store) Set(name string, value any) error {
	c, err := writable(name, s.state, s.props, s.methods)
	if err != nil {
		return err
	}
	c.Set(value)
	return nil
}

// Patch writes several state members. All names are validated before any is
// written.
func (s *Store) Patch(values record.Record) error {
	return patch(values, s.state, s.props, s.methods)
}

// Call invokes a method member.
func (s *Store) Call(name string, args ...any) (any, error) {
	m, ok := s.methods[name]
	if !ok {
		if _, exists := s.reg.kinds[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrNotMethod, name)
		}
		return nil, unknownMember(name)
	}
	return m(args...)
}

// Snapshot returns the current state values as a record in registration
// order, without tracking.
func (s *Store) Snapshot() record.Record {
	fields := make([]record.Field, 0, len(s.state))
	for _, name := range s.reg.order {
		if c, ok := s.state[name]; ok {
			fields = append(fields, record.Field{Key: name, Value: c.Peek()})
		}
	}
	return record.FromFields(fields...)
}

// View returns the read-only view of the store's state and properties.
func (s *Store) View() View {
	names := make([]string, 0, len(s.reg.order))
	for _, name := range s.reg.order {
		if s.reg.kinds[name] != KindMethod {
			names = append(names, name)
		}
	}
	return View{names: names, state: s.state, views: s.views, props: s.props}
}
