package store

import (
	"sort"

	"github.com/vango-dev/linkstore/pkg/deep"
	"github.com/vango-dev/linkstore/pkg/reactive"
)

// MemberKind is the category a store member belongs to.
type MemberKind string

const (
	KindState    MemberKind = "state"
	KindProperty MemberKind = "property"
	KindMethod   MemberKind = "method"
)

// Method is a store member that can be called.
type Method func(args ...any) (any, error)

// Methods maps method names to implementations. Names are registered in
// lexical order.
type Methods map[string]Method

// Computed maps property names to computations. Names are registered in
// lexical order.
type Computed map[string]func() any

type stateMember struct {
	name string
	cell reactive.Writable[any]
	view *deep.View
}

type propertyMember struct {
	name string
	cell reactive.Readable[any]
}

type methodMember struct {
	name string
	fn   Method
}

// Extension is the set of members a feature adds to a store.
// The zero value is an empty extension.
type Extension struct {
	state      []stateMember
	properties []propertyMember
	methods    []methodMember
}

// AddState adds a writable state member.
func (e *Extension) AddState(name string, cell reactive.Writable[any]) *Extension {
	e.state = append(e.state, stateMember{name: name, cell: cell})
	return e
}

// AddProperty adds a read-only property member.
func (e *Extension) AddProperty(name string, cell reactive.Readable[any]) *Extension {
	e.properties = append(e.properties, propertyMember{name: name, cell: reactive.ReadOnly(cell)})
	return e
}

// AddMethod adds a method member.
func (e *Extension) AddMethod(name string, fn Method) *Extension {
	e.methods = append(e.methods, methodMember{name: name, fn: fn})
	return e
}

func (e *Extension) addDecomposed(name string, cell reactive.Writable[any], view *deep.View) {
	e.state = append(e.state, stateMember{name: name, cell: cell, view: view})
}

// Names returns the proposed member names in registration order: state,
// then properties, then methods.
func (e *Extension) Names() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.state)+len(e.properties)+len(e.methods))
	for _, m := range e.state {
		names = append(names, m.name)
	}
	for _, m := range e.properties {
		names = append(names, m.name)
	}
	for _, m := range e.methods {
		names = append(names, m.name)
	}
	return names
}

// Counts returns how many members of each kind the extension proposes.
func (e *Extension) Counts() (state, properties, methods int) {
	if e == nil {
		return 0, 0, 0
	}
	return len(e.state), len(e.properties), len(e.methods)
}

type proposal struct {
	name string
	kind MemberKind
}

func (e *Extension) proposals() []proposal {
	out := make([]proposal, 0, len(e.state)+len(e.properties)+len(e.methods))
	for _, m := range e.state {
		out = append(out, proposal{m.name, KindState})
	}
	for _, m := range e.properties {
		out = append(out, proposal{m.name, KindProperty})
	}
	for _, m := range e.methods {
		out = append(out, proposal{m.name, KindMethod})
	}
	return out
}

// registry is the flat name -> kind table shared by all three member kinds.
type registry struct {
	kinds map[string]MemberKind
	order []string
}

func newRegistry() *registry {
	return &registry{kinds: make(map[string]MemberKind)}
}

// check validates every name an extension proposes against the registry and
// against the extension itself. It does not modify the registry.
func (r *registry) check(ext *Extension) error {
	if ext == nil {
		return nil
	}
	proposed := make(map[string]MemberKind)
	for _, m := range ext.proposals() {
		if existing, ok := r.kinds[m.name]; ok {
			return &DuplicateMemberError{Name: m.name, Existing: existing, Proposed: m.kind}
		}
		if existing, ok := proposed[m.name]; ok {
			return &DuplicateMemberError{Name: m.name, Existing: existing, Proposed: m.kind}
		}
		proposed[m.name] = m.kind
	}
	return nil
}

func (r *registry) add(name string, kind MemberKind) {
	r.kinds[name] = kind
	r.order = append(r.order, name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
