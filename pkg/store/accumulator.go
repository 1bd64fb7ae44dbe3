package store

import (
	"maps"

	"github.com/vango-dev/linkstore/pkg/deep"
	"github.com/vango-dev/linkstore/pkg/reactive"
)

// accumulator holds the members merged so far during a build.
type accumulator struct {
	reg     *registry
	state   map[string]reactive.Writable[any]
	views   map[string]*deep.View
	props   map[string]reactive.Readable[any]
	methods map[string]Method
}

func newAccumulator() *accumulator {
	return &accumulator{
		reg:     newRegistry(),
		state:   make(map[string]reactive.Writable[any]),
		views:   make(map[string]*deep.View),
		props:   make(map[string]reactive.Readable[any]),
		methods: make(map[string]Method),
	}
}

// view snapshots the state and properties merged so far.
func (a *accumulator) view() View {
	names := make([]string, 0, len(a.reg.order))
	for _, name := range a.reg.order {
		if a.reg.kinds[name] != KindMethod {
			names = append(names, name)
		}
	}
	return View{
		names: names,
		state: maps.Clone(a.state),
		views: maps.Clone(a.views),
		props: maps.Clone(a.props),
	}
}

func (a *accumulator) methodScope() *MethodScope {
	v := a.view()
	v.names = append([]string(nil), a.reg.order...)
	return &MethodScope{View: v, methods: maps.Clone(a.methods)}
}

// merge adds a checked extension. It must only be called after reg.check
// succeeded for ext.
func (a *accumulator) merge(ext *Extension) {
	if ext == nil {
		return
	}
	for _, m := range ext.state {
		a.state[m.name] = m.cell
		if m.view != nil {
			a.views[m.name] = m.view
		}
		a.reg.add(m.name, KindState)
	}
	for _, m := range ext.properties {
		a.props[m.name] = m.cell
		a.reg.add(m.name, KindProperty)
	}
	for _, m := range ext.methods {
		a.methods[m.name] = m.fn
		a.reg.add(m.name, KindMethod)
	}
}
