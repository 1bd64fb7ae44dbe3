package deep

import (
	"fmt"
	"strings"

	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/record"
)

// Node is either a *View or a leaf. Both read the current value of the path
// they were created for.
type Node interface {
	reactive.Readable[any]
	// Path returns the dotted path of the node from the root view.
	Path() string
}

// View is a read-only navigable node over a record-valued source.
type View struct {
	source reactive.Readable[any]
	path   string

	// children caches navigated fields by key.
	children map[string]Node
}

// Wrap returns a view over source. source is expected to hold a record
// (record.Record or map[string]any); other values produce a view with no
// fields.
func Wrap(source reactive.Readable[any]) *View {
	return &View{
		source:   reactive.ReadOnly(source),
		children: make(map[string]Node),
	}
}

// Get returns the whole value and tracks the read.
func (v *View) Get() any {
	return v.source.Get()
}

// Peek returns the whole value without tracking.
func (v *View) Peek() any {
	return v.source.Peek()
}

// Version returns the version of the underlying node.
func (v *View) Version() uint64 {
	return v.source.Version()
}

// Path returns the dotted path of the view; the root view's path is empty.
func (v *View) Path() string {
	return v.path
}

// Record returns the current value as a record, without tracking.
func (v *View) Record() (record.Record, bool) {
	return record.As(v.source.Peek())
}

// Keys returns the field names of the current value in order, without
// tracking. A non-record value has no keys.
func (v *View) Keys() []string {
	r, ok := v.Record()
	if !ok {
		return nil
	}
	return r.Keys()
}

// Field returns the node for key, creating and caching it on first access.
// It reports false when the current value has no such field.
func (v *View) Field(key string) (Node, bool) {
	if n, ok := v.children[key]; ok {
		return n, true
	}

	r, ok := v.Record()
	if !ok {
		return nil, false
	}
	current, ok := r.Get(key)
	if !ok {
		return nil, false
	}

	src := reactive.NewDerived(func() any {
		return fieldOf(v.source.Get(), key)
	}, reactive.WithName[any](v.join(key)))

	var n Node
	if record.Is(current) {
		n = &View{
			source:   src,
			path:     v.join(key),
			children: make(map[string]Node),
		}
	} else {
		n = &leaf{Readable: reactive.ReadOnly[any](src), path: v.join(key)}
	}
	v.children[key] = n
	return n, true
}

// Child returns the nested view for key. It reports false when the field is
// missing or was a leaf when first navigated.
func (v *View) Child(key string) (*View, bool) {
	n, ok := v.Field(key)
	if !ok {
		return nil, false
	}
	child, ok := n.(*View)
	return child, ok
}

// Leaf returns the read-only node for a non-record field.
func (v *View) Leaf(key string) (reactive.Readable[any], bool) {
	n, ok := v.Field(key)
	if !ok {
		return nil, false
	}
	if _, isView := n.(*View); isView {
		return nil, false
	}
	return n, true
}

// At navigates a dotted path such as "user.address.city". An empty path
// returns the view itself.
func (v *View) At(path string) (Node, error) {
	if path == "" {
		return v, nil
	}
	var cur Node = v
	for _, key := range strings.Split(path, ".") {
		view, ok := cur.(*View)
		if !ok {
			return nil, fmt.Errorf("deep: %q is not a record", cur.Path())
		}
		next, ok := view.Field(key)
		if !ok {
			return nil, fmt.Errorf("deep: no field %q under %q", key, view.path)
		}
		cur = next
	}
	return cur, nil
}

// Walk visits every field reachable from v depth-first in key order, calling
// fn with each node. Nested views are visited before their children.
func (v *View) Walk(fn func(Node)) {
	for _, key := range v.Keys() {
		n, ok := v.Field(key)
		if !ok {
			continue
		}
		fn(n)
		if child, ok := n.(*View); ok {
			child.Walk(fn)
		}
	}
}

func (v *View) join(key string) string {
	if v.path == "" {
		return key
	}
	return v.path + "." + key
}

func fieldOf(value any, key string) any {
	r, ok := record.As(value)
	if !ok {
		return nil
	}
	field, _ := r.Get(key)
	return field
}

// leaf is a read-only node for a non-record field.
type leaf struct {
	reactive.Readable[any]
	path string
}

func (l *leaf) Path() string {
	return l.path
}
