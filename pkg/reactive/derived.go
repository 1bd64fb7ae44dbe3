package reactive

// Derived is a memoized computation over other reactive nodes.
//
// Derived values are lazy: compute runs on the first read and afterwards only
// when a read finds that one of the dependencies captured during the last
// evaluation has a newer version. The dependency set is rebuilt on every
// evaluation, so branches inside compute narrow or widen it over time.
//
// compute must be pure. Writing a node from inside it panics with
// *ReentrantMutationError, and a panic from compute leaves the previously
// cached value and dependency stamps untouched.
type Derived[T any] struct {
	id      uint64
	name    string
	kind    Kind
	compute func() T
	equal   func(T, T) bool

	value    T
	hasValue bool
	version  uint64
	deps     []stamp

	// computing guards against a node reading itself.
	computing bool
}

// NewDerived creates a derived node. compute does not run until the first read.
func NewDerived[T any](compute func() T, opts ...Option[T]) *Derived[T] {
	return newDerived(KindDerived, compute, opts)
}

func newDerived[T any](kind Kind, compute func() T, opts []Option[T]) *Derived[T] {
	id := nextID()
	o := applyOptions(kind, id, opts)
	return &Derived[T]{
		id:      id,
		name:    o.name,
		kind:    kind,
		compute: compute,
		equal:   o.equal,
	}
}

// Get returns the value, recomputing if stale, and tracks the read.
func (d *Derived[T]) Get() T {
	v := d.refresh()
	track(d, v)
	return d.value
}

// Peek returns the value, recomputing if stale, without tracking.
func (d *Derived[T]) Peek() T {
	d.refresh()
	return d.value
}

// Version returns a counter that increases each time a recomputation produces
// a value different from the cached one.
func (d *Derived[T]) Version() uint64 {
	return d.refresh()
}

// ID returns the node's unique identifier.
func (d *Derived[T]) ID() uint64 {
	return d.id
}

// Name returns the node's label.
func (d *Derived[T]) Name() string {
	return d.name
}

// Dependencies returns the number of nodes read by the last evaluation.
func (d *Derived[T]) Dependencies() int {
	return len(d.deps)
}

func (d *Derived[T]) nodeID() uint64 { return d.id }
func (d *Derived[T]) label() string  { return d.name }

func (d *Derived[T]) refresh() uint64 {
	if !d.hasValue || depsChanged(d.deps) {
		d.recompute()
	}
	return d.version
}

// stampCopy returns the dependency stamps of the last evaluation.
func (d *Derived[T]) stampCopy() []stamp {
	out := make([]stamp, len(d.deps))
	copy(out, d.deps)
	return out
}

func (d *Derived[T]) recompute() {
	if d.computing {
		panic(&CycleError{Cell: d.name})
	}
	d.computing = true
	defer func() { d.computing = false }()

	next, deps := evaluate(d.name, d.compute)

	d.deps = deps
	if !d.hasValue || !d.equal(d.value, next) {
		d.value = next
		d.version++
	}
	d.hasValue = true
	emit(Event{Type: EventRecompute, Kind: d.kind, ID: d.id, Name: d.name, Version: d.version})
}
