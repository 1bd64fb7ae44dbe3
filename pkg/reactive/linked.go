package reactive

// Linked is a derived value that can be overridden by hand.
//
// While in derived mode a Linked behaves exactly like a Derived. Set pins a
// manual value and records the dependency stamps of the current evaluation as
// the override's baseline. Reads keep returning the pinned value, without
// running compute, until one of those baseline dependencies moves; the first
// read after that recomputes and discards the override. If compute panics the
// override stays pinned and the next read tries again.
//
// Get, Set, Update and Reset are the whole public surface: compute is fixed at
// construction and cannot be invoked directly.
type Linked[T any] struct {
	src *Derived[T]

	id      uint64
	name    string
	value   T
	version uint64
	exposed bool

	// overridden is true while a manual value is pinned.
	overridden bool
	baseline   []stamp

	// synced is false when value must be re-read from src on the next refresh.
	synced     bool
	srcVersion uint64
}

// NewLinked creates a linked node in derived mode.
func NewLinked[T any](compute func() T, opts ...Option[T]) *Linked[T] {
	src := newDerived(KindLinked, compute, opts)
	return &Linked[T]{
		src:  src,
		id:   src.id,
		name: src.name,
	}
}

// Get returns the pinned value while overridden, otherwise the derived value,
// and tracks the read.
func (l *Linked[T]) Get() T {
	v := l.refresh()
	track(l, v)
	return l.value
}

// Peek is Get without tracking.
func (l *Linked[T]) Peek() T {
	l.refresh()
	return l.value
}

// Set pins value until a dependency of the current evaluation changes.
// If the node is stale it is brought up to date first, so the baseline always
// reflects the state at the time of the call.
func (l *Linked[T]) Set(value T) {
	checkWrite(l.name)
	l.refresh()
	if !l.overridden {
		l.baseline = l.src.stampCopy()
		l.overridden = true
	}
	l.expose(value)
	emit(Event{Type: EventOverride, Kind: KindLinked, ID: l.id, Name: l.name, Version: l.version})
}

// Update sets the node to fn applied to its current value.
func (l *Linked[T]) Update(fn func(T) T) {
	checkWrite(l.name)
	l.Set(fn(l.Peek()))
}

// Reset drops a pinned value; the next read returns the derived value.
func (l *Linked[T]) Reset() {
	checkWrite(l.name)
	if l.overridden {
		l.discard()
	}
}

// Overridden reports whether a manual value is currently pinned and still
// valid.
func (l *Linked[T]) Overridden() bool {
	l.refresh()
	return l.overridden
}

// Version returns a counter that increases whenever the visible value changes,
// whether by recomputation or by Set.
func (l *Linked[T]) Version() uint64 {
	return l.refresh()
}

// ID returns the node's unique identifier.
func (l *Linked[T]) ID() uint64 {
	return l.id
}

// Name returns the node's label.
func (l *Linked[T]) Name() string {
	return l.name
}

func (l *Linked[T]) nodeID() uint64 { return l.id }
func (l *Linked[T]) label() string  { return l.name }

// refresh brings the node up to date. A stale override is dropped only once
// the recomputation succeeded, so a panicking compute leaves it pinned.
func (l *Linked[T]) refresh() uint64 {
	if l.overridden && !depsChanged(l.baseline) {
		return l.version
	}

	v := l.src.refresh()
	if l.overridden {
		l.discard()
		emit(Event{Type: EventDiscard, Kind: KindLinked, ID: l.id, Name: l.name, Version: l.version})
	}
	if !l.synced || v != l.srcVersion {
		l.srcVersion = v
		l.synced = true
		l.expose(l.src.value)
	}
	return l.version
}

func (l *Linked[T]) discard() {
	l.overridden = false
	l.baseline = nil
	l.synced = false
}

func (l *Linked[T]) expose(value T) {
	if !l.exposed || !l.src.equal(l.value, value) {
		l.value = value
		l.version++
	}
	l.exposed = true
}
