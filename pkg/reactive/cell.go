package reactive

// Readable is a node whose value can be read.
type Readable[T any] interface {
	// Get returns the current value and records it as a dependency of the
	// running computation, if any.
	Get() T
	// Peek returns the current value without recording a dependency.
	Peek() T
	// Version returns a counter that increases whenever the value changes.
	Version() uint64
}

// Writable is a readable node that can also be written.
type Writable[T any] interface {
	Readable[T]
	Set(T)
	Update(func(T) T)
}

// Cell is a leaf mutable reactive value.
//
// Reading a Cell inside a Derived or Linked computation makes the computation
// depend on it. Writing a value that is equal to the current one (per the
// cell's equality) is a no-op and leaves the version untouched.
type Cell[T any] struct {
	id      uint64
	name    string
	value   T
	version uint64
	equal   func(T, T) bool
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T, opts ...Option[T]) *Cell[T] {
	id := nextID()
	o := applyOptions(KindCell, id, opts)
	return &Cell[T]{
		id:    id,
		name:  o.name,
		value: initial,
		equal: o.equal,
	}
}

// Get returns the current value and tracks the read.
func (c *Cell[T]) Get() T {
	track(c, c.version)
	return c.value
}

// Peek returns the current value without tracking.
func (c *Cell[T]) Peek() T {
	return c.value
}

// Set stores value if it differs from the current one.
// It panics with *ReentrantMutationError when called from inside a computation.
func (c *Cell[T]) Set(value T) {
	checkWrite(c.name)
	if c.equal(c.value, value) {
		return
	}
	c.value = value
	c.version++
	emit(Event{Type: EventWrite, Kind: KindCell, ID: c.id, Name: c.name, Version: c.version})
}

// Update sets the cell to fn applied to its current value.
func (c *Cell[T]) Update(fn func(T) T) {
	checkWrite(c.name)
	c.Set(fn(c.value))
}

// Version returns the number of changes applied to the cell.
func (c *Cell[T]) Version() uint64 {
	return c.version
}

// ID returns the node's unique identifier.
func (c *Cell[T]) ID() uint64 {
	return c.id
}

// Name returns the node's label.
func (c *Cell[T]) Name() string {
	return c.name
}

func (c *Cell[T]) nodeID() uint64  { return c.id }
func (c *Cell[T]) label() string   { return c.name }
func (c *Cell[T]) refresh() uint64 { return c.version }

// ReadOnly returns a view of r that exposes only the Readable methods.
func ReadOnly[T any](r Readable[T]) Readable[T] {
	if ro, ok := r.(readOnly[T]); ok {
		return ro
	}
	return readOnly[T]{r: r}
}

type readOnly[T any] struct {
	r Readable[T]
}

func (v readOnly[T]) Get() T          { return v.r.Get() }
func (v readOnly[T]) Peek() T         { return v.r.Peek() }
func (v readOnly[T]) Version() uint64 { return v.r.Version() }
