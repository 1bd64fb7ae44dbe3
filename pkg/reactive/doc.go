// Package reactive provides the dependency-graph engine behind linkstore.
//
// Dependencies are discovered at runtime: whatever a computation reads while it
// runs becomes its dependency set, re-established on every evaluation. Staleness
// is detected lazily by comparing per-node version stamps on read, so nothing is
// pushed to dependents on write and a run of writes with no read in between is
// observed as a single state transition.
//
// # Core Types
//
// Cell[T] is a writable value with a version counter:
//
//	count := reactive.NewCell(0)
//	count.Get()  // tracked read
//	count.Set(5) // bumps the version only if the value changed
//
// Derived[T] is a memoized computation over other nodes:
//
//	doubled := reactive.NewDerived(func() int { return count.Get() * 2 })
//	doubled.Get() // recomputes only if a dependency version moved
//
// Linked[T] is a derived value that also accepts a manual override. The
// override sticks until one of the dependencies captured when it was set
// changes, then the next read recomputes:
//
//	selected := reactive.NewLinked(func() string { return options.Get()[0] })
//	selected.Set("custom") // pinned
//	options.Set([]string{"x"})
//	selected.Get()         // "x"
//
// # Execution Model
//
// A graph is meant to be driven from one goroutine. Tracking state is kept per
// goroutine, every read, write and recomputation completes before returning, and
// a computation that panics leaves the previous cached value in place.
// Computations must not write cells; doing so panics with a
// *ReentrantMutationError.
package reactive
