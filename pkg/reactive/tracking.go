package reactive

import (
	"runtime"
	"sync"
)

// dependency is a node a computation can depend on.
type dependency interface {
	nodeID() uint64
	label() string
	// refresh brings the node up to date and returns its current version.
	refresh() uint64
}

// stamp records the version of a dependency as observed by a computation.
type stamp struct {
	dep     dependency
	version uint64
}

// frame collects the dependencies read by one computation.
// A nil frame on the stack marks an untracked scope.
type frame struct {
	owner string
	deps  []stamp
	seen  map[uint64]struct{}
}

func (f *frame) add(d dependency, version uint64) {
	id := d.nodeID()
	if _, ok := f.seen[id]; ok {
		return
	}
	f.seen[id] = struct{}{}
	f.deps = append(f.deps, stamp{dep: d, version: version})
}

// TrackingContext holds the reactive evaluation state for a goroutine.
type TrackingContext struct {
	// frames is the stack of active tracking scopes, innermost last.
	frames []*frame

	// evaluating counts computations currently running, including ones
	// hidden behind an untracked scope.
	evaluating int

	// computing names the running computations, innermost last.
	computing []string
}

// trackingContexts stores per-goroutine tracking contexts keyed by goroutine ID.
var trackingContexts sync.Map

// getGoroutineID returns the ID of the current goroutine, parsed from the
// header of its stack trace ("goroutine <id> [...]").
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// lookupTrackingContext returns the current goroutine's context, or nil when
// nothing is being evaluated.
func lookupTrackingContext() *TrackingContext {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		return ctx.(*TrackingContext)
	}
	return nil
}

// acquireTrackingContext returns the current goroutine's context, creating it
// if needed.
func acquireTrackingContext() (*TrackingContext, uint64) {
	gid := getGoroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext), gid
	}
	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx, gid
}

// releaseTrackingContext drops the context once its stack is empty so idle
// goroutines leave nothing behind.
func releaseTrackingContext(ctx *TrackingContext, gid uint64) {
	if len(ctx.frames) == 0 && ctx.evaluating == 0 {
		trackingContexts.Delete(gid)
	}
}

// track registers d in the innermost tracking frame, if any.
func track(d dependency, version uint64) {
	ctx := lookupTrackingContext()
	if ctx == nil || len(ctx.frames) == 0 {
		return
	}
	if f := ctx.frames[len(ctx.frames)-1]; f != nil {
		f.add(d, version)
	}
}

// evaluate runs compute inside a fresh tracking frame and returns its result
// together with the dependencies it read. The frame is popped on every exit
// path, including panics.
func evaluate[T any](owner string, compute func() T) (T, []stamp) {
	ctx, gid := acquireTrackingContext()
	f := &frame{owner: owner, seen: make(map[uint64]struct{})}

	ctx.frames = append(ctx.frames, f)
	ctx.computing = append(ctx.computing, owner)
	ctx.evaluating++
	defer func() {
		ctx.frames = ctx.frames[:len(ctx.frames)-1]
		ctx.computing = ctx.computing[:len(ctx.computing)-1]
		ctx.evaluating--
		releaseTrackingContext(ctx, gid)
	}()

	value := compute()
	return value, f.deps
}

// checkWrite panics with a *ReentrantMutationError when called while a
// computation is running on this goroutine.
func checkWrite(name string) {
	ctx := lookupTrackingContext()
	if ctx == nil || ctx.evaluating == 0 {
		return
	}
	var computing string
	if n := len(ctx.computing); n > 0 {
		computing = ctx.computing[n-1]
	}
	panic(&ReentrantMutationError{Cell: name, Computing: computing})
}

// depsChanged reports whether any stamped dependency has moved past the
// recorded version. Dependencies are checked in read order and the scan stops
// at the first change, so a branch that is no longer taken is not evaluated.
func depsChanged(deps []stamp) bool {
	for _, s := range deps {
		if s.dep.refresh() != s.version {
			return true
		}
	}
	return false
}

// Untracked runs fn without recording any reads as dependencies of the
// enclosing computation.
//
// Example:
//
//	total := reactive.NewDerived(func() int {
//	    var base int
//	    reactive.Untracked(func() { base = offset.Get() }) // no dependency on offset
//	    return base + count.Get()
//	})
//
// For a single read, Peek is shorter.
func Untracked(fn func()) {
	ctx, gid := acquireTrackingContext()
	ctx.frames = append(ctx.frames, nil)
	defer func() {
		ctx.frames = ctx.frames[:len(ctx.frames)-1]
		releaseTrackingContext(ctx, gid)
	}()
	fn()
}

// IsEvaluating reports whether a computation is running on the current
// goroutine.
func IsEvaluating() bool {
	ctx := lookupTrackingContext()
	return ctx != nil && ctx.evaluating > 0
}
