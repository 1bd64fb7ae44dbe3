package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/vango-dev/linkstore/pkg/reactive"
	"github.com/vango-dev/linkstore/pkg/store"
)

// Classify maps an error from the reactive runtime or the store builder to a
// coded StoreError. Errors it does not recognize are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if stderrors.As(err, &se) {
		return se
	}

	var dup *store.DuplicateMemberError
	if stderrors.As(err, &dup) {
		return New("L001").Wrap(err)
	}
	var shape *store.InvalidLinkedStateShapeError
	if stderrors.As(err, &shape) {
		return New("L002").Wrap(err)
	}
	var reentrant *reactive.ReentrantMutationError
	if stderrors.As(err, &reentrant) {
		return New("L003").Wrap(err)
	}
	if stderrors.Is(err, store.ErrUnknownMember) {
		return New("L004").Wrap(err)
	}
	if stderrors.Is(err, reactive.ErrCycle) {
		return New("L005").Wrap(err)
	}
	if stderrors.Is(err, store.ErrNotWritable) {
		return New("L006").Wrap(err)
	}
	if stderrors.Is(err, store.ErrNotValue) || stderrors.Is(err, store.ErrNotMethod) {
		return New("L007").Wrap(err)
	}
	return err
}

// FromPanic converts a value recovered from a panic into an error. Runtime
// panics carrying errors are classified; anything else is re-panicked.
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        err = errors.FromPanic(r)
//	    }
//	}()
func FromPanic(v any) error {
	err, ok := v.(error)
	if !ok {
		panic(v)
	}
	classified := Classify(err)
	var se *StoreError
	if !stderrors.As(classified, &se) {
		panic(v)
	}
	return classified
}

// Recover runs fn and converts runtime panics into errors.
func Recover(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = FromPanic(r)
		}
	}()
	return fn()
}

// Errorf creates a coded error with a formatted detail.
func Errorf(code string, format string, args ...any) *StoreError {
	e := New(code)
	e.Detail = fmt.Sprintf(format, args...)
	return e
}
