package store

import (
	"errors"
	"fmt"
)

// ErrUnknownMember is returned when a name does not exist in the store or view.
var ErrUnknownMember = errors.New("store: unknown member")

// ErrNotWritable is returned when writing a member that is not state.
var ErrNotWritable = errors.New("store: member is not writable state")

// ErrNotValue is returned when reading the value of a method.
var ErrNotValue = errors.New("store: member is a method, not a value")

// ErrNotMethod is returned when calling a member that is not a method.
var ErrNotMethod = errors.New("store: member is not a method")

// DuplicateMemberError reports a feature proposing a name that is already
// registered, in any of the three member kinds, or proposing it twice.
type DuplicateMemberError struct {
	// Name is the colliding member name.
	Name string
	// Existing is the kind the name is already registered as.
	Existing MemberKind
	// Proposed is the kind the feature tried to register.
	Proposed MemberKind
	// Feature is the zero-based index of the failing feature.
	Feature int
}

// Error implements the error interface.
func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("store: feature %d: %s member %q collides with existing %s member",
		e.Feature, e.Proposed, e.Name, e.Existing)
}

// InvalidLinkedStateShapeError reports a linked-state factory whose value is
// not a record.
type InvalidLinkedStateShapeError struct {
	// Got is the Go type of the value the factory produced.
	Got string
	// Feature is the zero-based index of the failing feature.
	Feature int
}

// Error implements the error interface.
func (e *InvalidLinkedStateShapeError) Error() string {
	return fmt.Sprintf("store: feature %d: linked state must produce a record, got %s", e.Feature, e.Got)
}

func unknownMember(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownMember, name)
}

// setFeatureIndex stamps the failing feature's index on construction errors.
func setFeatureIndex(err error, index int) {
	var dup *DuplicateMemberError
	if errors.As(err, &dup) {
		dup.Feature = index
	}
	var shape *InvalidLinkedStateShapeError
	if errors.As(err, &shape) {
		shape.Feature = index
	}
}
