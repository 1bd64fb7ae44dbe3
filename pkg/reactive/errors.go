package reactive

import (
	"errors"
	"fmt"
)

// ErrCycle is the panic value (wrapped in *CycleError) raised when a derived
// node is read again while it is still computing.
var ErrCycle = errors.New("reactive: dependency cycle")

// ReentrantMutationError is raised (as a panic value) when a node is written
// while a computation is being evaluated on the same goroutine.
type ReentrantMutationError struct {
	// Cell names the node that was written.
	Cell string
	// Computing names the innermost computation that was running.
	Computing string
}

// Error implements the error interface.
func (e *ReentrantMutationError) Error() string {
	if e.Computing != "" {
		return fmt.Sprintf("reactive: %s written while %s was computing", e.Cell, e.Computing)
	}
	return fmt.Sprintf("reactive: %s written during a computation", e.Cell)
}

// CycleError reports a derived node that depends on itself.
type CycleError struct {
	Cell string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), e.Cell)
}

// Unwrap returns ErrCycle.
func (e *CycleError) Unwrap() error {
	return ErrCycle
}
