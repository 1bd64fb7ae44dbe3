package reactive

import "sync/atomic"

// Kind identifies the type of reactive node.
type Kind string

const (
	KindCell    Kind = "cell"
	KindDerived Kind = "derived"
	KindLinked  Kind = "linked"
)

// EventType classifies an observer event.
type EventType string

const (
	// EventWrite fires when a cell's value changes.
	EventWrite EventType = "write"
	// EventRecompute fires after a derived or linked node re-ran its computation.
	EventRecompute EventType = "recompute"
	// EventOverride fires when a linked node is given a manual value.
	EventOverride EventType = "override"
	// EventDiscard fires when a linked node drops its override because a
	// dependency changed.
	EventDiscard EventType = "discard"
)

// Event describes something that happened to a node.
type Event struct {
	Type    EventType
	Kind    Kind
	ID      uint64
	Name    string
	Version uint64
}

// Observer receives node events. Implementations must be cheap and must not
// read or write reactive nodes.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) {
	if f != nil {
		f(e)
	}
}

type observerHolder struct {
	o Observer
}

var currentObserver atomic.Pointer[observerHolder]

// SetObserver installs o as the process-wide observer and returns the previous
// one. Passing nil disables observation.
func SetObserver(o Observer) Observer {
	prev := currentObserver.Swap(&observerHolder{o: o})
	if prev == nil {
		return nil
	}
	return prev.o
}

func emit(e Event) {
	h := currentObserver.Load()
	if h == nil || h.o == nil {
		return
	}
	h.o.Observe(e)
}
