package registrar

import (
	"sync"
	"sync/atomic"
)

// State is the lifecycle state of one instance's registration.
type State int32

const (
	StateUnregistered State = iota
	StateRegistering
	StateRegistered
	StatePulsating
	StateDeregistering
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateRegistering:
		return "registering"
	case StateRegistered:
		return "registered"
	case StatePulsating:
		return "pulsating"
	case StateDeregistering:
		return "deregistering"
	default:
		return "unknown"
	}
}

// entry tracks one instance. mu serializes register and deregister; state
// and registered are read lock-free by pulsate and snapshots.
type entry struct {
	mu         sync.Mutex
	state      atomic.Int32
	registered atomic.Bool
}

func (e *entry) load() State { return State(e.state.Load()) }

func (e *entry) store(s State) { e.state.Store(int32(s)) }

func (e *entry) transition(from, to State) bool {
	return e.state.CompareAndSwap(int32(from), int32(to))
}
