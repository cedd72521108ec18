package ipc

import (
	"sync"

	"github.com/ardnew/emberhal/pkg"
)

// MaxNameLength is the endpoint name limit, including the implicit
// null terminator a C-originated contract would reserve.
const MaxNameLength = 32

// MaxPacketSize bounds a single Send, matching an RPMsg-style transport
// ceiling.
const MaxPacketSize = 496

// State is an endpoint's lifecycle stage.
type State int

const (
	StateUnregistered State = iota
	StateRegisteredUnbound
	StateRegisteredBound
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateRegisteredUnbound:
		return "registered-unbound"
	case StateRegisteredBound:
		return "registered-bound"
	default:
		return "unknown"
	}
}

// BoundFunc is invoked on both endpoints once they are paired.
type BoundFunc func(ep *Endpoint)

// ReceivedFunc is invoked on the receiving endpoint with the exact
// bytes sent by its peer. A ReceivedFunc may re-enter Send on the same
// endpoint — bidirectional delivery is part of the contract.
type ReceivedFunc func(ep *Endpoint, data []byte)

// Endpoint is a user-allocated IPC handle. It is paired with another
// endpoint registered under the same name via a [Registry].
type Endpoint struct {
	mu       sync.Mutex
	name     string
	bound    BoundFunc
	received ReceivedFunc
	context  any
	state    State
	peer     *Endpoint
	registry *Registry
}

// New creates an endpoint with the given name and callbacks. The
// endpoint is unregistered until passed to [Registry.Register].
func New(name string, bound BoundFunc, received ReceivedFunc, context any) *Endpoint {
	return &Endpoint{
		name:     name,
		bound:    bound,
		received: received,
		context:  context,
		state:    StateUnregistered,
	}
}

// Name returns the endpoint's registered name.
func (e *Endpoint) Name() string {
	return e.name
}

// Context returns the user context pointer passed to New.
func (e *Endpoint) Context() any {
	return e.context
}

// State returns the endpoint's current lifecycle state.
func (e *Endpoint) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Peer returns the endpoint's bound peer, or nil if unbound.
func (e *Endpoint) Peer() *Endpoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.peer
}

// Send delivers data to this endpoint's peer synchronously, on the
// calling goroutine. It returns [pkg.ErrInvalidParameter] on nil/empty
// data, [pkg.ErrMessageSize] if len(data) exceeds [MaxPacketSize],
// [pkg.ErrNotPresent] if this endpoint is unregistered, and
// [pkg.ErrNotConnected] if it has no peer yet.
func (e *Endpoint) Send(data []byte) error {
	if e == nil || len(data) == 0 {
		return pkg.ErrInvalidParameter
	}
	if len(data) > MaxPacketSize {
		return pkg.ErrMessageSize
	}

	e.mu.Lock()
	state := e.state
	peer := e.peer
	e.mu.Unlock()

	if state == StateUnregistered {
		return pkg.ErrNotPresent
	}
	if peer == nil {
		return pkg.ErrNotConnected
	}

	if peer.received != nil {
		peer.received(peer, data)
	}
	return nil
}
