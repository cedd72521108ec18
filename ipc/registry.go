package ipc

import (
	"sync"

	"github.com/ardnew/emberhal/pkg"
)

// Registry is the loopback pairing backend: a table of registered
// endpoints keyed by name. Registering a second endpoint under a name
// already waiting pairs the two; registering the first under a new
// name leaves it waiting in StateRegisteredUnbound.
type Registry struct {
	mu      sync.Mutex
	waiting map[string]*Endpoint
}

// NewRegistry creates an empty endpoint registry.
func NewRegistry() *Registry {
	return &Registry{waiting: make(map[string]*Endpoint)}
}

// Register adds ep to the registry. If another unbound endpoint is
// already registered under ep.Name(), the two become each other's peer
// and both bound callbacks fire (the later-registered endpoint's bound
// fires first, but callers must not rely on relative ordering beyond
// "both fire before either's first Send completes").
func (r *Registry) Register(ep *Endpoint) pkg.Status {
	if ep == nil {
		return pkg.StatusInvalidParameter
	}
	if len(ep.name) == 0 || len(ep.name) > MaxNameLength {
		return pkg.StatusInvalidParameter
	}

	r.mu.Lock()
	other, found := r.waiting[ep.name]
	if found {
		delete(r.waiting, ep.name)
	} else {
		r.waiting[ep.name] = ep
	}
	r.mu.Unlock()

	ep.mu.Lock()
	ep.registry = r
	if found {
		ep.state = StateRegisteredBound
		ep.peer = other
	} else {
		ep.state = StateRegisteredUnbound
	}
	ep.mu.Unlock()

	if found {
		other.mu.Lock()
		other.state = StateRegisteredBound
		other.peer = ep
		other.mu.Unlock()

		if ep.bound != nil {
			ep.bound(ep)
		}
		if other.bound != nil {
			other.bound(other)
		}
	}

	return pkg.StatusOK
}

// Deregister removes ep from the registry. If ep has a peer, the peer
// reverts to StateRegisteredUnbound and is re-listed as waiting; the
// peer is not explicitly notified, matching the spec's "subsequent send
// on [the deregistered endpoint] returns not-present" contract — it
// does not describe a peer-side disconnect callback.
func (r *Registry) Deregister(ep *Endpoint) pkg.Status {
	if ep == nil {
		return pkg.StatusInvalidParameter
	}

	ep.mu.Lock()
	peer := ep.peer
	ep.state = StateUnregistered
	ep.peer = nil
	ep.registry = nil
	ep.mu.Unlock()

	r.mu.Lock()
	delete(r.waiting, ep.name)
	if peer != nil {
		r.waiting[peer.name] = peer
	}
	r.mu.Unlock()

	if peer != nil {
		peer.mu.Lock()
		peer.state = StateRegisteredUnbound
		peer.peer = nil
		peer.mu.Unlock()
	}

	return pkg.StatusOK
}
