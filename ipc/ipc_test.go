package ipc

import (
	"sync"
	"testing"

	"github.com/ardnew/emberhal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BidirectionalDelivery(t *testing.T) {
	r := NewRegistry()

	var boundA, boundB int
	var receivedA, receivedB [][]byte
	var mu sync.Mutex

	a := New("data", func(ep *Endpoint) {
		mu.Lock()
		boundA++
		mu.Unlock()
	}, func(ep *Endpoint, data []byte) {
		mu.Lock()
		receivedA = append(receivedA, append([]byte(nil), data...))
		mu.Unlock()
	}, nil)

	b := New("data", func(ep *Endpoint) {
		mu.Lock()
		boundB++
		mu.Unlock()
	}, func(ep *Endpoint, data []byte) {
		mu.Lock()
		receivedB = append(receivedB, append([]byte(nil), data...))
		mu.Unlock()
	}, nil)

	require.Equal(t, pkg.StatusOK, r.Register(a))
	require.Equal(t, pkg.StatusOK, r.Register(b))

	assert.Equal(t, 1, boundA)
	assert.Equal(t, 1, boundB)
	assert.Equal(t, StateRegisteredBound, a.State())
	assert.Equal(t, StateRegisteredBound, b.State())

	require.NoError(t, a.Send([]byte("hello")))
	require.Len(t, receivedB, 1)
	assert.Equal(t, "hello", string(receivedB[0]))

	require.NoError(t, b.Send([]byte("world")))
	require.Len(t, receivedA, 1)
	assert.Equal(t, "world", string(receivedA[0]))

	require.Equal(t, pkg.StatusOK, r.Deregister(a))
	assert.ErrorIs(t, a.Send([]byte("x")), pkg.ErrNotPresent)
}

func TestEndpoint_SendBeforeBoundIsNotConnected(t *testing.T) {
	r := NewRegistry()
	a := New("lonely", nil, nil, nil)
	require.Equal(t, pkg.StatusOK, r.Register(a))
	assert.ErrorIs(t, a.Send([]byte("x")), pkg.ErrNotConnected)
}

func TestEndpoint_SendInvalidParameter(t *testing.T) {
	a := New("ep", nil, nil, nil)
	assert.ErrorIs(t, a.Send(nil), pkg.ErrInvalidParameter)
	assert.ErrorIs(t, a.Send([]byte{}), pkg.ErrInvalidParameter)
}

func TestEndpoint_SendMessageTooLarge(t *testing.T) {
	r := NewRegistry()
	a := New("big", nil, nil, nil)
	b := New("big", nil, func(ep *Endpoint, data []byte) {}, nil)
	require.Equal(t, pkg.StatusOK, r.Register(a))
	require.Equal(t, pkg.StatusOK, r.Register(b))

	assert.ErrorIs(t, a.Send(make([]byte, MaxPacketSize+1)), pkg.ErrMessageSize)
}

func TestEndpoint_MutualPeerInvariant(t *testing.T) {
	r := NewRegistry()
	a := New("mutual", nil, nil, nil)
	b := New("mutual", nil, nil, nil)
	require.Equal(t, pkg.StatusOK, r.Register(a))
	require.Equal(t, pkg.StatusOK, r.Register(b))

	require.NotNil(t, a.Peer())
	require.NotNil(t, b.Peer())
	assert.Same(t, b, a.Peer())
	assert.Same(t, a, b.Peer())
}

func TestEndpoint_ReentrantSendFromReceived(t *testing.T) {
	r := NewRegistry()
	var replies int

	a := New("echo", nil, func(ep *Endpoint, data []byte) {
		replies++
	}, nil)
	b := New("echo", nil, func(ep *Endpoint, data []byte) {
		ep.Send([]byte("pong"))
	}, nil)

	require.Equal(t, pkg.StatusOK, r.Register(a))
	require.Equal(t, pkg.StatusOK, r.Register(b))

	require.NoError(t, a.Send([]byte("ping")))
	assert.Equal(t, 1, replies)
}
