package osal

import (
	"testing"
	"time"

	"github.com/ardnew/emberhal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_SendRecvOrder(t *testing.T) {
	q := NewQueue[int](4)
	for i := 1; i <= 4; i++ {
		require.Equal(t, pkg.StatusOK, q.Send(i, NoWait))
	}
	assert.Equal(t, 4, q.Count())

	for i := 1; i <= 4; i++ {
		var out int
		require.Equal(t, pkg.StatusOK, q.Recv(&out, NoWait))
		assert.Equal(t, i, out)
	}
}

func TestQueue_FullSendZeroTimeout(t *testing.T) {
	q := NewQueue[int](1)
	require.Equal(t, pkg.StatusOK, q.Send(1, NoWait))
	assert.Equal(t, pkg.StatusTimeout, q.Send(2, NoWait))
}

func TestQueue_FullSendForeverBlocksUntilRecv(t *testing.T) {
	q := NewQueue[int](1)
	require.Equal(t, pkg.StatusOK, q.Send(1, NoWait))

	done := make(chan pkg.Status, 1)
	go func() {
		done <- q.Send(2, Forever)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("send completed before queue had space")
	default:
	}

	var out int
	require.Equal(t, pkg.StatusOK, q.Recv(&out, NoWait))
	assert.Equal(t, 1, out)

	select {
	case status := <-done:
		assert.Equal(t, pkg.StatusOK, status)
	case <-time.After(time.Second):
		t.Fatal("send never unblocked")
	}
}

func TestQueue_EmptyRecvTimeout(t *testing.T) {
	q := NewQueue[int](1)
	var out int
	assert.Equal(t, pkg.StatusTimeout, q.Recv(&out, NoWait))
}

func TestQueue_CapacityNeverExceeded(t *testing.T) {
	q := NewQueue[int](4)
	assert.LessOrEqual(t, q.Count(), q.Capacity())
	for i := 0; i < 10; i++ {
		q.Send(i, NoWait)
		assert.LessOrEqual(t, q.Count(), q.Capacity())
	}
}
