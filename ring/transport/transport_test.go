package transport

import (
	"context"
	"testing"
	"time"

	"github.com/edup2p/hygienic/types"
	"github.com/edup2p/hygienic/types/msgpeer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDeliversAndGrantResolves(t *testing.T) {
	tr := NewTransport()

	responder := make(chan msgpeer.Message, 4)
	tr.Register(1, responder)

	// The requester is deliberately unregistered here: an external driver
	// that only holds the handle.
	h := tr.Request(0, 1, 5)

	req := <-responder
	require.Equal(t, &msgpeer.ResourceRequest{Resource: 5, From: 0}, req)

	assert.False(t, h.Resolved())
	assert.Equal(t, types.ResourceID(5), h.Resource())
	assert.Panics(t, func() { h.Value() }, "value before resolution")

	tr.Grant(1, 0, types.CleanResource(5))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := h.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.CleanResource(5), v)
	assert.True(t, h.Resolved())
	assert.Equal(t, types.CleanResource(5), h.Value())
}

func TestGrantAlsoLandsInRegisteredInbox(t *testing.T) {
	tr := NewTransport()

	requester := make(chan msgpeer.Message, 4)
	responder := make(chan msgpeer.Message, 4)
	tr.Register(0, requester)
	tr.Register(1, responder)

	h := tr.Request(0, 1, 2)
	<-responder

	tr.Grant(1, 0, types.CleanResource(2))

	g := <-requester
	require.Equal(t, &msgpeer.ResourceGrant{Value: types.CleanResource(2), From: 1}, g)
	assert.True(t, h.Resolved())
}

func TestRequestToUnknownPeerIsFatal(t *testing.T) {
	tr := NewTransport()

	assert.Panics(t, func() {
		tr.Request(0, 9, 1)
	})
}

func TestDuplicateOutstandingRequestIsFatal(t *testing.T) {
	tr := NewTransport()
	tr.Register(1, make(chan msgpeer.Message, 4))

	tr.Request(0, 1, 1)

	assert.Panics(t, func() {
		tr.Request(0, 1, 1)
	})
}

func TestGrantWithoutRequestIsFatal(t *testing.T) {
	tr := NewTransport()
	tr.Register(0, make(chan msgpeer.Message, 4))

	assert.Panics(t, func() {
		tr.Grant(1, 0, types.CleanResource(3))
	})
}

func TestRegisterTwiceIsFatal(t *testing.T) {
	tr := NewTransport()
	tr.Register(0, make(chan msgpeer.Message, 4))

	assert.Panics(t, func() {
		tr.Register(0, make(chan msgpeer.Message, 4))
	})
}

func TestJoinAllWaitsForTheWholeRound(t *testing.T) {
	tr := NewTransport()
	tr.Register(1, make(chan msgpeer.Message, 4))
	tr.Register(2, make(chan msgpeer.Message, 4))

	hLeft := tr.Request(0, 1, 0)
	hRight := tr.Request(0, 2, 1)

	// One resolved is not enough.
	tr.Grant(1, 0, types.CleanResource(0))

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, JoinAll(short, hLeft, hRight), context.DeadlineExceeded)

	tr.Grant(2, 0, types.CleanResource(1))

	ctx, cancel2 := context.WithTimeout(context.Background(), time.Second)
	defer cancel2()
	assert.NoError(t, JoinAll(ctx, hLeft, hRight))
}
