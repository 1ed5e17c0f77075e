package transport

import (
	"context"

	"github.com/edup2p/hygienic/types"
	"github.com/google/uuid"
)

// Handle is the future side of an asynchronous resource request. It resolves
// exactly once, when the callee's guard admits the request and it replies.
//
// There is no cancellation or timeout: a request, once issued, is only ever
// answered, never abandoned. Liveness of the ring depends on this.
type Handle struct {
	id       uuid.UUID
	resource types.ResourceID

	done  chan struct{}
	value types.ResourceValue
}

func newHandle(resource types.ResourceID) *Handle {
	return &Handle{
		id:       uuid.New(),
		resource: resource,
		done:     make(chan struct{}),
	}
}

func (h *Handle) Resource() types.ResourceID {
	return h.resource
}

// Done is closed once the request has been answered.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Resolved reports whether the request has been answered yet.
func (h *Handle) Resolved() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Value returns the granted resource. It panics when the handle has not
// resolved yet; gate on Done or use Await.
func (h *Handle) Value() types.ResourceValue {
	if !h.Resolved() {
		panic("handle value read before resolution")
	}
	return h.value
}

// Await blocks until the request is answered or ctx expires. The ctx belongs
// to the caller (typically a test driver); the protocol itself never gives
// up on a request.
func (h *Handle) Await(ctx context.Context) (types.ResourceValue, error) {
	select {
	case <-ctx.Done():
		return types.ResourceValue{}, ctx.Err()
	case <-h.done:
		return h.value, nil
	}
}

func (h *Handle) resolve(v types.ResourceValue) {
	h.value = v
	close(h.done)
}

// JoinAll waits until every handle of a request round has resolved, or ctx
// expires.
func JoinAll(ctx context.Context, handles ...*Handle) error {
	for _, h := range handles {
		if _, err := h.Await(ctx); err != nil {
			return err
		}
	}
	return nil
}
