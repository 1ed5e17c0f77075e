// Package ring assembles and runs the hygienic resource-sharing ring: n
// peers in a cycle, one shared resource per edge, and the deliberately
// asymmetric seed that keeps the ring deadlock-free.
//
// The builder constructs and registers every peer before any of them is
// released into its loop. The actors subpackage holds the peer state
// machine; transport holds the request/reply substrate.
package ring

import (
	"context"
	"fmt"

	"github.com/edup2p/hygienic/ring/actors"
	"github.com/edup2p/hygienic/ring/transport"
	"github.com/edup2p/hygienic/types"
)

// Ring is a fully wired set of peers, ready to Start.
type Ring struct {
	ctx    context.Context
	cancel context.CancelFunc

	stage *actors.Stage
	n     int

	started bool
}

// New builds a ring of n peers, n ≥ 3. Peer i shares resource i with peer
// i+1 (mod n); peer i's right slot refers to resource i, its left slot to
// resource i-1.
//
// The seed is asymmetric on purpose; no deterministic symmetric
// decentralized assignment can be deadlock-free:
//
//   - peer 0 holds both of its resources, Dirty
//   - peer 1 requests both of its resources
//   - peers 2..n-1 hold their left resource Dirty and request their right
func New(pCtx context.Context, n int, sink types.EventSink, cfg Config) (*Ring, error) {
	if n < 3 {
		return nil, fmt.Errorf("a ring needs at least 3 peers, got %d", n)
	}

	ctx, cancel := context.WithCancel(pCtx)

	stage := actors.MakeStage(ctx, transport.NewTransport(), sink, cfg.actorConfig())

	for i := 0; i < n; i++ {
		id := types.PeerID(i)
		leftRes := types.ResourceID((i + n - 1) % n)
		rightRes := types.ResourceID(i)

		var leftSlot, rightSlot types.Slot
		switch i {
		case 0:
			leftSlot = types.Holding(types.DirtyResource(leftRes))
			rightSlot = types.Holding(types.DirtyResource(rightRes))
		case 1:
			leftSlot = types.Requesting(leftRes)
			rightSlot = types.Requesting(rightRes)
		default:
			leftSlot = types.Holding(types.DirtyResource(leftRes))
			rightSlot = types.Requesting(rightRes)
		}

		actors.MakePeer(stage, id, leftSlot, rightSlot)
	}

	return &Ring{
		ctx:    ctx,
		cancel: cancel,
		stage:  stage,
		n:      n,
	}, nil
}

func (r *Ring) N() int {
	return r.n
}

// Peer returns the peer at a ring position.
func (r *Ring) Peer(id types.PeerID) *actors.PeerProcess {
	return r.stage.Peer(id)
}

// Start releases every peer into its Thinking→Hungry→Eating loop.
// Construction already registered the full ring with the transport, so no
// neighbor request can outrun initialization. Start returns without waiting
// for the loops.
func (r *Ring) Start() {
	if r.started {
		panic("ring started twice")
	}
	r.started = true

	for _, id := range r.stage.PeerIDs() {
		left := types.PeerID((int(id) + r.n - 1) % r.n)
		right := types.PeerID((int(id) + 1) % r.n)

		r.stage.Peer(id).Start(left, right)
	}
}

// Stop cancels the stage context; every peer loop winds down. The protocol
// itself has no terminal state, this only exists for embedding and tests.
func (r *Ring) Stop() {
	r.cancel()
}

// Wait blocks until every peer loop has returned.
func (r *Ring) Wait() error {
	return r.stage.Wait()
}
