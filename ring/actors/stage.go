package actors

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/edup2p/hygienic/ring/transport"
	"github.com/edup2p/hygienic/types"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// Config carries the tunables every peer on a stage shares.
//
// Scheduler fairness is deliberately a configuration concern: the duration
// functions (and however they are seeded) decide how fair the interleaving
// is. The protocol itself assumes no particular fairness or message
// ordering.
type Config struct {
	// ThinkFor and EatFor return the simulated length of one Thinking or
	// Eating stretch. Both must be non-nil and safe for concurrent calls.
	ThinkFor func() time.Duration
	EatFor   func() time.Duration

	// InboxLen is each peer's inbox buffer.
	InboxLen int
}

// Stage for the peers: the shared context, transport, event sink and config
// that every PeerProcess hangs off, plus the errgroup their Run loops are
// joined through.
type Stage struct {
	// The parent context of the stage that all actors must parent
	Ctx context.Context

	Transport *transport.Transport
	Sink      types.EventSink
	Cfg       Config

	eg errgroup.Group

	peerMutex sync.RWMutex
	peers     map[types.PeerID]*PeerProcess
}

func MakeStage(pCtx context.Context, tr *transport.Transport, sink types.EventSink, cfg Config) *Stage {
	return &Stage{
		Ctx: pCtx,

		Transport: tr,
		Sink:      sink,
		Cfg:       cfg,

		peers: make(map[types.PeerID]*PeerProcess),
	}
}

func (s *Stage) addPeer(p *PeerProcess) {
	s.peerMutex.Lock()
	defer s.peerMutex.Unlock()

	s.peers[p.id] = p
}

func (s *Stage) Peer(id types.PeerID) *PeerProcess {
	s.peerMutex.RLock()
	defer s.peerMutex.RUnlock()

	return s.peers[id]
}

// PeerIDs returns every constructed peer, in ring order.
func (s *Stage) PeerIDs() []types.PeerID {
	s.peerMutex.RLock()
	defer s.peerMutex.RUnlock()

	ids := maps.Keys(s.peers)
	slices.Sort(ids)
	return ids
}

// Go schedules an actor loop on the stage's errgroup.
func (s *Stage) Go(f func()) {
	s.eg.Go(func() error {
		f()
		return nil
	})
}

// Wait blocks until every scheduled actor loop has returned, which they do
// once the stage context is cancelled.
func (s *Stage) Wait() error {
	return s.eg.Wait()
}
