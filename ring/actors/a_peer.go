package actors

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/LukaGiorgadze/gonull"
	"github.com/edup2p/hygienic/types"
	"github.com/edup2p/hygienic/types/msgpeer"
)

// side is a peer's view of one ring edge: the slot, the neighbor behind it,
// and the request bookkeeping in both directions.
type side struct {
	neighbor types.PeerID

	slot types.Slot

	// deferred is set while the neighbor's request is waiting on the guard
	// ("not Eating, and Holding a Dirty value").
	deferred bool

	// outstanding is set while our own request for this resource is in
	// flight. A resource is requested at most once per time it is away.
	outstanding bool
}

// PeerProcess is the active unit of the ring: it owns two slots, cycles
// Thinking→Hungry→Eating forever, and services its neighbors' requests
// between its own transitions.
//
// Every field is touched only from the Run goroutine. That discipline is
// what makes the compound guard atomic: nothing of this peer can run
// between evaluating the guard and acting on it.
type PeerProcess struct {
	*ActorCommon
	s *Stage

	id types.PeerID

	phase types.Phase

	left  *side
	right *side

	// phaseTimer drives Thinking→Hungry and Eating→Thinking. It stays inert
	// while Hungry; leaving Hungry is driven by arriving grants, not time.
	phaseTimer *time.Timer

	started RunCheck

	l *slog.Logger
}

// MakePeer constructs a peer with its seeded slots and registers its inbox,
// so that neighbors can address it before it runs. Neighbor ids arrive later
// through Start, once the whole ring exists.
func MakePeer(s *Stage, id types.PeerID, leftSlot, rightSlot types.Slot) *PeerProcess {
	t := time.NewTimer(time.Hour)
	t.Stop()

	p := &PeerProcess{
		ActorCommon: MakeCommon(s.Ctx, s.Cfg.InboxLen),
		s:           s,

		id:    id,
		phase: types.Thinking,

		left:  &side{slot: leftSlot},
		right: &side{slot: rightSlot},

		phaseTimer: t,
		started:    MakeRunCheck(),
	}
	p.l = L(p).With("peer", id)

	s.Transport.Register(id, p.inbox)
	s.addPeer(p)

	return p
}

func (p *PeerProcess) ID() types.PeerID {
	return p.id
}

// Start records the two neighbor ids and releases the peer into its loop.
// It must be called exactly once, and only after every peer of the ring has
// been constructed; a second call is an invariant violation.
func (p *PeerProcess) Start(left, right types.PeerID) {
	if !p.started.CheckOrMark() {
		panic(fmt.Sprintf("%v started twice", p.id))
	}

	p.left.neighbor = left
	p.right.neighbor = right

	p.s.Go(p.Run)
}

func (p *PeerProcess) Run() {
	defer func() {
		if v := recover(); v != nil {
			p.l.Error("peer died on invariant violation", "panic", v)
			p.Cancel()
			p.Close()
		}
	}()

	if !p.running.CheckOrMark() {
		p.l.Warn("tried to run peer, while already running")
		return
	}

	// The first Thinking transition; the only one with no predecessor.
	p.s.Sink.Emit(types.PhaseChange{Peer: p.id, Phase: types.Thinking})
	p.l.Debug("phase change", "to", types.Thinking)
	p.resetTimer(p.s.Cfg.ThinkFor())

	for {
		select {
		case <-p.ctx.Done():
			p.Close()
			return
		case <-p.phaseTimer.C:
			p.onPhaseTimer()
		case m := <-p.inbox:
			p.Handle(m)
		}
	}
}

func (p *PeerProcess) Handle(m msgpeer.Message) {
	switch m := m.(type) {
	case *msgpeer.ResourceRequest:
		p.onRequest(m)
	case *msgpeer.ResourceGrant:
		p.onGrant(m)
	default:
		p.l.Warn("dropping unknown message", "msg", fmt.Sprintf("%T", m))
	}
}

func (p *PeerProcess) Close() {
	p.phaseTimer.Stop()

	p.l.Debug("closed peer")
}

// Snapshot returns the peer's slots and phase. It is only meaningful while
// the peer is not running (before Start, or after its loop returned).
func (p *PeerProcess) Snapshot() (phase types.Phase, left, right types.Slot) {
	return p.phase, p.left.slot, p.right.slot
}

func (p *PeerProcess) onPhaseTimer() {
	switch p.phase {
	case types.Thinking:
		p.becomeHungry()
	case types.Eating:
		p.finishEating()
	case types.Hungry:
		// Leaving Hungry is grant-driven; a stale timer fire is harmless.
	}
}

func (p *PeerProcess) setPhase(next types.Phase) {
	prev := p.phase
	p.phase = next

	p.l.Debug("phase change", "from", prev, "to", next)
	p.s.Sink.Emit(types.PhaseChange{
		Peer:  p.id,
		Prev:  gonull.NewNullable(prev),
		Phase: next,
	})
}

func (p *PeerProcess) becomeHungry() {
	p.setPhase(types.Hungry)

	p.requestMissing()
	p.maybeEat()
}

// requestMissing issues a request for every Requesting slot without one in
// flight. The grant resolving each request arrives back through the inbox,
// so the acquire loop re-evaluates per arrival rather than joining blindly.
func (p *PeerProcess) requestMissing() {
	for _, sd := range p.sides() {
		if sd.slot.IsRequesting() && !sd.outstanding {
			sd.outstanding = true
			p.s.Transport.Request(p.id, sd.neighbor, sd.slot.ID())
		}
	}
}

// maybeEat transitions Hungry→Eating exactly when both slots are Holding.
func (p *PeerProcess) maybeEat() {
	if p.phase != types.Hungry {
		return
	}
	if p.left.slot.IsRequesting() || p.right.slot.IsRequesting() {
		return
	}

	p.setPhase(types.Eating)
	p.resetTimer(p.s.Cfg.EatFor())
}

// finishEating marks both resources Dirty, goes back to Thinking, and then
// serves the requests the guard had to defer while they were Clean or in
// use. Soiling here and the Clean reset on handover are what guarantee a
// full eating turn between two handovers of the same resource.
func (p *PeerProcess) finishEating() {
	for _, sd := range p.sides() {
		sd.slot = types.Holding(sd.slot.Value().Soil())
	}

	p.setPhase(types.Thinking)
	p.resetTimer(p.s.Cfg.ThinkFor())

	for _, sd := range p.sides() {
		p.maybeGrant(sd)
	}
}

// onRequest remembers the neighbor's request and grants right away when the
// guard already admits it. The guard check and the grant run back to back on
// this goroutine, which is the atomicity the protocol asks for.
func (p *PeerProcess) onRequest(m *msgpeer.ResourceRequest) {
	sd := p.sideFor(m.Resource)

	if m.From != sd.neighbor {
		panic(fmt.Sprintf("%v requested %v, which %v shares with %v", m.From, m.Resource, p.id, sd.neighbor))
	}
	if sd.deferred {
		panic(fmt.Sprintf("%v requested %v twice", m.From, m.Resource))
	}

	sd.deferred = true
	p.maybeGrant(sd)
}

// onGrant installs an arriving resource. Grants only ever arrive while
// Hungry: requests are issued exclusively from the acquire loop, and the
// loop leaves Hungry only once nothing is outstanding.
func (p *PeerProcess) onGrant(m *msgpeer.ResourceGrant) {
	sd := p.sideFor(m.Value.ID)

	if p.phase != types.Hungry {
		panic(fmt.Sprintf("%v received %v while %v", p.id, m.Value.ID, p.phase))
	}
	if !sd.outstanding {
		panic(fmt.Sprintf("%v received %v without asking", p.id, m.Value.ID))
	}
	if !sd.slot.IsRequesting() {
		panic(fmt.Sprintf("%v received %v, which it already holds", p.id, m.Value.ID))
	}
	if m.Value.IsDirty() {
		panic(fmt.Sprintf("%v received %v dirty; handovers reset to clean", p.id, m.Value.ID))
	}

	sd.outstanding = false
	sd.slot = types.Holding(m.Value)

	p.maybeEat()
}

// maybeGrant hands the resource on sd over iff the neighbor asked for it and
// the guard holds: not Eating, and the slot Holding a Dirty value. A Hungry
// peer that gives a resource away immediately asks for it back.
func (p *PeerProcess) maybeGrant(sd *side) {
	if !sd.deferred {
		return
	}
	if p.phase == types.Eating {
		return
	}
	if !sd.slot.IsHolding() || !sd.slot.Value().IsDirty() {
		return
	}

	// The far side of this edge is necessarily Requesting: its request is
	// here, and it stays Requesting until the grant lands. Transfer computes
	// both halves; the neighbor applies its half when the grant arrives.
	newHolder, _, granted := types.Transfer(sd.slot, types.Requesting(sd.slot.ID()))
	sd.slot = newHolder
	sd.deferred = false

	p.l.Debug("handover", "resource", granted.ID, "to", sd.neighbor)
	p.s.Sink.Emit(types.Handover{
		Resource: granted.ID,
		From:     p.id,
		To:       sd.neighbor,
		Value:    granted,
	})

	p.s.Transport.Grant(p.id, sd.neighbor, granted)

	if p.phase == types.Hungry {
		p.requestMissing()
	}
}

// sideFor locates the slot owning the resource. A request for a resource
// neither slot refers to means the ring is miswired; that is fatal.
func (p *PeerProcess) sideFor(id types.ResourceID) *side {
	switch id {
	case p.left.slot.ID():
		return p.left
	case p.right.slot.ID():
		return p.right
	default:
		panic(fmt.Sprintf("%v owns no slot for %v", p.id, id))
	}
}

func (p *PeerProcess) sides() [2]*side {
	return [2]*side{p.left, p.right}
}

// resetTimer re-arms the phase timer, draining a stale fire first.
func (p *PeerProcess) resetTimer(d time.Duration) {
	if !p.phaseTimer.Stop() {
		select {
		case <-p.phaseTimer.C:
		default:
		}
	}
	p.phaseTimer.Reset(d)
}
