package types

import "github.com/LukaGiorgadze/gonull"

// Event is a transition notification emitted by the running ring. The
// protocol's correctness never depends on anything observing these.
type Event interface {
	EventName() string
}

// EventSink receives events inline from the emitting peer's goroutine. A
// sink that blocks slows that peer down, but cannot corrupt the protocol.
type EventSink func(Event)

// Emit forwards an event to the sink; a nil sink drops it.
func (s EventSink) Emit(ev Event) {
	if s != nil {
		s(ev)
	}
}

// PhaseChange is emitted on every Thinking/Hungry/Eating transition.
//
// Prev is null on the very first transition, into Thinking, at startup.
type PhaseChange struct {
	Peer  PeerID
	Prev  gonull.Nullable[Phase]
	Phase Phase
}

func (p PhaseChange) EventName() string {
	return "PhaseChange"
}

// Handover is emitted by the granting side on every resource transfer.
// Value is the resource as the receiver gets it: always Clean.
type Handover struct {
	Resource ResourceID
	From     PeerID
	To       PeerID
	Value    ResourceValue
}

func (h Handover) EventName() string {
	return "Handover"
}
