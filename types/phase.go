package types

// Phase is the three-phase activity cycle of a peer. The cycle repeats
// forever; there is no terminal phase.
type Phase uint8

const (
	// Thinking peers have no resource interest.
	Thinking Phase = iota
	// Hungry peers are collecting the resources their slots are Requesting.
	Hungry
	// Eating peers hold both resources and relinquish nothing.
	Eating
)

// String returns a lower-case name to be used in logging.
func (p Phase) String() string {
	switch p {
	case Thinking:
		return "thinking"
	case Hungry:
		return "hungry"
	case Eating:
		return "eating"
	default:
		return "invalid"
	}
}
