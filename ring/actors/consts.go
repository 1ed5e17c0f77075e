package actors

import "time"

const (
	// Inbox
	PeerInboxChLen = 16

	// Simulated work bounds, absent configuration. Thinking is unbounded in
	// principle; these just keep an unconfigured ring lively.
	DefaultThinkMin = 2 * time.Millisecond
	DefaultThinkMax = 8 * time.Millisecond
	DefaultEatMin   = time.Millisecond
	DefaultEatMax   = 4 * time.Millisecond
)
