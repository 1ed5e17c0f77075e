// Package types is a super-package that contains the leaf data types of the
// hygienic ring engine: resource values, slots, peer phases, and the events
// running peers emit.
//
// This package exists to avoid import cycles; it must not import any other
// package of this module.
package types

import "fmt"

// PeerID identifies a peer by its position in the ring.
type PeerID int

func (p PeerID) String() string {
	return fmt.Sprintf("peer%d", int(p))
}

// ResourceID identifies the resource shared on one ring edge.
type ResourceID int

func (r ResourceID) String() string {
	return fmt.Sprintf("resource%d", int(r))
}
