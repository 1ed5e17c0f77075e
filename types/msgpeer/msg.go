// Package msgpeer defines the messages peers exchange through the transport.
package msgpeer

import "github.com/edup2p/hygienic/types"

// Message is the marker interface for peer inbox messages.
type Message interface {
	message()
}

// ResourceRequest asks the receiving peer to hand a resource over as soon as
// its guard allows. From is the requesting peer; it shares exactly one
// resource with the receiver under a correctly wired ring.
type ResourceRequest struct {
	Resource types.ResourceID

	From types.PeerID
}

// ResourceGrant delivers a resource to the peer that requested it. The
// carried value is Clean by construction of the handover.
type ResourceGrant struct {
	Value types.ResourceValue

	From types.PeerID
}

func (*ResourceRequest) message() {}

func (*ResourceGrant) message() {}
