// Package transport is the in-process asynchronous request/reply substrate
// connecting ring peers: fire-and-forget sends paired with awaitable reply
// handles, no shared memory between peers.
//
// Replies resolve the pending handle and, when the requester has a
// registered inbox, also land there as a ResourceGrant, so a Hungry peer
// re-evaluates its acquire loop the moment a resource arrives.
//
// Delivery into an inbox happens on the sender's goroutine, so messages
// between one ordered pair of peers arrive in send order. The protocol does
// not depend on that; it is a convenience for reasoning and for tests.
package transport

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/edup2p/hygienic/types"
	"github.com/edup2p/hygienic/types/msgpeer"
)

type pendingKey struct {
	requester types.PeerID
	resource  types.ResourceID
}

// Transport routes messages between registered peers and tracks the pending
// request handles awaiting replies.
type Transport struct {
	mu      sync.Mutex
	inboxes map[types.PeerID]chan<- msgpeer.Message
	pending map[pendingKey]*Handle
}

func NewTransport() *Transport {
	return &Transport{
		inboxes: make(map[types.PeerID]chan<- msgpeer.Message),
		pending: make(map[pendingKey]*Handle),
	}
}

// Register attaches a peer's inbox. Every peer must be registered before any
// neighbor can route a request to it; registering the same peer twice is a
// wiring violation.
func (t *Transport) Register(peer types.PeerID, inbox chan<- msgpeer.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.inboxes[peer]; ok {
		panic(fmt.Sprintf("%v registered twice", peer))
	}
	t.inboxes[peer] = inbox
}

// Request asks to for the given resource on behalf of from, returning a
// Handle that resolves when the callee grants. At most one request per
// (requester, resource) pair may be outstanding; issuing a second one is a
// protocol violation, as is addressing a peer that was never registered.
func (t *Transport) Request(from, to types.PeerID, resource types.ResourceID) *Handle {
	h := newHandle(resource)
	key := pendingKey{requester: from, resource: resource}

	t.mu.Lock()
	inbox, ok := t.inboxes[to]
	if !ok {
		t.mu.Unlock()
		panic(fmt.Sprintf("request for %v routed to unknown %v; was it started before its neighbors existed?", resource, to))
	}
	if _, dup := t.pending[key]; dup {
		t.mu.Unlock()
		panic(fmt.Sprintf("%v already has an outstanding request for %v", from, resource))
	}
	t.pending[key] = h
	t.mu.Unlock()

	slog.Debug("resource requested", "from", from, "to", to, "resource", resource, "handle", h.id)

	inbox <- &msgpeer.ResourceRequest{Resource: resource, From: from}

	return h
}

// Grant answers to's outstanding request with the given value: the pending
// handle resolves, and when the requester has an inbox of its own the value
// additionally arrives there as a ResourceGrant. A grant without a matching
// request is a protocol violation.
//
// An inbox-less requester is an external driver awaiting the Handle; the
// same request/reply surface serves both.
func (t *Transport) Grant(from, to types.PeerID, v types.ResourceValue) {
	key := pendingKey{requester: to, resource: v.ID}

	t.mu.Lock()
	h, ok := t.pending[key]
	if !ok {
		t.mu.Unlock()
		panic(fmt.Sprintf("%v granted %v to %v without a pending request", from, v.ID, to))
	}
	delete(t.pending, key)
	inbox, hasInbox := t.inboxes[to]
	t.mu.Unlock()

	h.resolve(v)

	slog.Debug("resource granted", "from", from, "to", to, "resource", v.ID, "handle", h.id)

	if hasInbox {
		inbox <- &msgpeer.ResourceGrant{Value: v, From: from}
	}
}
