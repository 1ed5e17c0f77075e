package types

import "fmt"

// Slot is a peer's current relationship to one of its two resources: it is
// either Holding the ResourceValue, or Requesting it back from the adjacent
// peer that does. The resource id is carried in both arms, so identity is
// never lost while the resource is away.
//
// Across the whole ring, exactly one of the two slots referring to a given
// resource is Holding it at any observable instant; the other is Requesting
// the same id.
type Slot struct {
	id      ResourceID
	holding bool
	value   ResourceValue
}

func Holding(v ResourceValue) Slot {
	return Slot{id: v.ID, holding: true, value: v}
}

func Requesting(id ResourceID) Slot {
	return Slot{id: id}
}

func (s Slot) ID() ResourceID {
	return s.id
}

func (s Slot) IsHolding() bool {
	return s.holding
}

func (s Slot) IsRequesting() bool {
	return !s.holding
}

// Value returns the held ResourceValue. Calling it on a Requesting slot
// panics; the value is with the neighbor then.
func (s Slot) Value() ResourceValue {
	if !s.holding {
		panic(fmt.Sprintf("slot for %v is requesting, it has no value", s.id))
	}
	return s.value
}

func (s Slot) String() string {
	if s.holding {
		return fmt.Sprintf("holding(%v, %v)", s.id, s.value.Cleanliness)
	}
	return fmt.Sprintf("requesting(%v)", s.id)
}

// Transfer hands a resource over from holder to requester. It is the only
// way a resource moves between slots: the holder side flips to Requesting,
// the requester side becomes Holding a Clean value. Cleanliness is reset on
// every handover, never carried across.
//
// Both slots referring to the same resource, with the arms as named, is a
// precondition; anything else means a miswired ring and panics.
func Transfer(holder, requester Slot) (newHolder, newRequester Slot, granted ResourceValue) {
	if holder.id != requester.id {
		panic(fmt.Sprintf("transfer between unrelated slots: %v / %v", holder.id, requester.id))
	}
	if !holder.IsHolding() {
		panic(fmt.Sprintf("transfer from a slot that is not holding %v", holder.id))
	}
	if !requester.IsRequesting() {
		panic(fmt.Sprintf("transfer to a slot that already holds %v", requester.id))
	}

	granted = CleanResource(holder.id)

	return Requesting(holder.id), Holding(granted), granted
}
