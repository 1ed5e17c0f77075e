package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferRoundTrip(t *testing.T) {
	holder := Holding(DirtyResource(4))
	requester := Requesting(4)

	newHolder, newRequester, granted := Transfer(holder, requester)

	assert.True(t, newHolder.IsRequesting())
	assert.Equal(t, ResourceID(4), newHolder.ID())

	assert.True(t, newRequester.IsHolding())
	assert.Equal(t, CleanResource(4), newRequester.Value())
	assert.Equal(t, CleanResource(4), granted)

	// Transferring straight back hands the resource to its original holder
	// Clean again; cleanliness is reset on every handover, never restored.
	backRequester, backHolder, backGranted := Transfer(newRequester, newHolder)

	assert.True(t, backRequester.IsRequesting())
	assert.True(t, backHolder.IsHolding())
	assert.Equal(t, CleanResource(4), backHolder.Value())
	assert.Equal(t, CleanResource(4), backGranted)
}

func TestTransferPanicsOnMisuse(t *testing.T) {
	assert.Panics(t, func() {
		Transfer(Holding(DirtyResource(1)), Requesting(2))
	}, "unrelated slots")

	assert.Panics(t, func() {
		Transfer(Requesting(1), Requesting(1))
	}, "holder arm not holding")

	assert.Panics(t, func() {
		Transfer(Holding(DirtyResource(1)), Holding(CleanResource(1)))
	}, "requester arm already holding")
}

func TestSlotCarriesIdentityWhileAway(t *testing.T) {
	s := Requesting(7)

	assert.Equal(t, ResourceID(7), s.ID())
	assert.True(t, s.IsRequesting())
	assert.False(t, s.IsHolding())

	assert.Panics(t, func() { s.Value() })
}

func TestSoilProducesNewValue(t *testing.T) {
	v := CleanResource(3)
	soiled := v.Soil()

	assert.Equal(t, Cleanliness(Clean), v.Cleanliness, "original untouched")
	assert.Equal(t, ResourceValue{ID: 3, Cleanliness: Dirty}, soiled)
	assert.True(t, soiled.IsDirty())
}
