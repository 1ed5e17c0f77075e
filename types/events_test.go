package types

import (
	"testing"

	"github.com/LukaGiorgadze/gonull"
	"github.com/stretchr/testify/assert"
)

func TestNilSinkDropsEvents(t *testing.T) {
	var sink EventSink

	assert.NotPanics(t, func() {
		sink.Emit(PhaseChange{Peer: 0, Phase: Hungry})
	})
}

func TestPhaseChangePrevIsOptional(t *testing.T) {
	initial := PhaseChange{Peer: 1, Phase: Thinking}
	assert.False(t, initial.Prev.Valid)

	later := PhaseChange{Peer: 1, Prev: gonull.NewNullable(Hungry), Phase: Eating}
	assert.True(t, later.Prev.Valid)
	assert.Equal(t, Hungry, later.Prev.Val)

	assert.Equal(t, "PhaseChange", later.EventName())
	assert.Equal(t, "Handover", Handover{}.EventName())
}
