// Package actors is the "meat and bones" of the hygienic ring engine; every
// peer is an actor with an inbox, and everything a peer owns is touched only
// from its own Run loop.
package actors

import (
	"context"

	"github.com/edup2p/hygienic/types/msgpeer"
)

type Actor interface {
	Run()

	Inbox() chan<- msgpeer.Message

	// Cancel this actor's context.
	Cancel()

	// Close is called by the actor's Run loop when cancelled.
	Close()
}

type ActorCommon struct {
	inbox   chan msgpeer.Message
	ctx     context.Context
	ctxCan  context.CancelFunc
	running RunCheck
}

func MakeCommon(pCtx context.Context, chLen int) *ActorCommon {
	ctx, ctxCan := context.WithCancel(pCtx)

	var inbox chan msgpeer.Message = nil

	if chLen >= 0 {
		inbox = make(chan msgpeer.Message, chLen)
	}

	return &ActorCommon{
		inbox:   inbox,
		ctx:     ctx,
		ctxCan:  ctxCan,
		running: MakeRunCheck(),
	}
}

func (ac *ActorCommon) Inbox() chan<- msgpeer.Message {
	return ac.inbox
}

func (ac *ActorCommon) Cancel() {
	ac.ctxCan()
}

func (ac *ActorCommon) Ctx() context.Context {
	return ac.ctx
}
