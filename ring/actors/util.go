package actors

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/edup2p/hygienic/types/msgpeer"
)

// RunCheck ensures that only one instance of the actor is running at all times.
type RunCheck struct {
	*atomic.Bool
}

func MakeRunCheck() RunCheck {
	return RunCheck{
		&atomic.Bool{},
	}
}

// CheckOrMark atomically checks if its already running, else marks as running, returns a false value if the instance is already running.
func (rc *RunCheck) CheckOrMark() bool {
	return rc.CompareAndSwap(false, true)
}

// SendMessage is a convenience function to allow for "go SendMessage()"
func SendMessage(ch chan<- msgpeer.Message, msg msgpeer.Message) {
	ch <- msg
}

func L(a Actor) *slog.Logger {
	return slog.With("actor", fmt.Sprintf("%T", a))
}
