// Package poll drives dispatch from a poll primitive.
//
// A Loop asks its Poller for one event at a time and routes it: toolbox
// events to the dispatcher under their event code, messages through the
// reply correlator first, and every other reason to the dispatcher as a
// raw poll event. While replies are outstanding the loop asks for idle
// events and uses them to drain the correlator.
//
// Everything runs on the caller's goroutine. The only blocking call is
// Poller.Poll.
package poll

import (
	"errors"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// Reason is a poll reason code.
type Reason uint32

// Poll reasons with special routing. Every other reason is a raw poll event.
const (
	ReasonIdle                Reason = 0
	ReasonUserMessage         Reason = 17
	ReasonUserMessageRecorded Reason = 18
	ReasonUserMessageAck      Reason = 19
	ReasonToolboxEvent        Reason = 0x200
)

// Event is one poll result.
type Event struct {
	Reason  Reason
	IDs     event.IDBlock
	Payload []byte
}

// Mask tells the poller which events the loop wants.
type Mask struct {
	// Idle is true while replies are outstanding or an idle handler is
	// registered.
	Idle bool

	// Reasons lists the raw poll reasons that have handlers.
	Reasons []event.ID
}

// Wants reports whether r is enabled by the mask. Toolbox events and
// messages are always wanted.
func (m Mask) Wants(r Reason) bool {
	switch r {
	case ReasonIdle:
		return m.Idle
	case ReasonToolboxEvent, ReasonUserMessage, ReasonUserMessageRecorded, ReasonUserMessageAck:
		return true
	}
	for _, id := range m.Reasons {
		if id == event.ID(r) {
			return true
		}
	}
	return false
}

// ErrQuit is returned by a Poller to end Run cleanly.
var ErrQuit = errors.New("poll: quit")
