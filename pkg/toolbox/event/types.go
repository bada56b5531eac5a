package event

import (
	"context"
	"fmt"
)

// Kind selects which dispatch table an event id belongs to.
type Kind int

const (
	// KindToolbox is a toolbox event raised by an object.
	KindToolbox Kind = iota
	// KindRawPoll is a raw poll reason code.
	KindRawPoll
	// KindMessage is a user message, keyed by message code.
	KindMessage

	kindCount
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindToolbox:
		return "toolbox"
	case KindRawPoll:
		return "raw_poll"
	case KindMessage:
		return "message"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) valid() bool {
	return k >= 0 && k < kindCount
}

// ID identifies an event within a Kind.
type ID uint32

// ObjectID is the numeric handle of a toolbox object. Zero means none.
type ObjectID uint32

// ComponentID identifies a gadget within an object.
type ComponentID int32

// IDBlock identifies where an event came from.
type IDBlock struct {
	Self      ObjectID
	Parent    ObjectID
	Ancestor  ObjectID
	Component ComponentID
}

// Result tells the dispatcher whether to keep looking for handlers.
// The zero value is Handled, so a handler that has nothing to say stops dispatch.
type Result int

const (
	// Handled stops dispatch.
	Handled Result = iota
	// Continue offers the event to the next handler or candidate.
	Continue
)

// String returns the result name.
func (r Result) String() string {
	if r == Continue {
		return "continue"
	}
	return "handled"
}

// Handler handles one event on one object. payload is the decoded record when
// the registration declared a decoder and the raw []byte otherwise.
type Handler func(ctx context.Context, obj Object, id ID, ids IDBlock, payload any) (Result, error)
