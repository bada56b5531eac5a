package reply

import (
	"errors"
	"fmt"
)

// Sentinel errors for the correlator.
var (
	// ErrNoTransmitter is returned by send operations on a Correlator
	// built without a Transmitter.
	ErrNoTransmitter = errors.New("reply: no transmitter configured")

	// ErrDuplicateReference means the transmitter handed out a reference
	// that already has a pending callback. The message was sent; the new
	// callback was not stored.
	ErrDuplicateReference = errors.New("reply: duplicate reference")

	// ErrZeroReference means the transmitter returned reference zero for a
	// send that wants a reply. Zero never identifies a message.
	ErrZeroReference = errors.New("reply: transmitter returned reference zero")

	// ErrNoDispatcher is returned when an incoming message is not a reply
	// and there is no dispatcher to route it to.
	ErrNoDispatcher = errors.New("reply: no dispatcher configured")
)

// CallbackError wraps a failure returned by a reply callback.
type CallbackError struct {
	Ref    Reference
	Source Source
	Err    error
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return fmt.Sprintf("reply callback %d (%s): %v", e.Ref, e.Source, e.Err)
}

// Unwrap returns the callback's error.
func (e *CallbackError) Unwrap() error {
	return e.Err
}
