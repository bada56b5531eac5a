package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for registration and dispatch.
var (
	// ErrInvalidHandlerKey indicates a registration key that is neither an
	// integer id nor a Type.
	ErrInvalidHandlerKey = errors.New("invalid handler key")

	// ErrRegistryFrozen indicates a registration after Freeze.
	ErrRegistryFrozen = errors.New("registry is frozen")

	// ErrNilHandler indicates a registration without a handler function.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilClass indicates a registration scope without a class.
	ErrNilClass = errors.New("class cannot be nil")

	// ErrInvalidKind indicates an event kind outside the known set.
	ErrInvalidKind = errors.New("invalid event kind")
)

// KeyError reports the offending registration key.
type KeyError struct {
	Key    any
	Reason string
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("handler key %v (%T): %s", e.Key, e.Key, e.Reason)
	}
	return fmt.Sprintf("handler key %v (%T): must be an integer id or an event Type", e.Key, e.Key)
}

// Is reports whether target is ErrInvalidHandlerKey.
func (e *KeyError) Is(target error) bool {
	return target == ErrInvalidHandlerKey
}

// DispatchError wraps a decoder or handler failure with where it happened.
type DispatchError struct {
	Kind  Kind
	ID    ID
	Class string
	// Op is "decode", "handle" or "route".
	Op  string
	Err error
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s event %#x: %s in %s: %v", e.Kind, uint32(e.ID), e.Op, e.Class, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DispatchError) Unwrap() error {
	return e.Err
}
