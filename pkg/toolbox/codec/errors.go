package codec

import (
	"errors"
	"fmt"
)

// Sentinel errors for shape declaration and decoding.
var (
	// ErrTruncatedPayload indicates a buffer shorter than its shape's minimum length.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrUnknownField indicates a lookup of a field the shape does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidShape indicates a layout that cannot be built.
	ErrInvalidShape = errors.New("invalid shape")
)

// TruncatedPayloadError reports how short a payload was.
type TruncatedPayloadError struct {
	// Shape is the name of the shape being decoded.
	Shape string
	// Need is the shape's minimum length in bytes.
	Need int
	// Got is the length of the buffer supplied.
	Got int
}

// Error implements the error interface.
func (e *TruncatedPayloadError) Error() string {
	return fmt.Sprintf("decode %s: need %d bytes, got %d: %v", e.Shape, e.Need, e.Got, ErrTruncatedPayload)
}

// Is reports whether target is ErrTruncatedPayload.
func (e *TruncatedPayloadError) Is(target error) bool {
	return target == ErrTruncatedPayload
}
