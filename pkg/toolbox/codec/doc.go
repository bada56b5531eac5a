/*
Package codec decodes fixed-layout event and message payloads into typed records.

# Shapes

A Shape is an ordered list of named, fixed-width fields plus a minimum byte
length. Shapes are declared once with a Layout and are immutable afterwards:

	var ButtonClicked = codec.NewLayout("ButtonClicked").
	    Extend(codec.ToolboxEventShape).
	    Uint32("button").
	    MustBuild()

Fields are laid out sequentially from the layout's cursor. At moves the
cursor back, which is how overlapping variants of a discriminated layout
share bytes.

# Conditional Fields

Some payloads carry a selector field whose value decides which of the
following fields are meaningful. Fields declared inside a When block are
only present when the selector matches:

	codec.NewLayout("Shown").
	    Uint32("show_type").
	    When("show_type", 2).Int32("x").Int32("y").End().
	    MustBuild()

Reading a field whose selector does not match returns an absent Value
instead of the unrelated bytes underneath it.

# Decoding

Decode copies the bytes the shape declares and ignores any trailing bytes.
A buffer shorter than Shape.MinLength fails with a *TruncatedPayloadError,
which matches ErrTruncatedPayload under errors.Is:

	rec, err := codec.Decode(buf, ButtonClicked)
	if errors.Is(err, codec.ErrTruncatedPayload) {
	    // short buffer
	}
	button, ok := rec.Uint32("button")

Typed wraps a shape and a conversion function into a Decoder producing a Go
struct, and the well-known records in this package (ToolboxEvent,
MessageHeader, AboutToBeShown) are built that way.

All multi-byte fields are little-endian.
*/
package codec
