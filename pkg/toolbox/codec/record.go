package codec

import (
	"encoding/binary"
	"fmt"
	"slices"
)

// Value is a single field read from a record.
// The zero Value is absent.
type Value struct {
	field   Field
	raw     []byte
	present bool
}

// Present reports whether the field carries data in this record.
func (v Value) Present() bool {
	return v.present
}

// Field returns the field declaration.
func (v Value) Field() Field {
	return v.field
}

// Uint32 returns the value as an unsigned word.
func (v Value) Uint32() (uint32, bool) {
	if !v.present || v.field.Width != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(v.raw), true
}

// Int32 returns the value as a signed word.
func (v Value) Int32() (int32, bool) {
	u, ok := v.Uint32()
	return int32(u), ok
}

// Bytes returns a copy of the raw field bytes.
func (v Value) Bytes() ([]byte, bool) {
	if !v.present {
		return nil, false
	}
	return slices.Clone(v.raw), true
}

// Record is a decoded payload. It owns a copy of the bytes its shape covers.
type Record struct {
	shape *Shape
	buf   []byte
}

// Decode checks buf against shape's minimum length and copies the covered bytes.
// Bytes beyond the minimum length are ignored.
func Decode(buf []byte, shape *Shape) (*Record, error) {
	if len(buf) < shape.minLength {
		return nil, &TruncatedPayloadError{Shape: shape.name, Need: shape.minLength, Got: len(buf)}
	}
	return &Record{
		shape: shape,
		buf:   slices.Clone(buf[:shape.minLength]),
	}, nil
}

// Shape returns the shape the record was decoded with.
func (r *Record) Shape() *Shape {
	return r.shape
}

// Len returns the number of bytes the record holds.
func (r *Record) Len() int {
	return len(r.buf)
}

// Lookup returns the named field. A field whose selector does not match is
// returned absent with a nil error; an undeclared name is ErrUnknownField.
func (r *Record) Lookup(name string) (Value, error) {
	f, ok := r.shape.Field(name)
	if !ok {
		return Value{}, fmt.Errorf("%s.%s: %w", r.shape.name, name, ErrUnknownField)
	}
	if f.When != nil && !r.selected(f.When) {
		return Value{field: f}, nil
	}
	return Value{field: f, raw: r.buf[f.Offset:f.End()], present: true}, nil
}

// Value is Lookup without the error; unknown fields read as absent.
func (r *Record) Value(name string) Value {
	v, _ := r.Lookup(name)
	return v
}

// Uint32 reads an unsigned word field.
func (r *Record) Uint32(name string) (uint32, bool) {
	return r.Value(name).Uint32()
}

// Int32 reads a signed word field.
func (r *Record) Int32(name string) (int32, bool) {
	return r.Value(name).Int32()
}

// Bytes reads an opaque field.
func (r *Record) Bytes(name string) ([]byte, bool) {
	return r.Value(name).Bytes()
}

func (r *Record) selected(c *Condition) bool {
	sel, ok := r.shape.Field(c.Selector)
	if !ok {
		return false
	}
	v := binary.LittleEndian.Uint32(r.buf[sel.Offset:sel.End()])
	return slices.Contains(c.Values, v)
}
