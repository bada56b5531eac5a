package codec

// Decoder turns a raw payload into a typed value.
// *Shape is a Decoder producing *Record.
type Decoder interface {
	Decode(payload []byte) (any, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(payload []byte) (any, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(payload []byte) (any, error) {
	return f(payload)
}

// Typed decodes through a shape and converts the record into T.
type Typed[T any] struct {
	Shape   *Shape
	Convert func(*Record) (T, error)
}

// Decode implements Decoder.
func (t Typed[T]) Decode(payload []byte) (any, error) {
	return t.DecodeTyped(payload)
}

// DecodeTyped decodes payload into T.
func (t Typed[T]) DecodeTyped(payload []byte) (T, error) {
	var zero T
	rec, err := Decode(payload, t.Shape)
	if err != nil {
		return zero, err
	}
	return t.Convert(rec)
}

// Optional is a field that exists only under some selector values.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}
