package codec

import (
	"fmt"
	"slices"
)

// FieldType is the wire encoding of a field.
type FieldType int

const (
	// TypeUint32 is an unsigned 32-bit word.
	TypeUint32 FieldType = iota
	// TypeInt32 is a signed 32-bit word.
	TypeInt32
	// TypeBytes is an opaque run of bytes.
	TypeBytes
)

// String returns the type name.
func (t FieldType) String() string {
	switch t {
	case TypeUint32:
		return "uint32"
	case TypeInt32:
		return "int32"
	case TypeBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Condition makes a field present only when a selector field holds one of Values.
type Condition struct {
	Selector string
	Values   []uint32
}

// Field is one named fixed-width slot in a shape.
type Field struct {
	Name   string
	Offset int
	Width  int
	Type   FieldType

	// When is nil for unconditional fields.
	When *Condition
}

// End returns the offset one past the field's last byte.
func (f Field) End() int {
	return f.Offset + f.Width
}

// Shape is an immutable record layout.
type Shape struct {
	name      string
	fields    []Field
	index     map[string]int
	minLength int
}

// Name returns the shape's name.
func (s *Shape) Name() string {
	return s.name
}

// MinLength returns the smallest buffer the shape can be decoded from.
func (s *Shape) MinLength() int {
	return s.minLength
}

// Fields returns a copy of the declared fields in declaration order.
func (s *Shape) Fields() []Field {
	return slices.Clone(s.fields)
}

// Field returns the named field.
func (s *Shape) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Has reports whether the shape declares a field with this name.
func (s *Shape) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Decode implements Decoder, producing a *Record.
func (s *Shape) Decode(payload []byte) (any, error) {
	return Decode(payload, s)
}

// Layout declares a shape field by field.
// Errors are collected and reported by Build.
type Layout struct {
	name      string
	fields    []Field
	cursor    int
	minLength int
	when      *Condition
	errs      []error
}

// NewLayout starts a new layout with the cursor at offset 0.
func NewLayout(name string) *Layout {
	return &Layout{name: name}
}

// Extend copies every field of base and places the cursor at its minimum length.
func (l *Layout) Extend(base *Shape) *Layout {
	for _, f := range base.fields {
		if f.When != nil {
			c := *f.When
			c.Values = slices.Clone(c.Values)
			f.When = &c
		}
		l.fields = append(l.fields, f)
	}
	l.cursor = base.minLength
	if base.minLength > l.minLength {
		l.minLength = base.minLength
	}
	return l
}

// At moves the cursor to offset.
func (l *Layout) At(offset int) *Layout {
	if offset < 0 {
		l.errs = append(l.errs, fmt.Errorf("negative offset %d", offset))
		return l
	}
	l.cursor = offset
	return l
}

// Pad skips n reserved bytes.
func (l *Layout) Pad(n int) *Layout {
	return l.add("", TypeBytes, n)
}

// Uint32 declares an unsigned word at the cursor.
func (l *Layout) Uint32(name string) *Layout {
	return l.add(name, TypeUint32, 4)
}

// Int32 declares a signed word at the cursor.
func (l *Layout) Int32(name string) *Layout {
	return l.add(name, TypeInt32, 4)
}

// Bytes declares an n-byte opaque field at the cursor.
func (l *Layout) Bytes(name string, n int) *Layout {
	return l.add(name, TypeBytes, n)
}

// When makes the fields declared until End conditional on selector.
func (l *Layout) When(selector string, values ...uint32) *Layout {
	if l.when != nil {
		l.errs = append(l.errs, fmt.Errorf("nested condition on %q", selector))
	}
	l.when = &Condition{Selector: selector, Values: slices.Clone(values)}
	return l
}

// End closes the current When block.
func (l *Layout) End() *Layout {
	l.when = nil
	return l
}

// MinLength raises the shape's minimum length above its last field.
func (l *Layout) MinLength(n int) *Layout {
	if n > l.minLength {
		l.minLength = n
	}
	return l
}

func (l *Layout) add(name string, typ FieldType, width int) *Layout {
	if width <= 0 {
		l.errs = append(l.errs, fmt.Errorf("field %q: width must be positive", name))
		return l
	}
	f := Field{Name: name, Offset: l.cursor, Width: width, Type: typ}
	if l.when != nil {
		c := *l.when
		f.When = &c
	}
	l.cursor += width
	if l.cursor > l.minLength {
		l.minLength = l.cursor
	}
	if name != "" {
		l.fields = append(l.fields, f)
	}
	return l
}

// Build validates the layout and freezes it into a Shape.
func (l *Layout) Build() (*Shape, error) {
	if len(l.errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidShape, l.name, l.errs[0])
	}
	if l.when != nil {
		return nil, fmt.Errorf("%w: %s: unterminated condition on %q", ErrInvalidShape, l.name, l.when.Selector)
	}

	s := &Shape{
		name:      l.name,
		fields:    slices.Clone(l.fields),
		index:     make(map[string]int, len(l.fields)),
		minLength: l.minLength,
	}
	for i, f := range s.fields {
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate field %q", ErrInvalidShape, l.name, f.Name)
		}
		s.index[f.Name] = i
	}
	for _, f := range s.fields {
		if f.When == nil {
			continue
		}
		sel, ok := s.Field(f.When.Selector)
		if !ok {
			return nil, fmt.Errorf("%w: %s: field %q selects on unknown field %q",
				ErrInvalidShape, l.name, f.Name, f.When.Selector)
		}
		if sel.When != nil || sel.Type == TypeBytes {
			return nil, fmt.Errorf("%w: %s: selector %q must be an unconditional word",
				ErrInvalidShape, l.name, sel.Name)
		}
	}
	return s, nil
}

// MustBuild is Build that panics on error, for package-level shape declarations.
func (l *Layout) MustBuild() *Shape {
	s, err := l.Build()
	if err != nil {
		panic(err)
	}
	return s
}
