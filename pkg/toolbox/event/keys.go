package event

import (
	"math"
	"reflect"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
)

// Type is a symbolic event type: an id with the record shape its payload
// decodes to. Registering a handler for a Type makes the dispatcher hand the
// handler the decoded record instead of raw bytes.
type Type struct {
	Name    string
	ID      ID
	Decoder codec.Decoder
}

// Binding is one id resolved from a registration key.
type Binding struct {
	ID ID
	// Decoder is nil for raw integer keys.
	Decoder codec.Decoder
}

// ParseKeys resolves a registration key into bindings.
//
// A key is a non-negative integer of any integer type (ID included), a Type
// or *Type, or a non-empty slice or array of those. Anything else fails with
// a *KeyError matching ErrInvalidHandlerKey.
func ParseKeys(key any) ([]Binding, error) {
	v := reflect.ValueOf(key)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		if v.Len() == 0 {
			return nil, &KeyError{Key: key, Reason: "empty key list"}
		}
		out := make([]Binding, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			b, err := parseOne(v.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
		return out, nil
	}

	b, err := parseOne(key)
	if err != nil {
		return nil, err
	}
	return []Binding{b}, nil
}

func parseOne(key any) (Binding, error) {
	switch k := key.(type) {
	case Type:
		return Binding{ID: k.ID, Decoder: k.Decoder}, nil
	case *Type:
		if k == nil {
			return Binding{}, &KeyError{Key: key, Reason: "nil type"}
		}
		return Binding{ID: k.ID, Decoder: k.Decoder}, nil
	}

	v := reflect.ValueOf(key)
	switch {
	case v.CanInt():
		if v.Int() < 0 {
			return Binding{}, &KeyError{Key: key, Reason: "negative id"}
		}
		return uintBinding(key, uint64(v.Int()))
	case v.CanUint():
		return uintBinding(key, v.Uint())
	default:
		return Binding{}, &KeyError{Key: key}
	}
}

func uintBinding(key any, v uint64) (Binding, error) {
	if v > math.MaxUint32 {
		return Binding{}, &KeyError{Key: key, Reason: "id out of range"}
	}
	return Binding{ID: ID(v)}, nil
}
