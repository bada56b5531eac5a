package event

import (
	"fmt"
	"slices"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
	"github.com/randalmurphal/toolbox/pkg/toolbox/registry"
)

// Entry is one registered handler.
type Entry struct {
	Handler Handler
	// Decoder is nil when the handler wants the raw payload.
	Decoder codec.Decoder
	// Class is the declaring class.
	Class *Class
}

// layer holds one declaring class's registrations for one event id.
type layer struct {
	class       *Class
	byComponent map[ComponentID][]Entry
	wildcard    []Entry
}

func (l *layer) clone() *layer {
	out := &layer{
		class:       l.class,
		byComponent: make(map[ComponentID][]Entry, len(l.byComponent)),
		wildcard:    slices.Clone(l.wildcard),
	}
	for c, es := range l.byComponent {
		out.byComponent[c] = slices.Clone(es)
	}
	return out
}

type tableKey struct {
	kind Kind
	id   ID
}

// Builder collects registrations during the registration phase.
// Freeze ends the phase; later registrations fail with ErrRegistryFrozen.
type Builder struct {
	layers  map[tableKey]map[*Class]*layer
	replies map[ID]struct{}
	frozen  bool
}

// NewBuilder starts a registration phase.
func NewBuilder() *Builder {
	return &Builder{
		layers:  make(map[tableKey]map[*Class]*layer),
		replies: make(map[ID]struct{}),
	}
}

// Class returns a scope whose registrations are declared by class.
func (b *Builder) Class(class *Class) *Scope {
	return &Scope{b: b, class: class}
}

// TrackReplies marks message codes as reply-trackable.
func (b *Builder) TrackReplies(codes ...ID) error {
	if b.frozen {
		return ErrRegistryFrozen
	}
	for _, c := range codes {
		b.replies[c] = struct{}{}
	}
	return nil
}

func (b *Builder) register(kind Kind, class *Class, key any, h Handler, components []ComponentID) error {
	if b.frozen {
		return ErrRegistryFrozen
	}
	if !kind.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, int(kind))
	}
	if class == nil {
		return ErrNilClass
	}
	if h == nil {
		return ErrNilHandler
	}
	bindings, err := ParseKeys(key)
	if err != nil {
		return err
	}

	for _, bnd := range bindings {
		k := tableKey{kind: kind, id: bnd.ID}
		byClass, ok := b.layers[k]
		if !ok {
			byClass = make(map[*Class]*layer)
			b.layers[k] = byClass
		}
		l, ok := byClass[class]
		if !ok {
			l = &layer{class: class, byComponent: make(map[ComponentID][]Entry)}
			byClass[class] = l
		}

		e := Entry{Handler: h, Decoder: bnd.Decoder, Class: class}
		if len(components) == 0 {
			l.wildcard = append(l.wildcard, e)
			continue
		}
		for _, c := range components {
			l.byComponent[c] = append(l.byComponent[c], e)
		}
	}
	return nil
}

// Freeze ends the registration phase and returns the immutable registry.
// Calling Freeze again returns a registry with the same content.
func (b *Builder) Freeze() *Registry {
	b.frozen = true

	r := &Registry{
		layers:  make(map[tableKey]map[*Class]*layer, len(b.layers)),
		replies: make(map[ID]struct{}, len(b.replies)),
		owners:  registry.New[*Class, *Owner](),
	}
	for k, byClass := range b.layers {
		copied := make(map[*Class]*layer, len(byClass))
		for c, l := range byClass {
			copied[c] = l.clone()
		}
		r.layers[k] = copied
	}
	for c := range b.replies {
		r.replies[c] = struct{}{}
	}
	return r
}

// Scope registers handlers declared by one class.
type Scope struct {
	b     *Builder
	class *Class
}

// OnToolbox registers h for toolbox event key. With no components the handler
// matches every component.
func (s *Scope) OnToolbox(key any, h Handler, components ...ComponentID) error {
	return s.b.register(KindToolbox, s.class, key, h, components)
}

// OnMessage registers h for user message key.
func (s *Scope) OnMessage(key any, h Handler, components ...ComponentID) error {
	return s.b.register(KindMessage, s.class, key, h, components)
}

// OnRawPoll registers h for raw poll reason key.
func (s *Scope) OnRawPoll(key any, h Handler, components ...ComponentID) error {
	return s.b.register(KindRawPoll, s.class, key, h, components)
}
