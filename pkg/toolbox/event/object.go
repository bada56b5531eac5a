package event

import "github.com/randalmurphal/toolbox/pkg/toolbox/registry"

// Object is anything events can be dispatched to.
type Object interface {
	// Handlers returns the object's handler table.
	Handlers() *Owner
}

// Base gives an object its handler table. Embed it in dispatch-capable types:
//
//	type SaveBox struct {
//	    event.Base
//	    path string
//	}
//
//	box := &SaveBox{Base: event.NewBase(reg, saveBoxClass)}
type Base struct {
	owner *Owner
}

// NewBase binds the handler table of class.
func NewBase(reg *Registry, class *Class) Base {
	return Base{owner: reg.Owner(class)}
}

// Handlers implements Object.
func (b Base) Handlers() *Owner {
	return b.owner
}

// Resolver turns a numeric object id into a dispatch-capable object.
type Resolver interface {
	Resolve(id ObjectID) (Object, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(id ObjectID) (Object, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(id ObjectID) (Object, bool) {
	return f(id)
}

// Objects is a Resolver backed by an id table.
type Objects struct {
	table *registry.Table[ObjectID, Object]
}

// NewObjects creates an empty object table.
func NewObjects() *Objects {
	return &Objects{table: registry.New[ObjectID, Object]()}
}

// Add makes obj resolvable under id, replacing any previous object.
func (o *Objects) Add(id ObjectID, obj Object) {
	o.table.Put(id, obj)
}

// Remove forgets id, typically when the object is deleted.
func (o *Objects) Remove(id ObjectID) {
	o.table.Delete(id)
}

// Len returns the number of known objects.
func (o *Objects) Len() int {
	return o.table.Len()
}

// Resolve implements Resolver. The zero id never resolves.
func (o *Objects) Resolve(id ObjectID) (Object, bool) {
	if id == 0 {
		return nil, false
	}
	return o.table.Get(id)
}
