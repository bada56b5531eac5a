package event

// Owner is the per-class view of the registry: for each (kind, id), the
// layers that declare handlers, most-derived class first. It is built once
// and never rebuilt.
type Owner struct {
	class  *Class
	tables map[tableKey][]*layer
}

// Class returns the class the table was built for.
func (o *Owner) Class() *Class {
	return o.class
}

// Has reports whether any layer declares a handler for (kind, id).
func (o *Owner) Has(kind Kind, id ID) bool {
	if o == nil {
		return false
	}
	return len(o.tables[tableKey{kind, id}]) > 0
}

// Handlers returns the entries tried for an event from component, in order.
//
// Layers are walked most-derived first. Within a layer the entries for the
// component come before the wildcard entries. A wildcard handler on a
// derived class therefore outranks a component handler on an ancestor.
func (o *Owner) Handlers(kind Kind, id ID, component ComponentID) []Entry {
	if o == nil {
		return nil
	}
	var out []Entry
	for _, l := range o.tables[tableKey{kind, id}] {
		out = append(out, l.byComponent[component]...)
		out = append(out, l.wildcard...)
	}
	return out
}
