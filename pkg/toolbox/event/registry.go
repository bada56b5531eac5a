package event

import (
	"slices"

	"github.com/randalmurphal/toolbox/pkg/toolbox/registry"
)

// Registry is the frozen handler table produced by Builder.Freeze.
// Registrations never change after Freeze. The per-class owner cache is
// filled on first use without locking, so a Registry belongs to one poll
// loop like the rest of the dispatch state.
type Registry struct {
	layers  map[tableKey]map[*Class]*layer
	replies map[ID]struct{}
	owners  *registry.Table[*Class, *Owner]
}

// Owner returns the flattened handler table for objects of class.
// Tables are built on first use and shared by every object of that class.
func (r *Registry) Owner(class *Class) *Owner {
	return r.owners.GetOrCreate(class, func() *Owner {
		return r.buildOwner(class)
	})
}

// IDs returns the ids with at least one handler for kind, ascending.
func (r *Registry) IDs(kind Kind) []ID {
	var ids []ID
	for k := range r.layers {
		if k.kind == kind {
			ids = append(ids, k.id)
		}
	}
	slices.Sort(ids)
	return ids
}

// RawPollIDs returns the raw poll reasons that have handlers, so a poll
// loop can mask out the rest.
func (r *Registry) RawPollIDs() []ID {
	return r.IDs(KindRawPoll)
}

// ReplyTrackable reports whether code was marked by TrackReplies.
func (r *Registry) ReplyTrackable(code ID) bool {
	_, ok := r.replies[code]
	return ok
}

// ReplyCodes returns every reply-trackable code, ascending.
func (r *Registry) ReplyCodes() []ID {
	codes := make([]ID, 0, len(r.replies))
	for c := range r.replies {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

func (r *Registry) buildOwner(class *Class) *Owner {
	o := &Owner{
		class:  class,
		tables: make(map[tableKey][]*layer),
	}
	for _, c := range class.Chain() {
		for k, byClass := range r.layers {
			if l, ok := byClass[c]; ok {
				o.tables[k] = append(o.tables[k], l)
			}
		}
	}
	return o
}
