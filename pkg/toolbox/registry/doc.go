// Package registry provides a generic keyed table that remembers insertion order.
//
// Table backs the per-process lookup structures of the toolbox core: the
// object table that resolves numeric ids to dispatch-capable objects, the
// per-class handler owner cache, and the outstanding reply table.
//
// # Basic Usage
//
//	t := registry.New[int32, string]()
//	t.Put(7, "seven")
//	t.Put(3, "three")
//
//	t.Keys() // [7 3], insertion order
//
// # Exactly-once removal
//
// Take removes and returns an entry in one step. A second Take for the
// same key reports false, which is what the reply correlator relies on to
// make double firing impossible:
//
//	if cb, ok := pending.Take(ref); ok {
//	    cb(reply)
//	}
//
// # Lazy Initialization
//
// GetOrCreate calls its factory at most once per key:
//
//	owner := owners.GetOrCreate(class, func() *Owner { return build(class) })
//
// # Concurrency
//
// Table is not safe for concurrent use. The toolbox core runs on a single
// cooperative poll loop, so every table is owned by that loop.
package registry
