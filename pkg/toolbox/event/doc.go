// Package event implements handler registration and dispatch for toolbox
// events, raw poll reasons, and user messages.
//
// # Registration
//
// Handlers are registered during a registration phase against the class
// that declares them. Freeze ends the phase and yields an immutable
// Registry:
//
//	b := event.NewBuilder()
//	window := event.NewClass("Window", nil)
//	saveAs := event.NewClass("SaveAs", window)
//
//	// every component
//	err := b.Class(window).OnToolbox(0x82a91, onHasBeenHidden)
//
//	// components 2 and 3 only, with a typed payload
//	err = b.Class(saveAs).OnToolbox(aboutToBeShown, onShow, 2, 3)
//
//	reg := b.Freeze()
//
// A key is an integer id, an ID, a Type (an id plus the decoder for its
// payload) or a slice of those. Any other key fails at registration time
// with ErrInvalidHandlerKey.
//
// # Handler tables
//
// Every dispatch-capable object carries an Owner: the registry flattened
// along its class chain, most-derived class first. Owners are built once per
// class and shared. Embed Base to get one:
//
//	type SaveBox struct{ event.Base }
//	box := &SaveBox{Base: event.NewBase(reg, saveAs)}
//
// # Dispatch
//
// Dispatcher.Dispatch tries the self, parent and ancestor objects from the
// id block, then the application object. At each object the class layers
// are tried most-derived first, and within a layer the handlers for the
// event's component come before the all-component handlers. So a wildcard
// handler on a derived class outranks a component handler on its ancestor.
//
// A handler returning Continue passes the event on; anything else,
// including the zero Result, ends dispatch. Decoder and handler errors abort
// dispatch and are returned as *DispatchError. Finding no handler is not an
// error: Dispatch reports false.
//
// # Concurrency
//
// Registries are immutable after Freeze. Dispatchers, owner caches and
// object tables are meant to be driven by one poll loop and are not safe for
// concurrent use.
package event
