// Package reply correlates outgoing user messages with their replies.
//
// A Correlator sends messages through a caller-supplied Transmitter and,
// when the sender asks for one, remembers a callback under the reference
// number the transmitter assigned. Incoming messages pass through
// OnIncomingMessage before normal dispatch: a message whose your-reference
// names a pending send is a reply, and a bounced message whose
// my-reference names one is a delivery failure. Either way the callback
// fires exactly once and is forgotten.
//
// Sends that never get an answer are resolved by IdleDrain, which the poll
// loop calls when it has nothing else to do. Each outstanding callback is
// invoked with a Reply whose Missing method reports true.
//
//	c := reply.New(reply.Config{Dispatcher: d, Transmitter: tx})
//	_, err := c.Send(ctx, msg, reply.Task(h), true,
//		func(ctx context.Context, r reply.Reply) (event.Result, error) {
//			if r.Missing() {
//				return event.Handled, nil
//			}
//			// ...
//			return event.Handled, nil
//		})
package reply
