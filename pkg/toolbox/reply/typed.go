package reply

import (
	"context"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// TypedCallback receives a reply decoded by the mapping given to Typed.
// message is the mapped record for a known code, the bare
// codec.MessageHeader for any other code, and nil when r.Missing().
type TypedCallback func(ctx context.Context, r Reply, message any) (event.Result, error)

// Typed builds a Callback that decodes replies by message code.
//
// keys accepts the same forms as handler registration: integer codes map to
// the bare header, and event.Type values map to their decoder. Every code is
// marked reply-trackable on b.
func Typed(b *event.Builder, keys any, cb TypedCallback) (Callback, error) {
	bindings, err := event.ParseKeys(keys)
	if err != nil {
		return nil, err
	}

	decoders := make(map[event.ID]codec.Decoder, len(bindings))
	codes := make([]event.ID, 0, len(bindings))
	for _, bnd := range bindings {
		decoders[bnd.ID] = bnd.Decoder
		codes = append(codes, bnd.ID)
	}
	if err := b.TrackReplies(codes...); err != nil {
		return nil, err
	}

	return func(ctx context.Context, r Reply) (event.Result, error) {
		if r.Missing() {
			return cb(ctx, r, nil)
		}
		if dec := decoders[r.Info.ID()]; dec != nil {
			message, err := dec.Decode(r.Payload)
			if err != nil {
				return event.Handled, err
			}
			return cb(ctx, r, message)
		}
		return cb(ctx, r, r.Info.MessageHeader)
	}, nil
}
