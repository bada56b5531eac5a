package journal

import (
	"context"
	"fmt"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// Target receives replayed events. *event.Dispatcher satisfies it.
type Target interface {
	Dispatch(ctx context.Context, kind event.Kind, id event.ID, ids event.IDBlock, payload []byte) (bool, error)
}

// Replay feeds a recorded session back into target in sequence order and
// returns how many entries were dispatched. Message entries go straight to
// the target: reply callbacks belong to the process that sent the original
// messages and are not replayed. The first dispatch error stops the replay.
func Replay(ctx context.Context, store Store, session string, target Target) (int, error) {
	entries, err := store.Entries(ctx, session)
	if err != nil {
		return 0, err
	}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := target.Dispatch(ctx, e.Kind, e.EventID, e.IDs, e.Payload); err != nil {
			return i, fmt.Errorf("replay %s sequence %d: %w", session, e.Sequence, err)
		}
	}
	return len(entries), nil
}
