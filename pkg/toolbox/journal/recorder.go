package journal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
)

// Recorder appends the events of one session to a Store, numbering them
// in the order they are recorded. It is used from a single poll loop.
type Recorder struct {
	store   Store
	session string
	seq     int64
	now     func() time.Time
}

// NewRecorder starts a new session with a random id.
func NewRecorder(store Store) *Recorder {
	return NewSessionRecorder(store, uuid.NewString())
}

// NewSessionRecorder records into the named session. Sequence numbers
// restart at 1, so a session id should not be reused.
func NewSessionRecorder(store Store, session string) *Recorder {
	return &Recorder{store: store, session: session, now: time.Now}
}

// Session returns the session id.
func (r *Recorder) Session() string {
	return r.session
}

// Record appends one dispatched event with its outcome.
func (r *Recorder) Record(ctx context.Context, reason uint32, kind event.Kind, id event.ID, ids event.IDBlock, payload []byte, handled bool, dispatchErr error) error {
	r.seq++
	e := Entry{
		ID:        uuid.NewString(),
		Session:   r.session,
		Sequence:  r.seq,
		Reason:    reason,
		Kind:      kind,
		EventID:   id,
		IDs:       ids,
		Payload:   payload,
		Handled:   handled,
		Timestamp: r.now(),
	}
	if dispatchErr != nil {
		e.Error = dispatchErr.Error()
	}
	return r.store.Append(ctx, e)
}
