package poll

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
	"github.com/randalmurphal/toolbox/pkg/toolbox/journal"
	"github.com/randalmurphal/toolbox/pkg/toolbox/observability"
	"github.com/randalmurphal/toolbox/pkg/toolbox/reply"
)

// Poller blocks until the next event the mask allows.
type Poller interface {
	Poll(ctx context.Context, mask Mask) (Event, error)
}

// PollerFunc adapts a function to the Poller interface.
type PollerFunc func(ctx context.Context, mask Mask) (Event, error)

// Poll implements Poller.
func (f PollerFunc) Poll(ctx context.Context, mask Mask) (Event, error) {
	return f(ctx, mask)
}

// Dispatcher routes toolbox and raw poll events. *event.Dispatcher
// satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind event.Kind, id event.ID, ids event.IDBlock, payload []byte) (bool, error)
}

// Config configures a Loop.
type Config struct {
	// Poller supplies events. Required for Step and Run.
	Poller Poller

	// Dispatcher receives toolbox and raw poll events, and messages when
	// there is no Correlator. Required.
	Dispatcher Dispatcher

	// Correlator sees every message before dispatch and is drained on
	// idle events. Optional.
	Correlator *reply.Correlator

	// RawReasons are the raw poll reasons to ask for, usually
	// Registry.RawPollIDs().
	RawReasons []event.ID

	// Journal records every dispatched event. Optional.
	Journal *journal.Recorder

	// Logger for loop logging. Nil disables logging.
	Logger *slog.Logger
}

// Loop routes poll events to the dispatch core.
type Loop struct {
	poller     Poller
	dispatcher Dispatcher
	correlator *reply.Correlator
	reasons    []event.ID
	journal    *journal.Recorder
	logger     *slog.Logger
}

// New creates a loop.
func New(cfg Config) *Loop {
	return &Loop{
		poller:     cfg.Poller,
		dispatcher: cfg.Dispatcher,
		correlator: cfg.Correlator,
		reasons:    slices.Clone(cfg.RawReasons),
		journal:    cfg.Journal,
		logger:     cfg.Logger,
	}
}

// WantsIdle reports whether the loop needs idle events, which is while
// replies are outstanding.
func (l *Loop) WantsIdle() bool {
	return l.correlator != nil && l.correlator.HasPendingReplies()
}

// Mask returns the events the next poll should ask for. Idle events are
// wanted while replies are outstanding or when reason 0 has a handler.
func (l *Loop) Mask() Mask {
	idle := l.WantsIdle() || slices.Contains(l.reasons, event.ID(ReasonIdle))
	return Mask{Idle: idle, Reasons: l.reasons}
}

// Step polls once and handles the event.
func (l *Loop) Step(ctx context.Context) error {
	ev, err := l.poller.Poll(ctx, l.Mask())
	if err != nil {
		return err
	}
	_, err = l.Handle(ctx, ev)
	return err
}

// Run steps until ctx is done or the poller returns ErrQuit. ErrQuit ends
// the loop with a nil error; any handler or callback error ends it with
// that error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Step(ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// Handle routes one event and reports whether a handler or reply callback
// consumed it.
func (l *Loop) Handle(ctx context.Context, ev Event) (bool, error) {
	switch ev.Reason {
	case ReasonIdle:
		return l.idle(ctx, ev)
	case ReasonToolboxEvent:
		hdr, err := codec.ToolboxEventDecoder.DecodeTyped(ev.Payload)
		if err != nil {
			return false, err
		}
		return l.dispatch(ctx, ev, event.KindToolbox, event.ID(hdr.Code))
	case ReasonUserMessage, ReasonUserMessageRecorded, ReasonUserMessageAck:
		return l.message(ctx, ev)
	default:
		return l.dispatch(ctx, ev, event.KindRawPoll, event.ID(ev.Reason))
	}
}

func (l *Loop) idle(ctx context.Context, ev Event) (bool, error) {
	if l.WantsIdle() {
		if err := l.correlator.IdleDrain(ctx); err != nil {
			return false, err
		}
	}
	if !slices.Contains(l.reasons, event.ID(ReasonIdle)) {
		return false, nil
	}
	return l.dispatch(ctx, ev, event.KindRawPoll, event.ID(ReasonIdle))
}

func (l *Loop) message(ctx context.Context, ev Event) (bool, error) {
	info, err := reply.NewMessageInfo(reply.Reason(ev.Reason), ev.Payload)
	if err != nil {
		return false, err
	}
	if l.correlator == nil {
		return l.dispatch(ctx, ev, event.KindMessage, info.ID())
	}

	handled, err := l.correlator.OnIncomingMessage(ctx, info, ev.IDs, ev.Payload)
	l.record(ctx, ev, event.KindMessage, info.ID(), handled, err)
	return handled, err
}

func (l *Loop) dispatch(ctx context.Context, ev Event, kind event.Kind, id event.ID) (bool, error) {
	handled, err := l.dispatcher.Dispatch(ctx, kind, id, ev.IDs, ev.Payload)
	l.record(ctx, ev, kind, id, handled, err)
	return handled, err
}

// record journals a dispatched event. Journal failures are logged and
// never interrupt the loop.
func (l *Loop) record(ctx context.Context, ev Event, kind event.Kind, id event.ID, handled bool, dispatchErr error) {
	if l.journal == nil {
		return
	}
	if err := l.journal.Record(ctx, uint32(ev.Reason), kind, id, ev.IDs, ev.Payload, handled, dispatchErr); err != nil {
		observability.LogJournalError(l.logger, l.journal.Session(), err)
	}
}
