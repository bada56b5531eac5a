package reply

import (
	"context"
	"errors"
	"log/slog"

	"github.com/randalmurphal/toolbox/pkg/toolbox/codec"
	tberrors "github.com/randalmurphal/toolbox/pkg/toolbox/errors"
	"github.com/randalmurphal/toolbox/pkg/toolbox/event"
	"github.com/randalmurphal/toolbox/pkg/toolbox/observability"
	"github.com/randalmurphal/toolbox/pkg/toolbox/registry"
)

// Transmitter sends a fully encoded message block and returns the
// reference number assigned to it.
type Transmitter interface {
	Transmit(ctx context.Context, reason Reason, payload []byte, target Target) (Reference, error)
}

// TransmitterFunc adapts a function to the Transmitter interface.
type TransmitterFunc func(ctx context.Context, reason Reason, payload []byte, target Target) (Reference, error)

// Transmit implements Transmitter.
func (f TransmitterFunc) Transmit(ctx context.Context, reason Reason, payload []byte, target Target) (Reference, error) {
	return f(ctx, reason, payload, target)
}

// Dispatcher routes a message that is not a reply. *event.Dispatcher
// satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind event.Kind, id event.ID, ids event.IDBlock, payload []byte) (bool, error)
}

// Config configures a Correlator.
type Config struct {
	// Dispatcher receives messages that are not replies.
	Dispatcher Dispatcher

	// Transmitter sends outgoing messages. Required for sends.
	Transmitter Transmitter

	// Retry controls how transient transmit failures are retried.
	// Default: NoRetry.
	Retry tberrors.RetryConfig

	// Logger for send and reply logging. Nil disables logging.
	Logger *slog.Logger

	// Metrics records fired replies and the pending count. Default: no-op.
	Metrics observability.MetricsRecorder
}

// Correlator tracks sends awaiting replies. It is driven from a single poll
// loop and does no locking.
type Correlator struct {
	dispatcher  Dispatcher
	transmitter Transmitter
	retry       tberrors.RetryConfig
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	pending     *registry.Table[Reference, Callback]
}

// New creates a correlator.
func New(cfg Config) *Correlator {
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = tberrors.NoRetry
	}
	return &Correlator{
		dispatcher:  cfg.Dispatcher,
		transmitter: cfg.Transmitter,
		retry:       cfg.Retry,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		pending:     registry.New[Reference, Callback](),
	}
}

// Send sends msg to target. With wantsReply the message goes out recorded,
// so an undelivered message bounces back. A non-nil cb is stored under the
// returned reference and fires once: on a reply, on a bounce, or on the
// next idle drain.
func (c *Correlator) Send(ctx context.Context, msg Message, target Target, wantsReply bool, cb Callback) (Reference, error) {
	return c.send(ctx, msg, 0, target, wantsReply, cb)
}

// Broadcast sends msg to every task.
func (c *Correlator) Broadcast(ctx context.Context, msg Message, wantsReply bool, cb Callback) (Reference, error) {
	return c.send(ctx, msg, 0, Target{}, wantsReply, cb)
}

// Reply answers original with msg. The reply's your-reference is the
// original's my-reference and it goes to the original sender.
func (c *Correlator) Reply(ctx context.Context, original MessageInfo, msg Message, wantsReply bool, cb Callback) (Reference, error) {
	return c.send(ctx, msg, original.MyRef, Task(original.Sender), wantsReply, cb)
}

// Acknowledge tells the sender of a recorded message that it was received,
// so it will not bounce. body is the original message body.
func (c *Correlator) Acknowledge(ctx context.Context, original MessageInfo, body []byte) error {
	if c.transmitter == nil {
		return ErrNoTransmitter
	}
	h := original.MessageHeader
	h.YourRef = h.MyRef
	payload := codec.AppendMessage(nil, h, body)
	_, err := c.transmit(ctx, ReasonAcknowledge, payload, Task(original.Sender))
	return err
}

func (c *Correlator) send(ctx context.Context, msg Message, yourRef uint32, target Target, wantsReply bool, cb Callback) (Reference, error) {
	if c.transmitter == nil {
		return 0, ErrNoTransmitter
	}

	reason := ReasonMessage
	if wantsReply {
		reason = ReasonRecorded
	}
	payload := codec.AppendMessage(nil, codec.MessageHeader{
		YourRef: yourRef,
		Code:    uint32(msg.Code),
	}, msg.Body)

	ref, err := c.transmit(ctx, reason, payload, target)
	if err != nil {
		return 0, err
	}
	observability.LogSend(c.logger, uint32(msg.Code), uint32(ref), target.Handle, cb != nil)

	if cb == nil {
		return ref, nil
	}
	if ref == 0 {
		return 0, ErrZeroReference
	}
	if !c.pending.Insert(ref, cb) {
		return ref, ErrDuplicateReference
	}
	c.metrics.RecordPending(ctx, 1)
	return ref, nil
}

func (c *Correlator) transmit(ctx context.Context, reason Reason, payload []byte, target Target) (Reference, error) {
	send := func(ctx context.Context) (Reference, error) {
		return c.transmitter.Transmit(ctx, reason, payload, target)
	}
	if !c.retry.Enabled() {
		return send(ctx)
	}
	return tberrors.Retry(ctx, c.retry, send, func(a tberrors.Attempt) {
		observability.LogTransmitRetry(c.logger, uint32(reason), target.Handle, a.Number, a.Wait, a.Err)
	})
}

// OnIncoming decodes the message header from payload and hands the message
// to OnIncomingMessage.
func (c *Correlator) OnIncoming(ctx context.Context, reason Reason, ids event.IDBlock, payload []byte) (bool, error) {
	info, err := NewMessageInfo(reason, payload)
	if err != nil {
		return false, err
	}
	return c.OnIncomingMessage(ctx, info, ids, payload)
}

// OnIncomingMessage runs reply correlation ahead of normal dispatch.
//
// A message whose your-reference names a pending send fires that send's
// callback. Failing that, a bounce whose my-reference names a pending send
// fires that callback. A callback returning Continue lets the message go on
// to the dispatcher under its code; any other result stops it there.
func (c *Correlator) OnIncomingMessage(ctx context.Context, info MessageInfo, ids event.IDBlock, payload []byte) (bool, error) {
	if info.YourRef != 0 {
		done, err := c.fire(ctx, Reference(info.YourRef), SourceReply, info, payload)
		if err != nil || done {
			return done, err
		}
	}

	if info.Bounce() && info.MyRef != 0 {
		done, err := c.fire(ctx, Reference(info.MyRef), SourceBounce, info, payload)
		if err != nil || done {
			return done, err
		}
	}

	if c.dispatcher == nil {
		return false, ErrNoDispatcher
	}
	return c.dispatcher.Dispatch(ctx, event.KindMessage, info.ID(), ids, payload)
}

// fire removes and runs the callback for ref, if there is one. It reports
// true when the callback consumed the message.
func (c *Correlator) fire(ctx context.Context, ref Reference, src Source, info MessageInfo, payload []byte) (bool, error) {
	cb, ok := c.pending.Take(ref)
	if !ok {
		return false, nil
	}
	c.metrics.RecordPending(ctx, -1)
	c.metrics.RecordReply(ctx, src.String())

	res, err := cb(ctx, Reply{Ref: ref, Source: src, Info: info, Payload: payload})
	if err != nil {
		observability.LogReplyError(c.logger, uint32(ref), src.String(), err)
		return false, &CallbackError{Ref: ref, Source: src, Err: err}
	}
	observability.LogReplyFired(c.logger, uint32(ref), src.String(), res == event.Continue)
	return res != event.Continue, nil
}

// IdleDrain fires every callback outstanding when it is called with the
// no-reply sentinel. Callbacks registered while the pass runs wait for the
// next pass. A failing callback does not stop the pass; every failure is
// returned joined.
func (c *Correlator) IdleDrain(ctx context.Context) error {
	var errs []error
	drained := 0
	for _, ref := range c.pending.Keys() {
		cb, ok := c.pending.Take(ref)
		if !ok {
			continue
		}
		drained++
		c.metrics.RecordPending(ctx, -1)
		c.metrics.RecordReply(ctx, SourceNoReply.String())

		res, err := cb(ctx, Reply{Ref: ref, Source: SourceNoReply})
		if err != nil {
			observability.LogReplyError(c.logger, uint32(ref), SourceNoReply.String(), err)
			errs = append(errs, &CallbackError{Ref: ref, Source: SourceNoReply, Err: err})
			continue
		}
		observability.LogReplyFired(c.logger, uint32(ref), SourceNoReply.String(), res == event.Continue)
	}
	observability.LogIdleDrain(c.logger, drained, c.pending.Len())
	return errors.Join(errs...)
}

// HasPendingReplies reports whether any send is still waiting. A poll loop
// asks for idle events only while this is true.
func (c *Correlator) HasPendingReplies() bool {
	return c.pending.Len() > 0
}

// Pending returns the outstanding references in send order.
func (c *Correlator) Pending() []Reference {
	return c.pending.Keys()
}
