package event

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/toolbox/pkg/toolbox/observability"
)

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Resolver turns id block ids into objects. Nil resolves nothing, so
	// only the application object is tried.
	Resolver Resolver

	// Application is tried after self, parent and ancestor. Optional.
	Application Object

	// Logger for dispatch logging. Nil disables logging.
	Logger *slog.Logger

	// Metrics records dispatch counts and latency. Default: no-op.
	Metrics observability.MetricsRecorder

	// Spans traces each dispatch. Default: no-op.
	Spans observability.SpanManager
}

// Dispatcher finds and runs the handler for an event along the
// self, parent, ancestor, application chain.
type Dispatcher struct {
	resolver    Resolver
	application Object
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NoopMetrics{}
	}
	if cfg.Spans == nil {
		cfg.Spans = observability.NoopSpanManager{}
	}
	return &Dispatcher{
		resolver:    cfg.Resolver,
		application: cfg.Application,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		spans:       cfg.Spans,
	}
}

// SetApplication sets or clears the process-wide fallback object.
func (d *Dispatcher) SetApplication(app Object) {
	d.application = app
}

// Candidates returns the objects tried for ids, in order: self, parent and
// ancestor with repeated ids dropped and unresolvable ids skipped, then the
// application object if one is set.
func (d *Dispatcher) Candidates(ids IDBlock) []Object {
	out := make([]Object, 0, 4)
	seen := make([]ObjectID, 0, 3)
	for _, id := range [...]ObjectID{ids.Self, ids.Parent, ids.Ancestor} {
		if containsID(seen, id) {
			continue
		}
		seen = append(seen, id)
		if d.resolver == nil {
			continue
		}
		if obj, ok := d.resolver.Resolve(id); ok && obj != nil {
			out = append(out, obj)
		}
	}
	if d.application != nil {
		out = append(out, d.application)
	}
	return out
}

// Dispatch offers an event to each candidate in turn until a handler
// returns Handled. It reports false, with a nil error, when nobody handled
// the event. A decoder or handler error aborts dispatch and is returned
// wrapped in a *DispatchError.
func (d *Dispatcher) Dispatch(ctx context.Context, kind Kind, id ID, ids IDBlock, payload []byte) (handled bool, err error) {
	elapsed := observability.TimedOperation()
	ctx, span := d.spans.StartDispatchSpan(ctx, kind.String(), uint32(id))
	candidates := d.Candidates(ids)
	defer func() {
		took := elapsed()
		d.metrics.RecordDispatch(ctx, kind.String(), handled, took, err)
		d.spans.EndSpanWithError(span, err)
		observability.LogDispatch(d.logger, kind.String(), uint32(id), handled, len(candidates), took)
	}()

	if !kind.valid() {
		return false, &DispatchError{Kind: kind, ID: id, Class: "-", Op: "route", Err: ErrInvalidKind}
	}

	for _, obj := range candidates {
		handled, err = d.dispatchTo(ctx, obj, kind, id, ids, payload)
		if err != nil || handled {
			return handled, err
		}
	}
	return false, nil
}

// dispatchTo tries every handler obj has for the event, in precedence order.
func (d *Dispatcher) dispatchTo(ctx context.Context, obj Object, kind Kind, id ID, ids IDBlock, payload []byte) (bool, error) {
	owner := obj.Handlers()
	if !owner.Has(kind, id) {
		return false, nil
	}

	for _, e := range owner.Handlers(kind, id, ids.Component) {
		d.spans.AddSpanEvent(ctx, "handler",
			attribute.String("class", e.Class.Name()),
			attribute.String("object_class", owner.Class().Name()),
		)

		var data any = payload
		if e.Decoder != nil {
			decoded, err := e.Decoder.Decode(payload)
			if err != nil {
				return false, d.failed(kind, id, ids, e.Class, "decode", err)
			}
			data = decoded
		}

		res, err := e.Handler(ctx, obj, id, ids, data)
		if err != nil {
			return false, d.failed(kind, id, ids, e.Class, "handle", err)
		}
		if res != Continue {
			return true, nil
		}
	}
	return false, nil
}

func (d *Dispatcher) failed(kind Kind, id ID, ids IDBlock, class *Class, op string, err error) error {
	logger := observability.EnrichLogger(d.logger, kind.String(), uint32(id), uint32(ids.Self), int32(ids.Component))
	observability.LogHandlerError(logger, class.Name(), op, err)
	return &DispatchError{Kind: kind, ID: id, Class: class.Name(), Op: op, Err: err}
}

func containsID(ids []ObjectID, id ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
