// Package observability provides structured logging, metrics, and tracing
// for the toolbox dispatch core.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds event context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "toolbox", 0x82ac1, 0x2a, 3)
//	enriched.Debug("trying handlers") // includes kind, event_id, self_id, component_id
func EnrichLogger(logger *slog.Logger, kind string, eventID uint32, selfID uint32, component int32) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("kind", kind),
		slog.Uint64("event_id", uint64(eventID)),
		slog.Uint64("self_id", uint64(selfID)),
		slog.Int("component_id", int(component)),
	)
}

// LogDispatch logs the outcome of one dispatch.
func LogDispatch(logger *slog.Logger, kind string, eventID uint32, handled bool, candidates int, elapsed time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("event dispatched",
		slog.String("kind", kind),
		slog.Uint64("event_id", uint64(eventID)),
		slog.Bool("handled", handled),
		slog.Int("candidates", candidates),
		slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000),
	)
}

// LogHandlerError logs a decoder or handler failure. Pass a logger from
// EnrichLogger so the line carries the event context.
func LogHandlerError(logger *slog.Logger, class string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Error("event handler failed",
		slog.String("class", class),
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

// LogSend logs an outgoing message.
func LogSend(logger *slog.Logger, code uint32, ref uint32, target int32, tracked bool) {
	if logger == nil {
		return
	}
	logger.Debug("message sent",
		slog.Uint64("code", uint64(code)),
		slog.Uint64("ref", uint64(ref)),
		slog.Int("target", int(target)),
		slog.Bool("awaiting_reply", tracked),
	)
}

// LogTransmitRetry logs a transient transmit failure that will be retried.
func LogTransmitRetry(logger *slog.Logger, reason uint32, target int32, attempt int, wait time.Duration, err error) {
	if logger == nil {
		return
	}
	logger.Warn("transmit retry",
		slog.Uint64("reason", uint64(reason)),
		slog.Int("target", int(target)),
		slog.Int("attempt", attempt),
		slog.Duration("wait", wait),
		slog.String("error", err.Error()),
	)
}

// LogReplyFired logs a pending reply callback being invoked.
// source is "reply", "bounce", or "no_reply".
func LogReplyFired(logger *slog.Logger, ref uint32, source string, continued bool) {
	if logger == nil {
		return
	}
	logger.Debug("reply callback fired",
		slog.Uint64("ref", uint64(ref)),
		slog.String("source", source),
		slog.Bool("continued", continued),
	)
}

// LogReplyError logs a reply callback failure.
func LogReplyError(logger *slog.Logger, ref uint32, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("reply callback failed",
		slog.Uint64("ref", uint64(ref)),
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// LogIdleDrain logs an idle drain pass.
func LogIdleDrain(logger *slog.Logger, drained int, remaining int) {
	if logger == nil {
		return
	}
	logger.Debug("idle drain",
		slog.Int("drained", drained),
		slog.Int("remaining", remaining),
	)
}

// LogJournalError logs a journal write failure (non-fatal).
func LogJournalError(logger *slog.Logger, session string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("session", session),
		slog.String("error", err.Error()),
	)
}

// TimedOperation starts a clock. The returned function reports the time
// since the call.
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
