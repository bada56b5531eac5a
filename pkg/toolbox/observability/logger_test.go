package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := newTestLogger()

	EnrichLogger(logger, "toolbox", 0x82ac1, 42, 3).Info("trying handlers")

	m := decodeLine(t, buf)
	assert.Equal(t, "toolbox", m["kind"])
	assert.Equal(t, float64(0x82ac1), m["event_id"])
	assert.Equal(t, float64(42), m["self_id"])
	assert.Equal(t, float64(3), m["component_id"])
}

func TestLogHelpersNilLogger(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "toolbox", 1, 1, 1))
	assert.NotPanics(t, func() {
		LogDispatch(nil, "toolbox", 1, true, 2, time.Millisecond)
		LogHandlerError(nil, "A", "handle", errors.New("x"))
		LogTransmitRetry(nil, 18, 5, 1, time.Millisecond, errors.New("x"))
		LogSend(nil, 1, 2, 3, true)
		LogReplyFired(nil, 1, "reply", false)
		LogReplyError(nil, 1, "reply", errors.New("x"))
		LogIdleDrain(nil, 1, 0)
		LogJournalError(nil, "s", errors.New("x"))
	})
}

func TestLogDispatch(t *testing.T) {
	logger, buf := newTestLogger()

	LogDispatch(logger, "message", 0x502, false, 3, 1500*time.Microsecond)

	m := decodeLine(t, buf)
	assert.Equal(t, "event dispatched", m["msg"])
	assert.Equal(t, "DEBUG", m["level"])
	assert.Equal(t, false, m["handled"])
	assert.Equal(t, float64(3), m["candidates"])
	assert.Equal(t, 1.5, m["duration_ms"])
}

func TestLogHandlerError(t *testing.T) {
	logger, buf := newTestLogger()

	LogHandlerError(EnrichLogger(logger, "toolbox", 7, 42, 3), "SaveAs", "decode", errors.New("payload too short"))

	m := decodeLine(t, buf)
	assert.Equal(t, "ERROR", m["level"])
	assert.Equal(t, "toolbox", m["kind"])
	assert.Equal(t, float64(42), m["self_id"])
	assert.Equal(t, "SaveAs", m["class"])
	assert.Equal(t, "decode", m["op"])
	assert.Equal(t, "payload too short", m["error"])
}

func TestLogReplyLifecycle(t *testing.T) {
	logger, buf := newTestLogger()

	LogSend(logger, 0x400c0, 101, 7, true)
	m := decodeLine(t, buf)
	assert.Equal(t, "message sent", m["msg"])
	assert.Equal(t, true, m["awaiting_reply"])
	buf.Reset()

	LogTransmitRetry(logger, 18, 7, 2, 20*time.Millisecond, errors.New("queue full"))
	m = decodeLine(t, buf)
	assert.Equal(t, "WARN", m["level"])
	assert.Equal(t, float64(2), m["attempt"])
	assert.Equal(t, float64(18), m["reason"])
	buf.Reset()

	LogReplyFired(logger, 101, "bounce", true)
	m = decodeLine(t, buf)
	assert.Equal(t, "bounce", m["source"])
	assert.Equal(t, true, m["continued"])
	buf.Reset()

	LogIdleDrain(logger, 2, 0)
	m = decodeLine(t, buf)
	assert.Equal(t, float64(2), m["drained"])
	buf.Reset()

	LogJournalError(logger, "session-1", errors.New("disk full"))
	m = decodeLine(t, buf)
	assert.Equal(t, "WARN", m["level"])
	assert.Equal(t, "session-1", m["session"])
}

func TestTimedOperation(t *testing.T) {
	elapsed := TimedOperation()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, elapsed(), 2*time.Millisecond)
}
