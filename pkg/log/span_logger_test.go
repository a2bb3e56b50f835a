package log_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refring/monero-rpc-go/pkg/log"
)

type mockRecorder struct {
	name   string
	kv     []any
	failed bool
}

func (m *mockRecorder) TraceID() string { return "trace-1" }

func (m *mockRecorder) SpanID() string { return "span-1" }

func (m *mockRecorder) RecordEvent(name string, kv ...any) {
	m.name, m.kv = name, kv
}

func (m *mockRecorder) RecordError(name string, kv ...any) {
	m.name, m.kv, m.failed = name, kv, true
}

func TestSpanLogger(t *testing.T) {
	t.Parallel()

	lg := NewMockLogger()
	ser := &mockRecorder{}
	sl := log.NewSpanLogger(lg.WithName("rpc").WithKV("url", "http://node"), ser)

	assert.Equal(t, 1, lg.callerSkip)

	sl.Info("rpc call finished", "method", "get_height")
	assert.Equal(t, "rpc call finished", ser.name)
	assert.Equal(t, []any{"level", "info", "component", "rpc", "url", "http://node", "method", "get_height"}, ser.kv)
	assert.False(t, ser.failed)
	assert.Equal(t, []any{"traceId", "trace-1", "spanId", "span-1", "method", "get_height"}, lg.lastEntry.KeysAndValues)

	sl.Error("rpc call failed", "kind", "transport")
	assert.True(t, ser.failed)
	assert.Equal(t, log.LevelError, lg.lastEntry.Level)
}
