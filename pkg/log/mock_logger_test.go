package log_test

import "github.com/refring/monero-rpc-go/pkg/log"

var _ log.Logger = &MockLogger{}

// MockLogger records the last entry it received.
type MockLogger struct {
	lastEntry MockLogEntry

	name          string
	keysAndValues []any
	callerSkip    int
}

type MockLogEntry struct {
	Level         log.Level
	Message       string
	KeysAndValues []any
}

func NewMockLogger() *MockLogger {
	return &MockLogger{name: "mock", keysAndValues: []any{}}
}

func (ml *MockLogger) Debug(msg string, kv ...any) { ml.record(log.LevelDebug, msg, kv) }

func (ml *MockLogger) Info(msg string, kv ...any) { ml.record(log.LevelInfo, msg, kv) }

func (ml *MockLogger) Warn(msg string, kv ...any) { ml.record(log.LevelWarn, msg, kv) }

func (ml *MockLogger) Error(msg string, kv ...any) { ml.record(log.LevelError, msg, kv) }

func (ml *MockLogger) Fatal(msg string, kv ...any) { ml.record(log.LevelFatal, msg, kv) }

func (ml *MockLogger) WithKV(key string, value any) log.Logger {
	ml.keysAndValues = append(ml.keysAndValues, key, value)
	return ml
}

func (ml *MockLogger) GetAllKV() []any { return ml.keysAndValues }

func (ml *MockLogger) WithName(name string) log.Logger {
	ml.name = name
	return ml
}

func (ml *MockLogger) Name() string { return ml.name }

func (ml *MockLogger) AddCallerSkip(skip int) log.Logger {
	ml.callerSkip += skip
	return ml
}

func (ml *MockLogger) record(level log.Level, msg string, kv []any) {
	ml.lastEntry = MockLogEntry{Level: level, Message: msg, KeysAndValues: kv}
}
