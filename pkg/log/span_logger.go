package log

var _ Logger = SpanLogger{}

// SpanLogger forwards entries to a wrapped logger and records them as events
// on a span. Entries sent to the wrapped logger carry traceId and spanId.
type SpanLogger struct {
	lg  Logger
	ser SpanEventRecorder
}

// NewSpanLogger wraps lg so that every entry is also recorded through ser.
func NewSpanLogger(lg Logger, ser SpanEventRecorder) Logger {
	return SpanLogger{
		lg:  lg.AddCallerSkip(1),
		ser: ser,
	}
}

func (sl SpanLogger) Debug(msg string, keysAndValues ...any) {
	sl.ser.RecordEvent(msg, sl.eventAttributes(LevelDebug, keysAndValues)...)
	sl.lg.Debug(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl SpanLogger) Info(msg string, keysAndValues ...any) {
	sl.ser.RecordEvent(msg, sl.eventAttributes(LevelInfo, keysAndValues)...)
	sl.lg.Info(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl SpanLogger) Warn(msg string, keysAndValues ...any) {
	sl.ser.RecordEvent(msg, sl.eventAttributes(LevelWarn, keysAndValues)...)
	sl.lg.Warn(msg, sl.withTraceIDs(keysAndValues)...)
}

// Error records the entry as an error event, which marks the span failed.
func (sl SpanLogger) Error(msg string, keysAndValues ...any) {
	sl.ser.RecordError(msg, sl.eventAttributes(LevelError, keysAndValues)...)
	sl.lg.Error(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl SpanLogger) Fatal(msg string, keysAndValues ...any) {
	sl.ser.RecordError(msg, sl.eventAttributes(LevelFatal, keysAndValues)...)
	sl.lg.Fatal(msg, sl.withTraceIDs(keysAndValues)...)
}

func (sl SpanLogger) WithKV(key string, value any) Logger {
	return SpanLogger{lg: sl.lg.WithKV(key, value), ser: sl.ser}
}

func (sl SpanLogger) GetAllKV() []any {
	return sl.lg.GetAllKV()
}

func (sl SpanLogger) WithName(name string) Logger {
	return SpanLogger{lg: sl.lg.WithName(name), ser: sl.ser}
}

func (sl SpanLogger) Name() string {
	return sl.lg.Name()
}

func (sl SpanLogger) AddCallerSkip(skip int) Logger {
	return SpanLogger{lg: sl.lg.AddCallerSkip(skip), ser: sl.ser}
}

func (sl SpanLogger) withTraceIDs(keysAndValues []any) []any {
	return append([]any{"traceId", sl.ser.TraceID(), "spanId", sl.ser.SpanID()}, keysAndValues...)
}

// eventAttributes is level, component, the persistent pairs of the wrapped
// logger, then the entry's own pairs.
func (sl SpanLogger) eventAttributes(level Level, keysAndValues []any) []any {
	attrs := append([]any{"level", string(level), "component", sl.lg.Name()}, sl.lg.GetAllKV()...)
	return append(attrs, keysAndValues...)
}
