// Package log provides the structured logger used by the RPC client and the
// command-line tool.
//
// Loggers are passed explicitly (builder option or context) rather than kept
// in package state. Every method takes a message followed by key/value pairs:
//
//	lg := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelDebug})
//	lg.Info("rpc call finished", "method", "get_balance", "duration", d)
//
// Three implementations are provided:
//
//   - ZapLogger: backed by go.uber.org/zap, with console, logfmt and json output
//   - NoopLogger: discards everything; the default when nothing is configured
//   - SpanLogger: forwards to another logger and records each entry as an
//     event on an OpenTelemetry span
//
// SetContextLogger attaches a logger to a context. When the context already
// carries a valid span, the stored logger is a SpanLogger so that RPC calls
// made under a traced request show up on that trace.
package log
