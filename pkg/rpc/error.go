package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind is the broad category of an Error.
type Kind int

const (
	// KindTransport is a network failure or a non-2xx HTTP reply without a
	// JSON-RPC error body.
	KindTransport Kind = iota + 1
	// KindCanceled means the caller's context was canceled.
	KindCanceled
	// KindAuthentication means the server rejected or demanded credentials.
	KindAuthentication
	// KindProtocolDecode is a malformed envelope or result.
	KindProtocolDecode
	// KindEncode means caller supplied values could not be serialized, or
	// the result target is not a pointer.
	KindEncode
	// KindApplication is a JSON-RPC error matched by a classifier rule.
	KindApplication
	// KindRPC is a JSON-RPC error no rule matched.
	KindRPC
	// KindConfiguration is an invalid client configuration.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindCanceled:
		return "canceled"
	case KindAuthentication:
		return "authentication"
	case KindProtocolDecode:
		return "protocol_decode"
	case KindEncode:
		return "encode"
	case KindApplication:
		return "application"
	case KindRPC:
		return "rpc"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Kind sentinels. Every *Error matches the sentinel of its Kind.
var (
	ErrTransport        = errors.New("transport failure")
	ErrCanceled         = errors.New("call canceled")
	ErrAuthentication   = errors.New("authentication failed")
	ErrProtocolDecode   = errors.New("malformed response")
	ErrEncode           = errors.New("cannot encode request")
	ErrKnownApplication = errors.New("application error")
	ErrRPC              = errors.New("rpc error")
	ErrConfiguration    = errors.New("invalid configuration")
)

// Application error sentinels. An *Error of KindApplication matches exactly
// one of these as well as ErrKnownApplication.
var (
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidDestination  = errors.New("invalid destination")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrWalletNotOpen       = errors.New("no wallet open")
	ErrWalletLocked        = errors.New("wallet locked")
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidPaymentID    = errors.New("invalid payment id")
	ErrWatchOnly           = errors.New("wallet is watch-only")
	ErrDaemonBusy          = errors.New("daemon busy")
	ErrNoDaemonConnection  = errors.New("no connection to daemon")
	ErrHeightTooBig        = errors.New("height too big")
	ErrRegtestRequired     = errors.New("regtest mode required")
	ErrMethodNotFound      = errors.New("method not found")
	ErrInvalidParams       = errors.New("invalid params")
	ErrStatusNotOK         = errors.New("status not OK")
)

// Error is the error type returned by every operation of this package and the
// facades built on it. It is immutable once returned.
type Error struct {
	// Kind is the broad category.
	Kind Kind
	// Code is the JSON-RPC error code, zero when the failure has none.
	Code int
	// Message is the server's error message or a description of the failure.
	Message string
	// Data is the raw "data" member of a JSON-RPC error object, if any.
	Data json.RawMessage
	// Status is the HTTP status for transport and authentication failures.
	Status int

	sentinel error
	cause    error
	timeout  bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindApplication, KindRPC:
		return fmt.Sprintf("%s: %s (code %d)", e.sentinel, e.Message, e.Code)
	}

	var sb strings.Builder
	sb.WriteString(e.sentinel.Error())
	if e.Status != 0 {
		fmt.Fprintf(&sb, ": http status %d", e.Status)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the sentinels and the underlying cause to errors.Is and
// errors.As.
func (e *Error) Unwrap() []error {
	errs := []error{e.sentinel}
	if e.Kind == KindApplication && e.sentinel != ErrKnownApplication {
		errs = append(errs, ErrKnownApplication)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Timeout reports whether a transport failure was caused by a deadline.
func (e *Error) Timeout() bool {
	return e.timeout
}

// Sentinel returns the most specific sentinel the error matches.
func (e *Error) Sentinel() error {
	return e.sentinel
}

func kindSentinel(k Kind) error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindCanceled:
		return ErrCanceled
	case KindAuthentication:
		return ErrAuthentication
	case KindProtocolDecode:
		return ErrProtocolDecode
	case KindEncode:
		return ErrEncode
	case KindApplication:
		return ErrKnownApplication
	case KindRPC:
		return ErrRPC
	default:
		return ErrConfiguration
	}
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, sentinel: kindSentinel(kind), cause: cause}
}

// NewConfigurationError reports an invalid client configuration.
func NewConfigurationError(msg string, cause error) *Error {
	return newError(KindConfiguration, msg, cause)
}

// NewProtocolDecodeError reports a reply that does not have the expected shape.
func NewProtocolDecodeError(msg string, cause error) *Error {
	return newError(KindProtocolDecode, msg, cause)
}

// NewTransportError reports a non-2xx HTTP reply without a JSON-RPC error body.
func NewTransportError(status int, msg string) *Error {
	e := newError(KindTransport, msg, nil)
	e.Status = status
	return e
}

// NewApplicationError builds a KindApplication error matching sentinel.
func NewApplicationError(sentinel error, code int, msg string, data json.RawMessage) *Error {
	return &Error{Kind: KindApplication, Code: code, Message: msg, Data: data, sentinel: sentinel}
}

// AsError returns err as an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		return rpcErr, true
	}
	return nil, false
}
