package rpc

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Rule maps a JSON-RPC error onto an application sentinel.
//
// A rule with HasCode set matches only errors carrying Code. A rule with a
// non-empty Message matches only errors whose message contains it, compared
// case-insensitively. A rule with both set needs both to match.
type Rule struct {
	Code     int
	HasCode  bool
	Message  string
	Sentinel error
}

// CodeRule matches every error with the given code.
func CodeRule(code int, sentinel error) Rule {
	return Rule{Code: code, HasCode: true, Sentinel: sentinel}
}

// CodeMessageRule matches errors with the given code whose message contains substr.
func CodeMessageRule(code int, substr string, sentinel error) Rule {
	return Rule{Code: code, HasCode: true, Message: substr, Sentinel: sentinel}
}

// MessageRule matches errors of any code whose message contains substr.
func MessageRule(substr string, sentinel error) Rule {
	return Rule{Message: substr, Sentinel: sentinel}
}

// StandardRules covers the JSON-RPC 2.0 reserved codes that carry a meaning
// callers branch on.
var StandardRules = []Rule{
	CodeRule(-32601, ErrMethodNotFound),
	CodeRule(-32602, ErrInvalidParams),
}

// Classifier turns HTTP statuses and JSON-RPC error objects into *Error
// values. Rules are evaluated in three passes:
//
//  1. rules keyed on the error code that also carry a message substring;
//  2. rules keyed on the error code alone;
//  3. message-only rules.
//
// Within a pass rules are tried in table order. Errors no rule matches become
// KindRPC errors carrying the raw code and message.
//
// A Classifier is immutable and safe for concurrent use.
type Classifier struct {
	codeMessage []Rule
	code        []Rule
	message     []Rule
}

// NewClassifier builds a classifier from a facade rule table. StandardRules
// are appended after the facade rules.
func NewClassifier(rules ...Rule) *Classifier {
	c := &Classifier{}
	for _, r := range append(append([]Rule{}, rules...), StandardRules...) {
		r.Message = strings.ToLower(r.Message)
		switch {
		case r.HasCode && r.Message != "":
			c.codeMessage = append(c.codeMessage, r)
		case r.HasCode:
			c.code = append(c.code, r)
		case r.Message != "":
			c.message = append(c.message, r)
		}
	}
	return c
}

// Classify maps one failed exchange onto an *Error. code is nil when the reply
// carried no JSON-RPC error object. It never returns nil.
func (c *Classifier) Classify(status int, code *int, message string, data json.RawMessage) *Error {
	if code == nil {
		switch {
		case status == http.StatusUnauthorized:
			e := newError(KindAuthentication, message, nil)
			e.Status = status
			return e
		case status < 200 || status > 299:
			return NewTransportError(status, message)
		}
		return c.classifyMessage(0, message, data)
	}

	lower := strings.ToLower(message)
	for _, r := range c.codeMessage {
		if r.Code == *code && strings.Contains(lower, r.Message) {
			return NewApplicationError(r.Sentinel, *code, message, data)
		}
	}
	for _, r := range c.code {
		if r.Code == *code {
			return NewApplicationError(r.Sentinel, *code, message, data)
		}
	}
	return c.classifyMessage(*code, message, data)
}

// ClassifyStatus maps a non-OK "status" field of a daemon reply. Message
// rules are consulted first; anything else matches ErrStatusNotOK.
func (c *Classifier) ClassifyStatus(status string) *Error {
	err := c.classifyMessage(0, status, nil)
	if err.Kind == KindApplication {
		return err
	}
	return NewApplicationError(ErrStatusNotOK, 0, status, nil)
}

func (c *Classifier) classifyMessage(code int, message string, data json.RawMessage) *Error {
	lower := strings.ToLower(message)
	for _, r := range c.message {
		if strings.Contains(lower, r.Message) {
			return NewApplicationError(r.Sentinel, code, message, data)
		}
	}
	return &Error{Kind: KindRPC, Code: code, Message: message, Data: data, sentinel: ErrRPC}
}
