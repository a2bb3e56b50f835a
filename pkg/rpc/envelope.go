package rpc

import (
	"encoding/json"
	"fmt"
	"reflect"
)

const (
	// Version is the JSON-RPC protocol version sent in every request.
	Version = "2.0"
	// requestID is constant because every call uses its own HTTP exchange.
	requestID = "0"
)

// Request is the JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// ErrorObject is the "error" member of a JSON-RPC response.
type ErrorObject struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// EncodeRequest builds the request body for method. A nil params omits the
// "params" member. Fields of params tagged omitempty are left out when empty,
// never sent as null.
func EncodeRequest(method string, params any) ([]byte, error) {
	if isNilValue(params) {
		params = nil
	}

	body, err := json.Marshal(Request{JSONRPC: Version, ID: requestID, Method: method, Params: params})
	if err != nil {
		return nil, newError(KindEncode, fmt.Sprintf("params of %q", method), err)
	}
	return body, nil
}

// DecodeResponse parses a JSON-RPC response envelope. Exactly one of
// "result" and "error" must be present; a member holding null counts as
// absent. An error member is classified with classifier and returned without
// touching result. Otherwise the required fields of result's type are checked
// and the payload is unmarshaled into result, which must be a pointer or nil.
func DecodeResponse(status int, body []byte, result any, classifier *Classifier) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return NewProtocolDecodeError("response is not a JSON object", err)
	}

	rawResult, hasResult := envelope["result"]
	rawError, hasError := envelope["error"]
	hasResult = hasResult && !isNull(rawResult)
	hasError = hasError && !isNull(rawError)

	switch {
	case hasResult && hasError:
		return NewProtocolDecodeError("response carries both result and error", nil)
	case !hasResult && !hasError:
		return NewProtocolDecodeError("response carries neither result nor error", nil)
	case hasError:
		var obj ErrorObject
		if err := json.Unmarshal(rawError, &obj); err != nil {
			return NewProtocolDecodeError("malformed error object", err)
		}
		return classifier.Classify(status, &obj.Code, obj.Message, obj.Data)
	}

	return decodeInto(rawResult, result)
}

// DecodeBare decodes a body that is the result object itself, as returned by
// the daemon's non-JSON-RPC endpoints.
func DecodeBare(body []byte, result any) error {
	if isNull(body) {
		return NewProtocolDecodeError("empty response body", nil)
	}
	return decodeInto(body, result)
}

func decodeInto(raw json.RawMessage, result any) error {
	if result == nil {
		return nil
	}

	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return newError(KindEncode, fmt.Sprintf("result must be a non-nil pointer, got %T", result), nil)
	}
	if err := checkRequired(raw, rv.Type().Elem()); err != nil {
		return err
	}

	// Decode into a fresh value so a failure leaves result untouched.
	fresh := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		return NewProtocolDecodeError("cannot decode result", err)
	}
	rv.Elem().Set(fresh.Elem())
	return nil
}

// isNilValue reports whether v is nil or a nil pointer, map or slice.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
