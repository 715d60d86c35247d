// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jsonrpc2 implements the wire codec for JSON-RPC 2.0: encoding and
// decoding of the three frame shapes (request, response, notification) used
// by the Model Context Protocol, plus the strict-decoding pass that guards
// against case-variant field smuggling.
package jsonrpc2

import (
	"errors"
	"fmt"
	"strconv"

	internaljson "github.com/go-mcp/core/internal/json"
)

const Version = "2.0"

// ID is a JSON-RPC request identifier. The wire value may be a JSON number
// or a JSON string; the peer must see back whichever form was sent. The
// zero ID is invalid and is never assigned by a generator.
type ID struct {
	str      string
	num      int64
	isString bool
	valid    bool
}

// StringID returns an ID backed by a string value.
func StringID(s string) ID { return ID{str: s, isString: true, valid: true} }

// NumberID returns an ID backed by an integer value.
func NumberID(n int64) ID { return ID{num: n, valid: true} }

// IsValid reports whether the ID was ever assigned a value.
func (id ID) IsValid() bool { return id.valid }

// Value returns the ID's underlying wire value, a string or an int64,
// suitable for embedding in an any-typed field such as
// notifications/cancelled's requestId so the peer sees back the same JSON
// type it originally sent.
func (id ID) Value() any {
	if id.isString {
		return id.str
	}
	return id.num
}

// String renders the ID for logging and map keys.
func (id ID) String() string {
	if !id.valid {
		return "<invalid>"
	}
	if id.isString {
		return strconv.Quote(id.str)
	}
	return strconv.FormatInt(id.num, 10)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return nil, errors.New("jsonrpc2: marshal of invalid ID")
	}
	if id.isString {
		return internaljson.Marshal(id.str)
	}
	return internaljson.Marshal(id.num)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var asNum int64
	if err := internaljson.Unmarshal(data, &asNum); err == nil {
		*id = ID{num: asNum, valid: true}
		return nil
	}
	var asStr string
	if err := internaljson.Unmarshal(data, &asStr); err == nil {
		*id = ID{str: asStr, isString: true, valid: true}
		return nil
	}
	return fmt.Errorf("jsonrpc2: invalid id %s", data)
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int64             `json:"code"`
	Message string            `json:"message"`
	Data    internaljson.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc2: code %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is an outbound or inbound call awaiting a response.
type Request struct {
	ID     ID
	Method string
	Params internaljson.RawMessage
}

// Response answers a Request with the same ID.
type Response struct {
	ID     ID
	Result internaljson.RawMessage
	Err    *Error
}

// Notification carries no ID and expects no response.
type Notification struct {
	Method string
	Params internaljson.RawMessage
}

// wireFrame is the superset shape used to classify an incoming frame before
// it is known to be a request, response, or notification.
type wireFrame struct {
	JSONRPC string                  `json:"jsonrpc"`
	ID      *ID                     `json:"id,omitempty"`
	Method  string                  `json:"method,omitempty"`
	Params  internaljson.RawMessage `json:"params,omitempty"`
	Result  internaljson.RawMessage `json:"result,omitempty"`
	Error   *Error                  `json:"error,omitempty"`
}

// ParseError is returned by Decode for a frame that could not be
// classified or that fails the JSON-RPC 2.0 envelope contract.
type ParseError struct {
	Err error
	// ID is set if the malformed frame nonetheless carried a usable ID, so
	// that the caller can send back an error response.
	ID    ID
	HasID bool
}

func (e *ParseError) Error() string { return fmt.Sprintf("jsonrpc2: parse error: %v", e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// Decode classifies data as a Request, Response, or Notification.
//
// Decoding tolerates field order (it is a JSON object, order is never
// significant) and rejects any frame missing "jsonrpc":"2.0". A frame with
// both "method" and "id" is a Request; "id" with no "method" is a Response;
// "method" with no "id" is a Notification.
func Decode(data []byte) (any, error) {
	var raw wireFrame
	if err := internaljson.Unmarshal(data, &raw); err != nil {
		pe := &ParseError{Err: err}
		// Best-effort ID recovery so a malformed-but-identifiable frame can
		// still receive an error response rather than being silently dropped.
		var idOnly struct {
			ID *ID `json:"id"`
		}
		if err2 := internaljson.Unmarshal(data, &idOnly); err2 == nil && idOnly.ID != nil {
			pe.ID = *idOnly.ID
			pe.HasID = true
		}
		return nil, pe
	}
	if raw.JSONRPC != Version {
		pe := &ParseError{Err: fmt.Errorf(`missing or invalid "jsonrpc" field: %q`, raw.JSONRPC)}
		if raw.ID != nil {
			pe.ID = *raw.ID
			pe.HasID = true
		}
		return nil, pe
	}
	switch {
	case raw.ID != nil && raw.Method != "":
		return &Request{ID: *raw.ID, Method: raw.Method, Params: raw.Params}, nil
	case raw.ID != nil:
		return &Response{ID: *raw.ID, Result: raw.Result, Err: raw.Error}, nil
	case raw.Method != "":
		return &Notification{Method: raw.Method, Params: raw.Params}, nil
	default:
		return nil, &ParseError{Err: errors.New("frame has neither method nor id")}
	}
}

// EncodeRequest marshals r as a wire frame.
func EncodeRequest(r *Request) ([]byte, error) {
	return internaljson.Marshal(&wireFrame{JSONRPC: Version, ID: &r.ID, Method: r.Method, Params: r.Params})
}

// EncodeResponse marshals r as a wire frame.
func EncodeResponse(r *Response) ([]byte, error) {
	return internaljson.Marshal(&wireFrame{JSONRPC: Version, ID: &r.ID, Result: r.Result, Error: r.Err})
}

// EncodeNotification marshals n as a wire frame.
func EncodeNotification(n *Notification) ([]byte, error) {
	return internaljson.Marshal(&wireFrame{JSONRPC: Version, Method: n.Method, Params: n.Params})
}

// NewError builds an *Error for the given code, formatting message like fmt.Sprintf.
func NewError(code int64, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
