// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-mcp/core/internal/jsonrpc2"
)

// ErrConnectionClosed is returned by Session methods once the underlying
// transport has been closed, whether by the peer, a local Close call, or a
// read/write failure.
var ErrConnectionClosed = errors.New("mcp: connection closed")

// ErrRequestTimeout is the root cause wrapped into a call's returned error
// when a RequestOptions deadline elapses without a response. Use
// errors.As to recover the *RequestTimeoutError for Elapsed/Hard detail.
var ErrRequestTimeout = errors.New("mcp: request timed out")

// RequestTimeoutError is returned by a call whose deadline elapsed before a
// response arrived. Hard reports whether the elapsed time hit
// RequestOptions.MaxTotalTimeout (the deadline could not be pushed back any
// further by progress) as opposed to an ordinary, unextended timeout.
type RequestTimeoutError struct {
	Elapsed time.Duration
	Hard    bool
}

func (e *RequestTimeoutError) Error() string {
	if e.Hard {
		return fmt.Sprintf("mcp: request timed out after %s (hard ceiling)", e.Elapsed)
	}
	return fmt.Sprintf("mcp: request timed out after %s", e.Elapsed)
}

func (e *RequestTimeoutError) Unwrap() error { return ErrRequestTimeout }

// ErrRequestCancelled is the root cause wrapped into a call's returned error
// when the caller's context is cancelled before a response arrives.
var ErrRequestCancelled = errors.New("mcp: request cancelled")

// RemoteError wraps a JSON-RPC error object returned by a peer in response
// to a call.
type RemoteError struct {
	Code    int64
	Message string
	Data    []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("mcp: remote error %d: %s", e.Code, e.Message)
}

func remoteErrorFromWire(e *jsonrpc2.Error) *RemoteError {
	if e == nil {
		return nil
	}
	return &RemoteError{Code: e.Code, Message: e.Message, Data: []byte(e.Data)}
}

// IsMethodNotFound reports whether err is a RemoteError with the JSON-RPC
// "method not found" code.
func IsMethodNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Code == jsonrpc2.CodeMethodNotFound
}

// IsInvalidParams reports whether err is a RemoteError with the JSON-RPC
// "invalid params" code.
func IsInvalidParams(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Code == jsonrpc2.CodeInvalidParams
}

// ProtocolError reports a violation of the JSON-RPC or MCP envelope
// contract. The dispatcher does not return it: a malformed inbound frame is
// answered with a parse-error response (or dropped when it has no ID), and
// a response with an unknown or already-resolved ID is dropped.
type ProtocolError struct {
	msg string
}

func (e *ProtocolError) Error() string { return "mcp: protocol error: " + e.msg }

func protocolErrorf(format string, args ...any) *ProtocolError {
	return &ProtocolError{msg: fmt.Sprintf(format, args...)}
}
