// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import "sync/atomic"

// sessionState is the session state machine: Created -> Connecting ->
// Initialized -> Closing -> Closed.
type sessionState int32

const (
	stateCreated sessionState = iota
	stateConnecting
	stateInitialized
	stateClosing
	stateClosed
)

// VersionMismatchError is returned by Connect when the peer's
// protocolVersion is not one this module supports.
type VersionMismatchError struct {
	Got string
}

func (e *VersionMismatchError) Error() string {
	return "mcp: unsupported protocol version " + e.Got
}

// stateBox is held by ClientSession and ServerSession (as their state
// field) to track their place in the session state machine with a single
// atomic word.
type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) load() sessionState  { return sessionState(b.v.Load()) }
func (b *stateBox) store(s sessionState) { b.v.Store(int32(s)) }

// casTo atomically transitions from `from` to `to`, reporting success.
func (b *stateBox) casTo(from, to sessionState) bool {
	return b.v.CompareAndSwap(int32(from), int32(to))
}
