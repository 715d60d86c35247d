// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"sync"

	"github.com/go-mcp/core/internal/jsonrpc2"
)

// pendingTable correlates outbound requests with their eventual responses.
// An entry is inserted before the request is written to the transport, so a
// response racing the write can never arrive unclaimed.
type pendingTable struct {
	mu      sync.Mutex
	entries map[string]chan *jsonrpc2.Response
}

func newPendingTable() *pendingTable {
	return &pendingTable{entries: make(map[string]chan *jsonrpc2.Response)}
}

// register reserves a slot for id and returns the channel that will receive
// its response. The caller must register before sending the request.
func (t *pendingTable) register(id jsonrpc2.ID) chan *jsonrpc2.Response {
	ch := make(chan *jsonrpc2.Response, 1)
	t.mu.Lock()
	t.entries[id.String()] = ch
	t.mu.Unlock()
	return ch
}

// complete delivers resp to the pending call for its ID, if any is still
// waiting. It reports whether a waiter was found.
func (t *pendingTable) complete(resp *jsonrpc2.Response) bool {
	key := resp.ID.String()
	t.mu.Lock()
	ch, ok := t.entries[key]
	if ok {
		delete(t.entries, key)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	ch <- resp
	return true
}

// cancel removes id's entry without delivering a response, used when a
// caller's context is done or the request times out.
func (t *pendingTable) cancel(id jsonrpc2.ID) {
	t.mu.Lock()
	delete(t.entries, id.String())
	t.mu.Unlock()
}

// failAll delivers a synthetic internal-error response to every still
// pending call, used when the transport closes out from under them.
func (t *pendingTable) failAll(err *jsonrpc2.Error) {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[string]chan *jsonrpc2.Response)
	t.mu.Unlock()
	for _, ch := range entries {
		ch <- &jsonrpc2.Response{Err: err}
	}
}
