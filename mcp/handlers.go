// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"sync"
	"sync/atomic"

	internaljson "github.com/go-mcp/core/internal/json"
)

// requestHandlerFunc handles one inbound call and returns its result (or an
// error, translated to a JSON-RPC error response by the dispatcher). method
// is the request's JSON-RPC method name; a handler registered for an exact
// method already knows it from its own registration and typically ignores
// the parameter, but a fallback handler needs it to tell requests apart.
type requestHandlerFunc func(ctx context.Context, method string, rawParams internaljson.RawMessage) (any, error)

// notificationHandlerFunc handles one inbound notification; it has no
// result to return.
type notificationHandlerFunc func(ctx context.Context, method string, rawParams internaljson.RawMessage)

// handlerRegistry maps method names to handlers. It is append-only while a
// session is being configured (state Created in the session state machine)
// and is frozen by a single atomic swap when the session starts
// dispatching, so the hot read path after that point needs no lock.
type handlerRegistry struct {
	mu            sync.Mutex
	building      map[string]requestHandlerFunc
	buildingNotif map[string]notificationHandlerFunc
	fallback      requestHandlerFunc
	fallbackNotif notificationHandlerFunc

	frozen atomic.Bool
	// snapshot is populated exactly once, by freeze.
	snapshot       map[string]requestHandlerFunc
	snapshotNotif  map[string]notificationHandlerFunc
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{
		building:      make(map[string]requestHandlerFunc),
		buildingNotif: make(map[string]notificationHandlerFunc),
	}
}

// addRequest registers a handler for a request method. It panics if called
// after freeze, since that would indicate a handler registered concurrently
// with the dispatcher reading the registry.
func (r *handlerRegistry) addRequest(method string, h requestHandlerFunc) {
	if r.frozen.Load() {
		panic("mcp: request handler registered after session was connected")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.building[method] = h
}

// addNotification registers a handler for a notification method.
func (r *handlerRegistry) addNotification(method string, h notificationHandlerFunc) {
	if r.frozen.Load() {
		panic("mcp: notification handler registered after session was connected")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buildingNotif[method] = h
}

// setFallback registers the handler invoked for a request method with no
// exact match.
func (r *handlerRegistry) setFallback(h requestHandlerFunc) {
	if r.frozen.Load() {
		panic("mcp: fallback handler registered after session was connected")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

func (r *handlerRegistry) setFallbackNotification(h notificationHandlerFunc) {
	if r.frozen.Load() {
		panic("mcp: fallback notification handler registered after session was connected")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbackNotif = h
}

// freeze takes an immutable snapshot of the registry and switches reads
// over to it. Called once, when the session transitions out of Created.
func (r *handlerRegistry) freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = r.building
	r.snapshotNotif = r.buildingNotif
	r.frozen.Store(true)
}

// lookup returns the handler for method: an exact match if registered,
// otherwise the fallback, otherwise ok is false and the caller responds
// with "method not found".
func (r *handlerRegistry) lookup(method string) (h requestHandlerFunc, ok bool) {
	if h, ok := r.snapshot[method]; ok {
		return h, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

func (r *handlerRegistry) lookupNotification(method string) (h notificationHandlerFunc, ok bool) {
	if h, ok := r.snapshotNotif[method]; ok {
		return h, true
	}
	if r.fallbackNotif != nil {
		return r.fallbackNotif, true
	}
	return nil, false
}
