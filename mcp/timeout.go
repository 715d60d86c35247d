// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"sync"
	"time"
)

// DefaultRequestTimeout is used for a call that supplies no RequestOptions.
const DefaultRequestTimeout = 60 * time.Second

// RequestOptions customizes the Timeout & Cancellation Manager's behavior
// for a single outbound call.
type RequestOptions struct {
	// Timeout bounds how long to wait for a response. Zero means
	// DefaultRequestTimeout.
	Timeout time.Duration

	// ResetTimeoutOnProgress extends Timeout every time a progress
	// notification arrives for this request, so a slow-but-alive call
	// doesn't time out while it is still making progress.
	ResetTimeoutOnProgress bool

	// MaxTotalTimeout caps the overall wall-clock time regardless of
	// progress resets. Zero means no cap.
	MaxTotalTimeout time.Duration

	// OnProgress, if set, is invoked for every progress notification that
	// arrives referencing this call's progress token.
	OnProgress func(ProgressNotificationParams)
}

// timeoutEntry tracks one in-flight call's deadline state. softTimer fires
// the ordinary (possibly reset) deadline; hardTimer, when present, fires
// MaxTotalTimeout independently of any reset and cannot be pushed back, so
// the hard ceiling is honored regardless of how many times progress resets
// the soft deadline.
type timeoutEntry struct {
	softTimer *time.Timer
	hardTimer *time.Timer // nil when no MaxTotalTimeout was configured
	timeout   time.Duration
	onTimeout func(hard bool)
}

// timeoutManager owns the deadline state for every outbound call on a
// session: it arms a timer per request, lets progress notifications push
// the soft deadline back (never past the independently-armed MaxTotalTimeout
// ceiling), and fires onTimeout exactly once if neither a response nor a
// cancellation arrives first.
type timeoutManager struct {
	mu      sync.Mutex
	entries map[string]*timeoutEntry
}

func newTimeoutManager() *timeoutManager {
	return &timeoutManager{entries: make(map[string]*timeoutEntry)}
}

// start arms the deadline for key, calling onTimeout at most once if it
// elapses before stop is called. A MaxTotalTimeout, if set, arms a second,
// independent timer that cannot be reset: whichever of the two fires first
// wins, and the hard ceiling always fires with hard=true.
func (m *timeoutManager) start(key string, opts RequestOptions, onTimeout func(hard bool)) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	e := &timeoutEntry{timeout: timeout, onTimeout: onTimeout}
	// Hold the lock across timer creation and map insertion: fire() takes
	// the same lock before it will act on key, so even a near-zero timeout
	// firing immediately on another goroutine blocks until the entry is
	// actually in the map.
	m.mu.Lock()
	e.softTimer = time.AfterFunc(timeout, func() { m.fire(key, false) })
	if opts.MaxTotalTimeout > 0 {
		e.hardTimer = time.AfterFunc(opts.MaxTotalTimeout, func() { m.fire(key, true) })
	}
	m.entries[key] = e
	m.mu.Unlock()
}

// fire delivers onTimeout for key exactly once: the first timer (soft or
// hard) to observe the entry still present wins the race and removes it,
// so a soft fire and a concurrent hard fire can never both deliver.
func (m *timeoutManager) fire(key string, hard bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	e.softTimer.Stop()
	if e.hardTimer != nil {
		e.hardTimer.Stop()
	}
	e.onTimeout(hard)
}

// reset pushes key's soft deadline back by its configured timeout. It never
// touches the independent hard-ceiling timer, so MaxTotalTimeout still
// fires on schedule no matter how many resets arrive. The dispatcher's
// handleProgress calls it only for calls whose RequestOptions set
// ResetTimeoutOnProgress.
func (m *timeoutManager) reset(key string) bool {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	e.softTimer.Reset(e.timeout)
	return true
}

// stop disarms key's deadline, used once a response or cancellation has
// resolved the call.
func (m *timeoutManager) stop(key string) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	e.softTimer.Stop()
	if e.hardTimer != nil {
		e.hardTimer.Stop()
	}
}
