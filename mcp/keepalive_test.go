// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"testing"
	"time"
)

func TestClientKeepaliveStopsOnClose(t *testing.T) {
	server := NewServer(testImpl("keepalive-server"), &ServerOptions{})
	client := NewClient(testImpl("keepalive-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	errs := cs.StartKeepalive(ctx, 20*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	cs.Close()

	select {
	case err, ok := <-errs:
		if ok && err == nil {
			t.Fatal("expected a non-nil error or a closed channel after session close")
		}
	case <-time.After(time.Second):
		t.Fatal("keepalive loop never observed the session closing")
	}
}
