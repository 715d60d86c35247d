// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"testing"
	"time"
)

// connectPair wires a Client and Server over an in-memory transport pair and
// drives both halves of the initialize handshake concurrently, since
// Client.Connect blocks on the server's InitializeResult and Server.Connect
// blocks on the client's notifications/initialized.
func connectPair(t *testing.T, client *Client, server *Server) (*ClientSession, *ServerSession) {
	t.Helper()
	clientTransport, serverTransport := NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type serverResult struct {
		sess *ServerSession
		err  error
	}
	serverDone := make(chan serverResult, 1)
	go func() {
		sess, err := server.Connect(ctx, serverTransport)
		serverDone <- serverResult{sess, err}
	}()

	clientSess, err := client.Connect(ctx, clientTransport, "")
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}

	res := <-serverDone
	if res.err != nil {
		t.Fatalf("server.Connect: %v", res.err)
	}
	return clientSess, res.sess
}

func testImpl(name string) *Implementation {
	return &Implementation{Name: name, Version: "0.0.0-test"}
}
