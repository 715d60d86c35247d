// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	internaljson "github.com/go-mcp/core/internal/json"
)

// TestRoundTripToolCall covers the seed end-to-end scenario: a server
// registers an "add" tool, a client lists tools then calls it, and gets
// back the sum as text content.
func TestRoundTripToolCall(t *testing.T) {
	server := NewServer(testImpl("adder-server"), &ServerOptions{
		ListToolsHandler: func(ctx context.Context, req *ListToolsRequest) (*ListToolsResult, error) {
			return &ListToolsResult{Tools: []*Tool{{Name: "add", InputSchema: map[string]any{}}}}, nil
		},
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			var args struct{ A, B float64 }
			if err := internaljson.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, err
			}
			sum := args.A + args.B
			return &CallToolResult{Content: []Content{&TextContent{Text: strconv.FormatFloat(sum, 'f', -1, 64)}}}, nil
		},
	})
	client := NewClient(testImpl("adder-client"), &ClientOptions{})

	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tools, err := cs.ListTools(ctx, &ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	wantTools := []*Tool{{Name: "add", InputSchema: map[string]any{}}}
	if diff := cmp.Diff(wantTools, tools.Tools); diff != "" {
		t.Fatalf("tool list mismatch (-want +got):\n%s", diff)
	}

	args, _ := json.Marshal(map[string]float64{"A": 1, "B": 2})
	result, err := cs.CallTool(ctx, &CallToolParams{Name: "add", Arguments: json.RawMessage(args)}, RequestOptions{})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	wantResult := &CallToolResult{Content: []Content{&TextContent{Text: "3"}}}
	if diff := cmp.Diff(wantResult, result, cmpopts.IgnoreUnexported(CallToolResult{})); diff != "" {
		t.Fatalf("tool call result mismatch (-want +got):\n%s", diff)
	}
}

// TestPingResolvesAfterInitialize covers the seed scenario: ping round
// trips within a second once both sides are initialized.
func TestPingResolvesAfterInitialize(t *testing.T) {
	server := NewServer(testImpl("ping-server"), &ServerOptions{})
	client := NewClient(testImpl("ping-client"), &ClientOptions{})

	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := cs.Ping(ctx); err != nil {
		t.Fatalf("client Ping: %v", err)
	}
	if err := ss.Ping(ctx); err != nil {
		t.Fatalf("server Ping: %v", err)
	}
}

// TestFallbackNotificationHandler covers the first half of the seed
// scenario: a client with only a fallback notification handler observes an
// unregistered notification. It does not register a specific handler
// afterwards to check that the fallback then stops firing.
func TestFallbackNotificationHandler(t *testing.T) {
	seen := make(chan string, 1)
	client := NewClient(testImpl("fallback-client"), &ClientOptions{
		FallbackNotificationHandler: func(ctx context.Context, method string, raw internaljson.RawMessage) {
			seen <- method
		},
	})
	server := NewServer(testImpl("fallback-server"), &ServerOptions{})

	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := ss.NotifyToolListChanged(ctx); err != nil {
		t.Fatalf("NotifyToolListChanged: %v", err)
	}

	select {
	case method := <-seen:
		if method != notificationToolListChanged {
			t.Fatalf("got method %q, want %q", method, notificationToolListChanged)
		}
	case <-time.After(time.Second):
		t.Fatal("fallback notification handler never fired")
	}
}
