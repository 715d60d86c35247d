// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"
)

// TestConcurrentCallsAllResolve covers two invariants together: outbound
// request IDs are unique even under concurrent issuance, and every
// response is delivered to the caller that issued the matching request
// (none are lost or cross-delivered), by round-tripping many distinct tool
// calls at once and checking each sees its own echoed name back.
func TestConcurrentCallsAllResolve(t *testing.T) {
	server := NewServer(testImpl("echo-server"), &ServerOptions{
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			return &CallToolResult{Content: []Content{&TextContent{Text: req.Params.Name}}}, nil
		},
	})
	client := NewClient(testImpl("echo-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			name := toolName(i)
			result, err := cs.CallTool(ctx, &CallToolParams{Name: name}, RequestOptions{})
			if err != nil {
				errs <- err
				return
			}
			got := result.Content[0].(*TextContent).Text
			if got != name {
				errs <- fmt.Errorf("echoed tool name mismatch: want %s, got %s", name, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func toolName(i int) string {
	return "tool-" + strconv.Itoa(i)
}

// TestHandlerCanCallBackWithoutDeadlock covers the invariant that a handler
// invoked off the reader goroutine can itself issue a new outbound call on
// the same session without deadlocking against its own dispatch.
func TestHandlerCanCallBackWithoutDeadlock(t *testing.T) {
	server := NewServer(testImpl("callback-server"), &ServerOptions{
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			if err := req.Session.Ping(ctx); err != nil {
				return nil, err
			}
			return &CallToolResult{}, nil
		},
	})
	client := NewClient(testImpl("callback-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := cs.CallTool(ctx, &CallToolParams{Name: "callback"}, RequestOptions{}); err != nil {
		t.Fatalf("CallTool: %v", err)
	}
}
