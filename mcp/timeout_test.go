// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestTimeoutEmitsCancellation covers the seed scenario: a handler that
// sleeps past its caller's timeout observes cancellation, and the caller
// gets a RequestTimeoutError carrying at least the elapsed wait.
func TestTimeoutEmitsCancellation(t *testing.T) {
	cancelled := make(chan struct{}, 1)
	server := NewServer(testImpl("slow-server"), &ServerOptions{
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			select {
			case <-ctx.Done():
				cancelled <- struct{}{}
			case <-time.After(10 * time.Second):
			}
			return &CallToolResult{}, nil
		},
	})
	client := NewClient(testImpl("slow-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	_, err := cs.CallTool(ctx, &CallToolParams{Name: "slow"}, RequestOptions{Timeout: 200 * time.Millisecond})
	elapsed := time.Since(start)

	var rte *RequestTimeoutError
	if !errors.As(err, &rte) {
		t.Fatalf("CallTool error = %v, want *RequestTimeoutError", err)
	}
	if rte.Elapsed < 200*time.Millisecond {
		t.Fatalf("reported elapsed %v is less than the configured timeout", rte.Elapsed)
	}
	if elapsed > time.Second {
		t.Fatalf("CallTool took %v to return, want well under 1s", elapsed)
	}

	select {
	case <-cancelled:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("server handler never observed cancellation")
	}
}

// TestProgressResetsTimeout covers the seed scenario: a handler that keeps
// emitting progress stays alive past its nominal timeout as long as
// ResetTimeoutOnProgress is set, succeeding once it finally responds.
func TestProgressResetsTimeout(t *testing.T) {
	server := NewServer(testImpl("progress-server"), &ServerOptions{
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			for i := 0; i < 5; i++ {
				time.Sleep(100 * time.Millisecond)
				if err := req.Progress(ctx, "working", float64(i+1), 5); err != nil {
					return nil, err
				}
			}
			return &CallToolResult{Content: []Content{&TextContent{Text: "done"}}}, nil
		},
	})
	client := NewClient(testImpl("progress-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var progressCount int
	result, err := cs.CallTool(ctx, &CallToolParams{Name: "progress"}, RequestOptions{
		Timeout:                200 * time.Millisecond,
		ResetTimeoutOnProgress: true,
		OnProgress: func(p ProgressNotificationParams) {
			progressCount++
		},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].(*TextContent).Text != "done" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if progressCount == 0 {
		t.Fatal("expected at least one progress notification to be observed")
	}
}

// TestHardCeilingStillFires covers the seed scenario: MaxTotalTimeout caps
// the overall wait even when progress keeps resetting the rolling timeout.
func TestHardCeilingStillFires(t *testing.T) {
	server := NewServer(testImpl("ceiling-server"), &ServerOptions{
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			for i := 0; i < 5; i++ {
				time.Sleep(100 * time.Millisecond)
				_ = req.Progress(ctx, "working", float64(i+1), 5)
			}
			return &CallToolResult{}, nil
		},
	})
	client := NewClient(testImpl("ceiling-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	_, err := cs.CallTool(ctx, &CallToolParams{Name: "ceiling"}, RequestOptions{
		Timeout:                200 * time.Millisecond,
		ResetTimeoutOnProgress: true,
		MaxTotalTimeout:        300 * time.Millisecond,
	})
	elapsed := time.Since(start)

	var rte *RequestTimeoutError
	if !errors.As(err, &rte) {
		t.Fatalf("CallTool error = %v, want *RequestTimeoutError", err)
	}
	if !rte.Hard {
		t.Fatal("expected a hard-ceiling timeout")
	}
	if elapsed < 250*time.Millisecond || elapsed > 450*time.Millisecond {
		t.Fatalf("elapsed %v is not within the expected 300ms+/-50ms hard ceiling window", elapsed)
	}
}

// TestLateResponseAfterTimeoutIsDropped covers the "late response drop"
// invariant: once a call has timed out and returned to its caller, a
// response that the server eventually sends for that same request must
// not be delivered to a new, unrelated caller.
func TestLateResponseAfterTimeoutIsDropped(t *testing.T) {
	release := make(chan struct{})
	server := NewServer(testImpl("late-server"), &ServerOptions{
		CallToolHandler: func(ctx context.Context, req *CallToolRequest) (*CallToolResult, error) {
			<-release
			return &CallToolResult{Content: []Content{&TextContent{Text: "late"}}}, nil
		},
	})
	client := NewClient(testImpl("late-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cs.CallTool(ctx, &CallToolParams{Name: "late"}, RequestOptions{Timeout: 100 * time.Millisecond})
	var rte *RequestTimeoutError
	if !errors.As(err, &rte) {
		t.Fatalf("CallTool error = %v, want *RequestTimeoutError", err)
	}

	// A fresh, unrelated call must resolve to its own response, not the
	// stale one the server writes once release fires.
	pingErrCh := make(chan error, 1)
	go func() {
		pingErrCh <- cs.Ping(ctx)
	}()
	close(release)

	select {
	case err := <-pingErrCh:
		if err != nil {
			t.Fatalf("Ping after stale response: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("ping never resolved")
	}
}
