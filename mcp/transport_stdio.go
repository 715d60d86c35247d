// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// maxStdioFrame bounds a single line-delimited frame. MCP messages are
// typically small; this guards against an unbounded allocation from a
// misbehaving peer.
const maxStdioFrame = 32 * 1024 * 1024

// StdioTransport frames JSON-RPC messages as newline-delimited lines over a
// pair of byte streams, the convention used by MCP servers launched as a
// child process talking over stdin/stdout.
type StdioTransport struct {
	scanner *bufio.Scanner
	writer  io.Writer
	writeMu sync.Mutex

	readMu sync.Mutex

	closeOnce sync.Once
	closer    io.Closer
}

// NewStdioTransport builds a StdioTransport reading lines from r and
// writing lines to w. If r implements io.Closer, Close closes it; w is
// never closed by the transport.
func NewStdioTransport(r io.Reader, w io.Writer) *StdioTransport {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdioFrame)
	t := &StdioTransport{scanner: scanner, writer: w}
	if c, ok := r.(io.Closer); ok {
		t.closer = c
	}
	return t
}

func (t *StdioTransport) Read(ctx context.Context) ([]byte, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	type result struct {
		line []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		if t.scanner.Scan() {
			line := append([]byte(nil), t.scanner.Bytes()...)
			done <- result{line: line}
			return
		}
		err := t.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		done <- result{err: err}
	}()

	select {
	case r := <-done:
		return r.line, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *StdioTransport) Write(ctx context.Context, frame []byte) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if _, err := t.writer.Write(frame); err != nil {
		return err
	}
	_, err := t.writer.Write([]byte("\n"))
	return err
}

func (t *StdioTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		if t.closer != nil {
			err = t.closer.Close()
		}
	})
	return err
}
