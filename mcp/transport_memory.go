// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"io"
	"sync"
)

// inMemoryTransport is one end of a pair of connected, in-process
// transports. Frames written to one end appear, in order, on the other.
type inMemoryTransport struct {
	out chan<- []byte
	in  <-chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

// NewInMemoryTransports returns two linked Transports, each delivering to
// the other everything written to it. They are useful for testing a client
// and server in the same process without going through a real pipe.
func NewInMemoryTransports() (client, server Transport) {
	c2s := make(chan []byte, 64)
	s2c := make(chan []byte, 64)
	closed := make(chan struct{})
	t1 := &inMemoryTransport{out: c2s, in: s2c, closed: closed}
	t2 := &inMemoryTransport{out: s2c, in: c2s, closed: closed}
	return t1, t2
}

func (t *inMemoryTransport) Read(ctx context.Context) ([]byte, error) {
	select {
	case frame, ok := <-t.in:
		if !ok {
			return nil, io.EOF
		}
		return frame, nil
	case <-t.closed:
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *inMemoryTransport) Write(ctx context.Context, frame []byte) error {
	cp := append([]byte(nil), frame...)
	select {
	case t.out <- cp:
		return nil
	case <-t.closed:
		return ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *inMemoryTransport) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}
