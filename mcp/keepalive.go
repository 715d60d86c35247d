// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// StartKeepalive issues a ping on the given interval for as long as ctx is
// live and the session stays connected. Issuance is bounded by a
// token-bucket limiter sized to interval so that a misconfigured or
// rapidly-retried caller can't flood a flapping peer with concurrent
// pings while it is slow to answer. The returned channel receives the
// first ping error (including a timeout or ErrConnectionClosed) and is
// then closed; callers that don't care can ignore it.
func (s *ClientSession) StartKeepalive(ctx context.Context, interval time.Duration) <-chan error {
	errs := make(chan error, 1)
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	go func() {
		defer close(errs)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.conn.closed:
				return
			case <-ticker.C:
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				if err := s.Ping(ctx); err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
			}
		}
	}()
	return errs
}

// StartKeepalive mirrors ClientSession.StartKeepalive for a server holding
// open a long-lived connection to a client.
func (s *ServerSession) StartKeepalive(ctx context.Context, interval time.Duration) <-chan error {
	errs := make(chan error, 1)
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	go func() {
		defer close(errs)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.conn.closed:
				return
			case <-ticker.C:
				if err := limiter.Wait(ctx); err != nil {
					return
				}
				if err := s.Ping(ctx); err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
			}
		}
	}()
	return errs
}
