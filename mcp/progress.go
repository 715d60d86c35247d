// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"errors"
)

var ErrNoProgressToken = errors.New("mcp: no progress token")

// Progress reports progress on the request currently being handled by a
// server-side handler. An error is returned if sending progress failed; if
// the caller never attached a progress token the error is ErrNoProgressToken.
func (r *ServerRequest[P]) Progress(ctx context.Context, msg string, progress, total float64) error {
	token := r.Params.GetProgressToken()
	if token == nil {
		return ErrNoProgressToken
	}
	return r.Session.notifyProgress(ctx, token, msg, progress, total)
}

// Progress reports progress on the request currently being handled by a
// client-side handler (e.g. a long-running sampling/createMessage call).
func (r *ClientRequest[P]) Progress(ctx context.Context, msg string, progress, total float64) error {
	token := r.Params.GetProgressToken()
	if token == nil {
		return ErrNoProgressToken
	}
	return r.Session.notifyProgress(ctx, token, msg, progress, total)
}
