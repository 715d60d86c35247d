// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"sync/atomic"

	"github.com/go-mcp/core/internal/jsonrpc2"
)

// idGenerator hands out monotonically increasing request IDs for one side
// of a session. Using a counter instead of random text keeps pending-table
// lookups and log lines small; the ID only has to be unique within the
// lifetime of the connection that issued it.
type idGenerator struct {
	next atomic.Int64
}

func (g *idGenerator) new() jsonrpc2.ID {
	return jsonrpc2.NumberID(g.next.Add(1))
}
