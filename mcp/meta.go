// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

// Meta holds the "_meta" field present on every MCP params and result
// object. The protocol reserves it for out-of-band metadata; the only key
// this package assigns meaning to is progressTokenKey.
type Meta map[string]any

const progressTokenKey = "progressToken"

// Params is implemented by every request/notification parameter type. The
// progress-token accessors let the session attach and read the piggyback
// token described in spec §4.8 without a type switch over every param type.
type Params interface {
	isParams()
	GetMeta() Meta
	GetProgressToken() any
	SetProgressToken(t any)
}

// Result is implemented by every request result type.
type Result interface {
	isResult()
}

// getProgressToken and setProgressToken are shared by every param type's
// GetProgressToken/SetProgressToken methods; each type passes its own Meta
// field by value (read) or address (write).
func getProgressToken(m Meta) any {
	if m == nil {
		return nil
	}
	return m[progressTokenKey]
}

func setProgressToken(m *Meta, token any) {
	if *m == nil {
		*m = Meta{}
	}
	(*m)[progressTokenKey] = token
}
