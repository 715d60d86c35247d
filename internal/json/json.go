// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package json provides internal JSON utilities.
//
// Marshal and Unmarshal are a seam in front of the actual encoder so that
// the wire codec (and the protocol types' custom UnmarshalJSON methods) can
// be pointed at a faster implementation without touching call sites.
package json

import (
	"encoding/json"

	segjson "github.com/segmentio/encoding/json"
)

// Unmarshal decodes data into v using the configured JSON engine.
func Unmarshal(data []byte, v any) error {
	return segjson.Unmarshal(data, v)
}

// Marshal encodes v using the configured JSON engine.
func Marshal(v any) ([]byte, error) {
	return segjson.Marshal(v)
}

// RawMessage is an alias for encoding/json.RawMessage so that callers don't
// need to import both packages to hold a delayed-decode payload.
type RawMessage = json.RawMessage
