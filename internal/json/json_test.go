// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package json

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	type Nested struct {
		Field string `json:"field"`
	}
	type Target struct {
		Name   string `json:"name"`
		Count  int    `json:"count"`
		Nested *Nested
	}

	want := Target{Name: "widget", Count: 3, Nested: &Nested{Field: "x"}}

	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var got Target
	if err := Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	var v map[string]any
	if err := Unmarshal([]byte(`{not json`), &v); err == nil {
		t.Error("Unmarshal of malformed JSON: got nil error, want non-nil")
	}
}
