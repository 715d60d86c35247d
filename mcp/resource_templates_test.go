// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"testing"
	"time"
)

func TestResourceTemplateMatcher(t *testing.T) {
	m, err := NewResourceTemplateMatcher([]*ResourceTemplate{
		{Name: "file", URITemplate: "file:///{path}"},
		{Name: "issue", URITemplate: "tracker://{project}/issues/{id}"},
	})
	if err != nil {
		t.Fatalf("NewResourceTemplateMatcher: %v", err)
	}

	tpl, vars, ok := m.Match("tracker://core/issues/42")
	if !ok {
		t.Fatal("expected a match for tracker URI")
	}
	if tpl.Name != "issue" {
		t.Fatalf("matched template %q, want %q", tpl.Name, "issue")
	}
	if vars["project"] != "core" || vars["id"] != "42" {
		t.Fatalf("unexpected extracted vars: %+v", vars)
	}

	if _, _, ok := m.Match("https://example.com/nope"); ok {
		t.Fatal("expected no match for an unrelated URI")
	}
}

// TestResourceTemplatesServedOverSession exercises the matcher end to end:
// a server advertises resource templates and resolves a templated
// resources/read against one of them.
func TestResourceTemplatesServedOverSession(t *testing.T) {
	templates := []*ResourceTemplate{{Name: "file", URITemplate: "file:///{path}"}}
	matcher, err := NewResourceTemplateMatcher(templates)
	if err != nil {
		t.Fatalf("NewResourceTemplateMatcher: %v", err)
	}

	server := NewServer(testImpl("templated-server"), &ServerOptions{
		ListResourceTemplatesHandler: func(ctx context.Context, req *ListResourceTemplatesRequest) (*ListResourceTemplatesResult, error) {
			return &ListResourceTemplatesResult{ResourceTemplates: templates}, nil
		},
		ReadResourceHandler: func(ctx context.Context, req *ReadResourceRequest) (*ReadResourceResult, error) {
			_, vars, ok := matcher.Match(req.Params.URI)
			if !ok {
				return nil, ErrNoProgressToken // any non-nil error exercises the failure path
			}
			return &ReadResourceResult{Contents: []*ResourceContents{{URI: req.Params.URI, Text: vars["path"]}}}, nil
		},
	})
	client := NewClient(testImpl("templated-client"), &ClientOptions{})
	cs, ss := connectPair(t, client, server)
	defer cs.Close()
	defer ss.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	list, err := cs.ListResourceTemplates(ctx, &ListResourceTemplatesParams{})
	if err != nil {
		t.Fatalf("ListResourceTemplates: %v", err)
	}
	if len(list.ResourceTemplates) != 1 || list.ResourceTemplates[0].URITemplate != "file:///{path}" {
		t.Fatalf("unexpected templates: %+v", list.ResourceTemplates)
	}

	result, err := cs.ReadResource(ctx, &ReadResourceParams{URI: "file:///etc/hosts"}, RequestOptions{})
	if err != nil {
		t.Fatalf("ReadResource: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].Text != "etc/hosts" {
		t.Fatalf("unexpected read result: %+v", result.Contents)
	}
}
