// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"fmt"
	"regexp"

	"github.com/yosida95/uritemplate/v3"
)

// ResourceTemplateMatcher matches a concrete resources/read URI against a
// set of registered RFC 6570 templates, the same templates a server
// advertises via resources/templates/list. It exists for servers that
// can't enumerate every concrete resource up front (e.g. "file:///{path}")
// but still need to validate and extract variables from an incoming
// resources/read call before serving it.
type ResourceTemplateMatcher struct {
	entries []templateEntry
}

type templateEntry struct {
	template *ResourceTemplate
	re       *regexp.Regexp
}

// NewResourceTemplateMatcher compiles every template's URITemplate field
// into a matching regular expression via uritemplate's RFC 6570 Regexp
// conversion. It returns an error naming the first template that fails to
// parse, so a misconfigured template is caught at registration time rather
// than silently never matching.
func NewResourceTemplateMatcher(templates []*ResourceTemplate) (*ResourceTemplateMatcher, error) {
	m := &ResourceTemplateMatcher{entries: make([]templateEntry, 0, len(templates))}
	for _, t := range templates {
		tpl, err := uritemplate.New(t.URITemplate)
		if err != nil {
			return nil, fmt.Errorf("mcp: compiling resource template %q: %w", t.URITemplate, err)
		}
		re, err := tpl.Regexp()
		if err != nil {
			return nil, fmt.Errorf("mcp: converting resource template %q to a matcher: %w", t.URITemplate, err)
		}
		m.entries = append(m.entries, templateEntry{template: t, re: re})
	}
	return m, nil
}

// Match finds the first registered template whose RFC 6570 pattern matches
// uri, returning the template and the extracted template variables keyed
// by name. ok is false if no template matches uri.
func (m *ResourceTemplateMatcher) Match(uri string) (tpl *ResourceTemplate, vars map[string]string, ok bool) {
	for _, e := range m.entries {
		groups := e.re.FindStringSubmatch(uri)
		if groups == nil {
			continue
		}
		names := e.re.SubexpNames()
		extracted := make(map[string]string, len(names))
		for i, name := range names {
			if i == 0 || name == "" {
				continue
			}
			extracted[name] = groups[i]
		}
		return e.template, extracted, true
	}
	return nil, nil, false
}
