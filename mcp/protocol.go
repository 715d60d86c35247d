// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

// Protocol types for the Model Context Protocol, version 2025-11-25.

import (
	"fmt"
	"maps"

	internaljson "github.com/go-mcp/core/internal/json"
)

// Annotations give clients a hint about how to use or display an object.
type Annotations struct {
	Audience     []Role  `json:"audience,omitempty"`
	LastModified string  `json:"lastModified,omitempty"`
	Priority     float64 `json:"priority,omitempty"`
}

// CallToolParams is used by clients to call a tool.
type CallToolParams struct {
	Meta      `json:"_meta,omitempty"`
	Name      string `json:"name"`
	Arguments any    `json:"arguments,omitempty"`
}

func (x *CallToolParams) isParams()              {}
func (x *CallToolParams) GetMeta() Meta          { return x.Meta }
func (x *CallToolParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *CallToolParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// CallToolParamsRaw is handed to tool handlers on the server; Arguments is
// left undecoded so the handler can unmarshal it itself.
type CallToolParamsRaw struct {
	Meta      `json:"_meta,omitempty"`
	Name      string                  `json:"name"`
	Arguments internaljson.RawMessage `json:"arguments,omitempty"`
}

func (x *CallToolParamsRaw) isParams()              {}
func (x *CallToolParamsRaw) GetMeta() Meta          { return x.Meta }
func (x *CallToolParamsRaw) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *CallToolParamsRaw) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// CallToolResult is the server's response to a tools/call request.
type CallToolResult struct {
	Meta              `json:"_meta,omitempty"`
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError,omitempty"`

	// err is the error passed to SetError, visible only on the server via GetError.
	err error
}

// SetError records err, marking the result as an error and rendering err's
// message as the result's sole text content.
func (r *CallToolResult) SetError(err error) {
	r.Content = []Content{&TextContent{Text: err.Error()}}
	r.IsError = true
	r.err = err
}

// GetError returns the error passed to SetError, or nil. Always nil on the client.
func (r *CallToolResult) GetError() error { return r.err }

func (*CallToolResult) isResult() {}

func (x *CallToolResult) UnmarshalJSON(data []byte) error {
	type res CallToolResult
	var wire struct {
		res
		Content []*wireContent `json:"content"`
	}
	if err := internaljson.Unmarshal(data, &wire); err != nil {
		return err
	}
	var err error
	if wire.res.Content, err = contentsFromWire(wire.Content, nil); err != nil {
		return err
	}
	*x = CallToolResult(wire.res)
	return nil
}

// CancelledParams is the payload of notifications/cancelled.
type CancelledParams struct {
	Meta      `json:"_meta,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID any    `json:"requestId"`
}

func (x *CancelledParams) isParams()              {}
func (x *CancelledParams) GetMeta() Meta          { return x.Meta }
func (x *CancelledParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *CancelledParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// RootCapabilities describes a client's support for roots.
type RootCapabilities struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// SamplingCapabilities marks client support for sampling/createMessage.
type SamplingCapabilities struct{}

// ElicitationCapabilities marks client support for elicitation/create.
type ElicitationCapabilities struct{}

// TaskCapabilities marks client support for long-running task tracking.
// No task methods are implemented; this only exists so a client or server
// can advertise the capability bit during negotiation.
type TaskCapabilities struct{}

// ClientCapabilities describes what a client supports. It is not a closed
// set: hosts may advertise arbitrary capabilities under Experimental.
type ClientCapabilities struct {
	Experimental map[string]any           `json:"experimental,omitempty"`
	Roots        *RootCapabilities        `json:"roots,omitempty"`
	Sampling     *SamplingCapabilities    `json:"sampling,omitempty"`
	Elicitation  *ElicitationCapabilities `json:"elicitation,omitempty"`
	Tasks        *TaskCapabilities        `json:"tasks,omitempty"`
}

func (c *ClientCapabilities) clone() *ClientCapabilities {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Experimental = maps.Clone(c.Experimental)
	cp.Roots = shallowClone(c.Roots)
	cp.Sampling = shallowClone(c.Sampling)
	cp.Elicitation = shallowClone(c.Elicitation)
	cp.Tasks = shallowClone(c.Tasks)
	return &cp
}

func shallowClone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CompleteParamsArgument names the argument a completion request is for.
type CompleteParamsArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CompleteContext carries previously-resolved template/prompt variables.
type CompleteContext struct {
	Arguments map[string]string `json:"arguments,omitempty"`
}

// CompleteReference identifies what is being completed: a prompt or a resource.
type CompleteReference struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	URI  string `json:"uri,omitempty"`
}

func (r *CompleteReference) UnmarshalJSON(data []byte) error {
	type wireRef CompleteReference
	var r2 wireRef
	if err := internaljson.Unmarshal(data, &r2); err != nil {
		return err
	}
	switch r2.Type {
	case "ref/prompt", "ref/resource":
	default:
		return fmt.Errorf("unrecognized reference type %q", r2.Type)
	}
	*r = CompleteReference(r2)
	return nil
}

// CompleteParams requests a completion for a prompt or resource-template argument.
type CompleteParams struct {
	Meta     `json:"_meta,omitempty"`
	Argument CompleteParamsArgument `json:"argument"`
	Context  *CompleteContext       `json:"context,omitempty"`
	Ref      *CompleteReference     `json:"ref"`
}

func (x *CompleteParams) isParams()              {}
func (x *CompleteParams) GetMeta() Meta          { return x.Meta }
func (x *CompleteParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *CompleteParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type CompletionResultDetails struct {
	HasMore bool     `json:"hasMore,omitempty"`
	Total   int      `json:"total,omitempty"`
	Values  []string `json:"values"`
}

type CompleteResult struct {
	Meta       `json:"_meta,omitempty"`
	Completion CompletionResultDetails `json:"completion"`
}

func (*CompleteResult) isResult() {}

// ModelHint is a substring hint for sampling model selection.
type ModelHint struct {
	Name string `json:"name,omitempty"`
}

// ModelPreferences expresses a server's advisory priorities for sampling.
type ModelPreferences struct {
	CostPriority         float64      `json:"costPriority,omitempty"`
	Hints                []*ModelHint `json:"hints,omitempty"`
	IntelligencePriority float64      `json:"intelligencePriority,omitempty"`
	SpeedPriority        float64      `json:"speedPriority,omitempty"`
}

// CreateMessageParams requests that the client sample from an LLM.
type CreateMessageParams struct {
	Meta             `json:"_meta,omitempty"`
	IncludeContext   string             `json:"includeContext,omitempty"`
	MaxTokens        int64              `json:"maxTokens"`
	Messages         []*SamplingMessage `json:"messages"`
	Metadata         any                `json:"metadata,omitempty"`
	ModelPreferences *ModelPreferences  `json:"modelPreferences,omitempty"`
	StopSequences    []string           `json:"stopSequences,omitempty"`
	SystemPrompt     string             `json:"systemPrompt,omitempty"`
	Temperature      float64            `json:"temperature,omitempty"`
}

func (x *CreateMessageParams) isParams()              {}
func (x *CreateMessageParams) GetMeta() Meta          { return x.Meta }
func (x *CreateMessageParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *CreateMessageParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// SamplingMessage is one turn in a sampling/createMessage conversation.
type SamplingMessage struct {
	Content Content `json:"content"`
	Role    Role    `json:"role"`
}

func (m *SamplingMessage) UnmarshalJSON(data []byte) error {
	type msg SamplingMessage
	var wire struct {
		msg
		Content *wireContent `json:"content"`
	}
	if err := internaljson.Unmarshal(data, &wire); err != nil {
		return err
	}
	var err error
	if wire.msg.Content, err = contentFromWire(wire.Content, map[string]bool{"text": true, "image": true}); err != nil {
		return err
	}
	*m = SamplingMessage(wire.msg)
	return nil
}

// CreateMessageResult is the client's reply to sampling/createMessage.
type CreateMessageResult struct {
	Meta       `json:"_meta,omitempty"`
	Content    Content `json:"content"`
	Model      string  `json:"model"`
	Role       Role    `json:"role"`
	StopReason string  `json:"stopReason,omitempty"`
}

func (*CreateMessageResult) isResult() {}

func (r *CreateMessageResult) UnmarshalJSON(data []byte) error {
	type result CreateMessageResult
	var wire struct {
		result
		Content *wireContent `json:"content"`
	}
	if err := internaljson.Unmarshal(data, &wire); err != nil {
		return err
	}
	var err error
	if wire.result.Content, err = contentFromWire(wire.Content, map[string]bool{"text": true, "image": true}); err != nil {
		return err
	}
	*r = CreateMessageResult(wire.result)
	return nil
}

// GetPromptParams requests a rendered prompt.
type GetPromptParams struct {
	Meta      `json:"_meta,omitempty"`
	Arguments map[string]string `json:"arguments,omitempty"`
	Name      string            `json:"name"`
}

func (x *GetPromptParams) isParams()              {}
func (x *GetPromptParams) GetMeta() Meta          { return x.Meta }
func (x *GetPromptParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *GetPromptParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type GetPromptResult struct {
	Meta        `json:"_meta,omitempty"`
	Description string           `json:"description,omitempty"`
	Messages    []*PromptMessage `json:"messages"`
}

func (*GetPromptResult) isResult() {}

// InitializeParams is sent by the client to start a session.
type InitializeParams struct {
	Meta            `json:"_meta,omitempty"`
	Capabilities    *ClientCapabilities `json:"capabilities"`
	ClientInfo      *Implementation     `json:"clientInfo"`
	ProtocolVersion string              `json:"protocolVersion"`
}

func (x *InitializeParams) isParams()              {}
func (x *InitializeParams) GetMeta() Meta          { return x.Meta }
func (x *InitializeParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *InitializeParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// InitializeResult answers an InitializeParams request.
type InitializeResult struct {
	Meta            `json:"_meta,omitempty"`
	Capabilities    *ServerCapabilities `json:"capabilities"`
	Instructions    string              `json:"instructions,omitempty"`
	ProtocolVersion string              `json:"protocolVersion"`
	ServerInfo      *Implementation     `json:"serverInfo"`
}

func (*InitializeResult) isResult() {}

type InitializedParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *InitializedParams) isParams()              {}
func (x *InitializedParams) GetMeta() Meta          { return x.Meta }
func (x *InitializedParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *InitializedParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ListPromptsParams struct {
	Meta   `json:"_meta,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

func (x *ListPromptsParams) isParams()              {}
func (x *ListPromptsParams) GetMeta() Meta          { return x.Meta }
func (x *ListPromptsParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ListPromptsParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ListPromptsResult struct {
	Meta       `json:"_meta,omitempty"`
	NextCursor string    `json:"nextCursor,omitempty"`
	Prompts    []*Prompt `json:"prompts"`
}

func (*ListPromptsResult) isResult() {}

type ListResourceTemplatesParams struct {
	Meta   `json:"_meta,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

func (x *ListResourceTemplatesParams) isParams()              {}
func (x *ListResourceTemplatesParams) GetMeta() Meta          { return x.Meta }
func (x *ListResourceTemplatesParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ListResourceTemplatesParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ListResourceTemplatesResult struct {
	Meta              `json:"_meta,omitempty"`
	NextCursor        string              `json:"nextCursor,omitempty"`
	ResourceTemplates []*ResourceTemplate `json:"resourceTemplates"`
}

func (*ListResourceTemplatesResult) isResult() {}

type ListResourcesParams struct {
	Meta   `json:"_meta,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

func (x *ListResourcesParams) isParams()              {}
func (x *ListResourcesParams) GetMeta() Meta          { return x.Meta }
func (x *ListResourcesParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ListResourcesParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ListResourcesResult struct {
	Meta       `json:"_meta,omitempty"`
	NextCursor string      `json:"nextCursor,omitempty"`
	Resources  []*Resource `json:"resources"`
}

func (*ListResourcesResult) isResult() {}

type ListRootsParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *ListRootsParams) isParams()              {}
func (x *ListRootsParams) GetMeta() Meta          { return x.Meta }
func (x *ListRootsParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ListRootsParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ListRootsResult struct {
	Meta  `json:"_meta,omitempty"`
	Roots []*Root `json:"roots"`
}

func (*ListRootsResult) isResult() {}

type ListToolsParams struct {
	Meta   `json:"_meta,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

func (x *ListToolsParams) isParams()              {}
func (x *ListToolsParams) GetMeta() Meta          { return x.Meta }
func (x *ListToolsParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ListToolsParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ListToolsResult struct {
	Meta       `json:"_meta,omitempty"`
	NextCursor string  `json:"nextCursor,omitempty"`
	Tools      []*Tool `json:"tools"`
}

func (*ListToolsResult) isResult() {}

// LoggingLevel mirrors RFC-5424 syslog severities.
type LoggingLevel string

const (
	LoggingLevelDebug     LoggingLevel = "debug"
	LoggingLevelInfo      LoggingLevel = "info"
	LoggingLevelNotice    LoggingLevel = "notice"
	LoggingLevelWarning   LoggingLevel = "warning"
	LoggingLevelError     LoggingLevel = "error"
	LoggingLevelCritical  LoggingLevel = "critical"
	LoggingLevelAlert     LoggingLevel = "alert"
	LoggingLevelEmergency LoggingLevel = "emergency"
)

type LoggingMessageParams struct {
	Meta   `json:"_meta,omitempty"`
	Data   any          `json:"data"`
	Level  LoggingLevel `json:"level"`
	Logger string       `json:"logger,omitempty"`
}

func (x *LoggingMessageParams) isParams()              {}
func (x *LoggingMessageParams) GetMeta() Meta          { return x.Meta }
func (x *LoggingMessageParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *LoggingMessageParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type PingParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *PingParams) isParams()              {}
func (x *PingParams) GetMeta() Meta          { return x.Meta }
func (x *PingParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *PingParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type PingResult struct {
	Meta `json:"_meta,omitempty"`
}

func (*PingResult) isResult() {}

// EmptyResult is returned by operations that acknowledge a request without
// carrying any data of their own, such as resources/subscribe,
// resources/unsubscribe, and logging/setLevel.
type EmptyResult struct {
	Meta `json:"_meta,omitempty"`
}

func (*EmptyResult) isResult() {}

// ProgressNotificationParams is the payload of notifications/progress.
type ProgressNotificationParams struct {
	Meta          `json:"_meta,omitempty"`
	ProgressToken any     `json:"progressToken"`
	Message       string  `json:"message,omitempty"`
	Progress      float64 `json:"progress"`
	Total         float64 `json:"total,omitempty"`
}

func (x *ProgressNotificationParams) isParams()              {}
func (x *ProgressNotificationParams) GetMeta() Meta          { return x.Meta }
func (x *ProgressNotificationParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ProgressNotificationParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// IconTheme specifies the background an icon is designed for.
type IconTheme string

const (
	IconThemeLight IconTheme = "light"
	IconThemeDark  IconTheme = "dark"
)

// Icon provides a visual identifier for a resource, tool, prompt, or implementation.
type Icon struct {
	Source   string    `json:"src"`
	MIMEType string    `json:"mimeType,omitempty"`
	Sizes    []string  `json:"sizes,omitempty"`
	Theme    IconTheme `json:"theme,omitempty"`
}

// Prompt is a prompt or prompt template offered by a server.
type Prompt struct {
	Meta        `json:"_meta,omitempty"`
	Arguments   []*PromptArgument `json:"arguments,omitempty"`
	Description string            `json:"description,omitempty"`
	Name        string            `json:"name"`
	Title       string            `json:"title,omitempty"`
	Icons       []Icon            `json:"icons,omitempty"`
}

// PromptArgument describes one argument a prompt can accept.
type PromptArgument struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

type PromptListChangedParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *PromptListChangedParams) isParams()              {}
func (x *PromptListChangedParams) GetMeta() Meta          { return x.Meta }
func (x *PromptListChangedParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *PromptListChangedParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// PromptMessage is one message returned as part of a prompt.
type PromptMessage struct {
	Content Content `json:"content"`
	Role    Role    `json:"role"`
}

func (m *PromptMessage) UnmarshalJSON(data []byte) error {
	type msg PromptMessage
	var wire struct {
		msg
		Content *wireContent `json:"content"`
	}
	if err := internaljson.Unmarshal(data, &wire); err != nil {
		return err
	}
	var err error
	if wire.msg.Content, err = contentFromWire(wire.Content, nil); err != nil {
		return err
	}
	*m = PromptMessage(wire.msg)
	return nil
}

type ReadResourceParams struct {
	Meta `json:"_meta,omitempty"`
	URI  string `json:"uri"`
}

func (x *ReadResourceParams) isParams()              {}
func (x *ReadResourceParams) GetMeta() Meta          { return x.Meta }
func (x *ReadResourceParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ReadResourceParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

type ReadResourceResult struct {
	Meta     `json:"_meta,omitempty"`
	Contents []*ResourceContents `json:"contents"`
}

func (*ReadResourceResult) isResult() {}

// Resource is a known resource a server can read.
type Resource struct {
	Meta        `json:"_meta,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Description string       `json:"description,omitempty"`
	MIMEType    string       `json:"mimeType,omitempty"`
	Name        string       `json:"name"`
	Size        int64        `json:"size,omitempty"`
	Title       string       `json:"title,omitempty"`
	URI         string       `json:"uri"`
	Icons       []Icon       `json:"icons,omitempty"`
}

type ResourceListChangedParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *ResourceListChangedParams) isParams()              {}
func (x *ResourceListChangedParams) GetMeta() Meta          { return x.Meta }
func (x *ResourceListChangedParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ResourceListChangedParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// ResourceTemplate describes a URI template (RFC 6570) for a family of resources.
type ResourceTemplate struct {
	Meta        `json:"_meta,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	Description string       `json:"description,omitempty"`
	MIMEType    string       `json:"mimeType,omitempty"`
	Name        string       `json:"name"`
	Title       string       `json:"title,omitempty"`
	URITemplate string       `json:"uriTemplate"`
	Icons       []Icon       `json:"icons,omitempty"`
}

// Role is the sender or recipient of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Root is a root directory or file a server may operate on.
type Root struct {
	Meta `json:"_meta,omitempty"`
	Name string `json:"name,omitempty"`
	URI  string `json:"uri"`
}

type RootsListChangedParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *RootsListChangedParams) isParams()              {}
func (x *RootsListChangedParams) GetMeta() Meta          { return x.Meta }
func (x *RootsListChangedParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *RootsListChangedParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// SubscribeParams requests resources/updated notifications for a URI.
type SubscribeParams struct {
	Meta `json:"_meta,omitempty"`
	URI  string `json:"uri"`
}

func (x *SubscribeParams) isParams()              {}
func (x *SubscribeParams) GetMeta() Meta          { return x.Meta }
func (x *SubscribeParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *SubscribeParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// UnsubscribeParams cancels a prior subscribe.
type UnsubscribeParams struct {
	Meta `json:"_meta,omitempty"`
	URI  string `json:"uri"`
}

func (x *UnsubscribeParams) isParams()              {}
func (x *UnsubscribeParams) GetMeta() Meta          { return x.Meta }
func (x *UnsubscribeParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *UnsubscribeParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// ResourceUpdatedNotificationParams reports that a subscribed resource changed.
type ResourceUpdatedNotificationParams struct {
	Meta `json:"_meta,omitempty"`
	URI  string `json:"uri"`
}

func (x *ResourceUpdatedNotificationParams) isParams()              {}
func (x *ResourceUpdatedNotificationParams) GetMeta() Meta          { return x.Meta }
func (x *ResourceUpdatedNotificationParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ResourceUpdatedNotificationParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// ElicitParams asks the client to collect information from the user.
type ElicitParams struct {
	Meta            `json:"_meta,omitempty"`
	Message         string `json:"message"`
	RequestedSchema any    `json:"requestedSchema,omitempty"`
}

func (x *ElicitParams) isParams()              {}
func (x *ElicitParams) GetMeta() Meta          { return x.Meta }
func (x *ElicitParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ElicitParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// ElicitResult is the client's answer to an elicitation/create request.
type ElicitResult struct {
	Meta    `json:"_meta,omitempty"`
	Action  string         `json:"action"`
	Content map[string]any `json:"content,omitempty"`
}

func (*ElicitResult) isResult() {}

// ElicitationCompleteParams notifies that an out-of-band elicitation flow finished.
type ElicitationCompleteParams struct {
	Meta `json:"_meta,omitempty"`
	ID   string `json:"id"`
}

func (x *ElicitationCompleteParams) isParams()              {}
func (x *ElicitationCompleteParams) GetMeta() Meta          { return x.Meta }
func (x *ElicitationCompleteParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ElicitationCompleteParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// Implementation names and versions an MCP peer.
type Implementation struct {
	Name       string `json:"name"`
	Title      string `json:"title,omitempty"`
	Version    string `json:"version"`
	WebsiteURL string `json:"websiteUrl,omitempty"`
	Icons      []Icon `json:"icons,omitempty"`
}

type CompletionCapabilities struct{}
type LoggingCapabilities struct{}

type PromptCapabilities struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type ResourceCapabilities struct {
	ListChanged bool `json:"listChanged,omitempty"`
	Subscribe   bool `json:"subscribe,omitempty"`
}

type ToolCapabilities struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerCapabilities describes what a server supports.
type ServerCapabilities struct {
	Experimental map[string]any          `json:"experimental,omitempty"`
	Completions  *CompletionCapabilities `json:"completions,omitempty"`
	Logging      *LoggingCapabilities    `json:"logging,omitempty"`
	Prompts      *PromptCapabilities     `json:"prompts,omitempty"`
	Resources    *ResourceCapabilities   `json:"resources,omitempty"`
	Tools        *ToolCapabilities       `json:"tools,omitempty"`
}

func (c *ServerCapabilities) clone() *ServerCapabilities {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Experimental = maps.Clone(c.Experimental)
	cp.Completions = shallowClone(c.Completions)
	cp.Logging = shallowClone(c.Logging)
	cp.Prompts = shallowClone(c.Prompts)
	cp.Resources = shallowClone(c.Resources)
	cp.Tools = shallowClone(c.Tools)
	return &cp
}

type SetLoggingLevelParams struct {
	Meta  `json:"_meta,omitempty"`
	Level LoggingLevel `json:"level"`
}

func (x *SetLoggingLevelParams) isParams()              {}
func (x *SetLoggingLevelParams) GetMeta() Meta          { return x.Meta }
func (x *SetLoggingLevelParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *SetLoggingLevelParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// Tool is a definition for a tool a client can call.
type Tool struct {
	Meta         `json:"_meta,omitempty"`
	Annotations  *ToolAnnotations `json:"annotations,omitempty"`
	Description  string           `json:"description,omitempty"`
	InputSchema  any              `json:"inputSchema"`
	Name         string           `json:"name"`
	OutputSchema any              `json:"outputSchema,omitempty"`
	Title        string           `json:"title,omitempty"`
	Icons        []Icon           `json:"icons,omitempty"`
}

// ToolAnnotations are hints about tool behavior; never authoritative.
type ToolAnnotations struct {
	DestructiveHint *bool  `json:"destructiveHint,omitempty"`
	IdempotentHint  bool   `json:"idempotentHint,omitempty"`
	OpenWorldHint   *bool  `json:"openWorldHint,omitempty"`
	ReadOnlyHint    bool   `json:"readOnlyHint,omitempty"`
	Title           string `json:"title,omitempty"`
}

type ToolListChangedParams struct {
	Meta `json:"_meta,omitempty"`
}

func (x *ToolListChangedParams) isParams()              {}
func (x *ToolListChangedParams) GetMeta() Meta          { return x.Meta }
func (x *ToolListChangedParams) GetProgressToken() any  { return getProgressToken(x.Meta) }
func (x *ToolListChangedParams) SetProgressToken(t any) { setProgressToken(&x.Meta, t) }

// Method names as they appear on the wire. Kept together so the dispatcher
// and the handler registry share a single source of truth.
const (
	methodCallTool                  = "tools/call"
	notificationCancelled           = "notifications/cancelled"
	methodComplete                  = "completion/complete"
	methodCreateMessage             = "sampling/createMessage"
	methodElicit                    = "elicitation/create"
	notificationElicitationComplete = "notifications/elicitation/complete"
	methodGetPrompt                 = "prompts/get"
	methodInitialize                = "initialize"
	notificationInitialized         = "notifications/initialized"
	methodListPrompts               = "prompts/list"
	methodListResourceTemplates     = "resources/templates/list"
	methodListResources             = "resources/list"
	methodListRoots                 = "roots/list"
	methodListTools                 = "tools/list"
	notificationLoggingMessage      = "notifications/message"
	methodPing                      = "ping"
	notificationProgress            = "notifications/progress"
	notificationPromptListChanged   = "notifications/prompts/list_changed"
	methodReadResource              = "resources/read"
	notificationResourceListChanged = "notifications/resources/list_changed"
	notificationResourceUpdated     = "notifications/resources/updated"
	notificationRootsListChanged    = "notifications/roots/list_changed"
	methodSetLevel                  = "logging/setLevel"
	methodSubscribe                 = "resources/subscribe"
	notificationToolListChanged     = "notifications/tools/list_changed"
	methodUnsubscribe               = "resources/unsubscribe"
)

// ProtocolVersion is the version of MCP implemented by this module.
const ProtocolVersion = "2025-11-25"
