// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// This file holds the request wrapper types handed to registered handlers.

package mcp

import "github.com/go-mcp/core/internal/jsonrpc2"

// ServerRequest wraps the parameters of an inbound call on a server-side
// session together with the session it arrived on, so a handler can reply
// out of band (progress, sampling, roots) without a second lookup.
type ServerRequest[P Params] struct {
	Session *ServerSession
	Params  P

	id jsonrpc2.ID
}

// ClientRequest wraps the parameters of an inbound call on a client-side
// session.
type ClientRequest[P Params] struct {
	Session *ClientSession
	Params  P

	id jsonrpc2.ID
}

// Requests a server handles, keyed by the params type the wire payload decodes to.
type (
	CallToolRequest              = ServerRequest[*CallToolParamsRaw]
	CompleteServerRequest        = ServerRequest[*CompleteParams]
	GetPromptRequest             = ServerRequest[*GetPromptParams]
	InitializeRequest            = ServerRequest[*InitializeParams]
	InitializedRequest           = ServerRequest[*InitializedParams]
	ListPromptsRequest           = ServerRequest[*ListPromptsParams]
	ListResourcesRequest         = ServerRequest[*ListResourcesParams]
	ListResourceTemplatesRequest = ServerRequest[*ListResourceTemplatesParams]
	ListToolsRequest             = ServerRequest[*ListToolsParams]
	ReadResourceRequest          = ServerRequest[*ReadResourceParams]
	RootsListChangedRequest      = ServerRequest[*RootsListChangedParams]
	SetLevelRequest              = ServerRequest[*SetLoggingLevelParams]
	SubscribeRequest             = ServerRequest[*SubscribeParams]
	UnsubscribeRequest           = ServerRequest[*UnsubscribeParams]
	CancelledServerRequest       = ServerRequest[*CancelledParams]
	ProgressServerRequest        = ServerRequest[*ProgressNotificationParams]
)

// Requests a client handles.
type (
	CreateMessageRequest                  = ClientRequest[*CreateMessageParams]
	ElicitRequest                         = ClientRequest[*ElicitParams]
	ListRootsRequest                      = ClientRequest[*ListRootsParams]
	LoggingMessageRequest                 = ClientRequest[*LoggingMessageParams]
	PromptListChangedRequest              = ClientRequest[*PromptListChangedParams]
	ResourceListChangedRequest            = ClientRequest[*ResourceListChangedParams]
	ResourceUpdatedNotificationRequest    = ClientRequest[*ResourceUpdatedNotificationParams]
	ToolListChangedRequest                = ClientRequest[*ToolListChangedParams]
	ElicitationCompleteNotificationRequest = ClientRequest[*ElicitationCompleteParams]
	CancelledClientRequest                = ClientRequest[*CancelledParams]
	ProgressClientRequest                 = ClientRequest[*ProgressNotificationParams]
)
