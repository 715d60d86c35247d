// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"fmt"
	"log/slog"

	internaljson "github.com/go-mcp/core/internal/json"
)

// ClientOptions configures a Client: its advertised capabilities and the
// handlers it runs for inbound requests and notifications from a server.
type ClientOptions struct {
	// Capabilities are merged with those inferred from the handlers set
	// below; an explicit field here always wins. See inferClientCapabilities.
	Capabilities *ClientCapabilities

	Logger *slog.Logger

	CreateMessageHandler func(context.Context, *CreateMessageRequest) (*CreateMessageResult, error)
	ElicitHandler        func(context.Context, *ElicitRequest) (*ElicitResult, error)
	ListRootsHandler     func(context.Context, *ListRootsRequest) (*ListRootsResult, error)

	LoggingMessageHandler      func(context.Context, *LoggingMessageRequest)
	ToolListChangedHandler     func(context.Context, *ToolListChangedRequest)
	PromptListChangedHandler   func(context.Context, *PromptListChangedRequest)
	ResourceListChangedHandler func(context.Context, *ResourceListChangedRequest)
	ResourceUpdatedHandler     func(context.Context, *ResourceUpdatedNotificationRequest)

	// FallbackRequestHandler and FallbackNotificationHandler, if set, must
	// be set before Connect: the handler registry is append-only until the
	// session starts dispatching.
	FallbackRequestHandler      func(context.Context, string, internaljson.RawMessage) (any, error)
	FallbackNotificationHandler func(context.Context, string, internaljson.RawMessage)
}

// Client is a configured MCP client identity that can open one or more
// sessions against servers.
type Client struct {
	impl *Implementation
	opts ClientOptions
}

// NewClient returns a Client that identifies itself to servers as impl.
func NewClient(impl *Implementation, opts *ClientOptions) *Client {
	c := &Client{impl: impl}
	if opts != nil {
		c.opts = *opts
	}
	return c
}

// ClientSession is a single initialized connection to a server.
type ClientSession struct {
	client *Client
	conn   *conn
	state  stateBox

	serverInfo *Implementation
	serverCaps *ServerCapabilities
}

func registerClientHandlers(reg *handlerRegistry, opts *ClientOptions, session *ClientSession) {
	if opts.CreateMessageHandler != nil {
		reg.addRequest(methodCreateMessage, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(CreateMessageParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding sampling/createMessage params: %w", err)
			}
			return opts.CreateMessageHandler(ctx, &ClientRequest[*CreateMessageParams]{Session: session, Params: params})
		})
	}
	if opts.ElicitHandler != nil {
		reg.addRequest(methodElicit, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ElicitParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding elicitation/create params: %w", err)
			}
			return opts.ElicitHandler(ctx, &ClientRequest[*ElicitParams]{Session: session, Params: params})
		})
	}
	if opts.ListRootsHandler != nil {
		reg.addRequest(methodListRoots, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ListRootsParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding roots/list params: %w", err)
			}
			return opts.ListRootsHandler(ctx, &ClientRequest[*ListRootsParams]{Session: session, Params: params})
		})
	}
	reg.addRequest(methodPing, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
		return &PingResult{}, nil
	})

	if opts.LoggingMessageHandler != nil {
		reg.addNotification(notificationLoggingMessage, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
			params := new(LoggingMessageParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return
			}
			opts.LoggingMessageHandler(ctx, &ClientRequest[*LoggingMessageParams]{Session: session, Params: params})
		})
	}
	if opts.ToolListChangedHandler != nil {
		reg.addNotification(notificationToolListChanged, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
			params := new(ToolListChangedParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return
			}
			opts.ToolListChangedHandler(ctx, &ClientRequest[*ToolListChangedParams]{Session: session, Params: params})
		})
	}
	if opts.PromptListChangedHandler != nil {
		reg.addNotification(notificationPromptListChanged, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
			params := new(PromptListChangedParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return
			}
			opts.PromptListChangedHandler(ctx, &ClientRequest[*PromptListChangedParams]{Session: session, Params: params})
		})
	}
	if opts.ResourceListChangedHandler != nil {
		reg.addNotification(notificationResourceListChanged, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
			params := new(ResourceListChangedParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return
			}
			opts.ResourceListChangedHandler(ctx, &ClientRequest[*ResourceListChangedParams]{Session: session, Params: params})
		})
	}
	if opts.ResourceUpdatedHandler != nil {
		reg.addNotification(notificationResourceUpdated, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
			params := new(ResourceUpdatedNotificationParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return
			}
			opts.ResourceUpdatedHandler(ctx, &ClientRequest[*ResourceUpdatedNotificationParams]{Session: session, Params: params})
		})
	}

	if opts.FallbackRequestHandler != nil {
		reg.setFallback(func(ctx context.Context, method string, raw internaljson.RawMessage) (any, error) {
			return opts.FallbackRequestHandler(ctx, method, raw)
		})
	}
	if opts.FallbackNotificationHandler != nil {
		reg.setFallbackNotification(func(ctx context.Context, method string, raw internaljson.RawMessage) {
			opts.FallbackNotificationHandler(ctx, method, raw)
		})
	}
}

// Connect performs the client side of the initialize handshake over t and
// returns a ready ClientSession. It starts the reader goroutine first (so
// the InitializeResult can be received), then blocks for the response.
func (c *Client) Connect(ctx context.Context, t Transport, protocolVersion string) (*ClientSession, error) {
	if protocolVersion == "" {
		protocolVersion = ProtocolVersion
	}
	s := &ClientSession{client: c}
	s.conn = newConn(t, c.opts.Logger)
	registerClientHandlers(s.conn.handlers, &c.opts, s)
	s.conn.start()
	s.state.store(stateConnecting)

	caps := inferClientCapabilities(s.conn.handlers, c.opts.Capabilities, s.conn.logger)
	result := new(InitializeResult)
	err := s.conn.call(ctx, methodInitialize, &InitializeParams{
		Capabilities:    caps,
		ClientInfo:      c.impl,
		ProtocolVersion: protocolVersion,
	}, result, RequestOptions{})
	if err != nil {
		s.conn.Close()
		return nil, fmt.Errorf("mcp: initialize: %w", err)
	}
	if result.ProtocolVersion != protocolVersion {
		s.conn.Close()
		return nil, &VersionMismatchError{Got: result.ProtocolVersion}
	}
	s.serverInfo = result.ServerInfo
	s.serverCaps = result.Capabilities

	if err := s.conn.notify(ctx, notificationInitialized, &InitializedParams{}); err != nil {
		s.conn.Close()
		return nil, fmt.Errorf("mcp: notifications/initialized: %w", err)
	}
	s.state.store(stateInitialized)
	return s, nil
}

// ServerInfo returns the server's self-description, valid after Connect.
func (s *ClientSession) ServerInfo() *Implementation { return s.serverInfo }

// ServerCapabilities returns the server's negotiated capabilities.
func (s *ClientSession) ServerCapabilities() *ServerCapabilities { return s.serverCaps }

func (s *ClientSession) notifyProgress(ctx context.Context, token any, msg string, progress, total float64) error {
	return s.conn.notifyProgress(ctx, token, msg, progress, total)
}

// Close disconnects the session, failing all pending requests.
func (s *ClientSession) Close() error {
	s.state.store(stateClosing)
	err := s.conn.Close()
	s.state.store(stateClosed)
	return err
}

// CallTool invokes a tool on the server.
func (s *ClientSession) CallTool(ctx context.Context, params *CallToolParams, opts RequestOptions) (*CallToolResult, error) {
	result := new(CallToolResult)
	if err := s.conn.call(ctx, methodCallTool, params, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// ListTools lists the tools the server offers.
func (s *ClientSession) ListTools(ctx context.Context, params *ListToolsParams) (*ListToolsResult, error) {
	result := new(ListToolsResult)
	if err := s.conn.call(ctx, methodListTools, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPrompts lists the prompts the server offers.
func (s *ClientSession) ListPrompts(ctx context.Context, params *ListPromptsParams) (*ListPromptsResult, error) {
	result := new(ListPromptsResult)
	if err := s.conn.call(ctx, methodListPrompts, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// GetPrompt renders a named prompt.
func (s *ClientSession) GetPrompt(ctx context.Context, params *GetPromptParams) (*GetPromptResult, error) {
	result := new(GetPromptResult)
	if err := s.conn.call(ctx, methodGetPrompt, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// ListResources lists the resources the server offers.
func (s *ClientSession) ListResources(ctx context.Context, params *ListResourcesParams) (*ListResourcesResult, error) {
	result := new(ListResourcesResult)
	if err := s.conn.call(ctx, methodListResources, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// ReadResource reads the content of a resource.
func (s *ClientSession) ReadResource(ctx context.Context, params *ReadResourceParams, opts RequestOptions) (*ReadResourceResult, error) {
	result := new(ReadResourceResult)
	if err := s.conn.call(ctx, methodReadResource, params, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// ListResourceTemplates lists the server's resource templates.
func (s *ClientSession) ListResourceTemplates(ctx context.Context, params *ListResourceTemplatesParams) (*ListResourceTemplatesResult, error) {
	result := new(ListResourceTemplatesResult)
	if err := s.conn.call(ctx, methodListResourceTemplates, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// Subscribe requests resources/updated notifications for a URI.
func (s *ClientSession) Subscribe(ctx context.Context, params *SubscribeParams) error {
	return s.conn.call(ctx, methodSubscribe, params, &EmptyResult{}, RequestOptions{})
}

// Unsubscribe cancels a prior Subscribe.
func (s *ClientSession) Unsubscribe(ctx context.Context, params *UnsubscribeParams) error {
	return s.conn.call(ctx, methodUnsubscribe, params, &EmptyResult{}, RequestOptions{})
}

// SetLevel adjusts the minimum severity of logging/message notifications
// the server will send.
func (s *ClientSession) SetLevel(ctx context.Context, level LoggingLevel) error {
	return s.conn.call(ctx, methodSetLevel, &SetLoggingLevelParams{Level: level}, &EmptyResult{}, RequestOptions{})
}

// Complete requests completion suggestions for a prompt or resource-template argument.
func (s *ClientSession) Complete(ctx context.Context, params *CompleteParams) (*CompleteResult, error) {
	result := new(CompleteResult)
	if err := s.conn.call(ctx, methodComplete, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// Ping round-trips a ping to the server.
func (s *ClientSession) Ping(ctx context.Context) error {
	return s.conn.call(ctx, methodPing, &PingParams{}, &PingResult{}, RequestOptions{})
}
