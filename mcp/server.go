// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	internaljson "github.com/go-mcp/core/internal/json"
)

// ServerOptions configures a Server: its advertised capabilities and the
// handlers it runs for inbound requests and notifications from a client.
type ServerOptions struct {
	// Capabilities are merged with those inferred from the handlers set
	// below; an explicit field here always wins. See inferServerCapabilities.
	Capabilities *ServerCapabilities
	Instructions string

	Logger *slog.Logger

	ListToolsHandler             func(context.Context, *ListToolsRequest) (*ListToolsResult, error)
	CallToolHandler              func(context.Context, *CallToolRequest) (*CallToolResult, error)
	ListPromptsHandler           func(context.Context, *ListPromptsRequest) (*ListPromptsResult, error)
	GetPromptHandler             func(context.Context, *GetPromptRequest) (*GetPromptResult, error)
	ListResourcesHandler         func(context.Context, *ListResourcesRequest) (*ListResourcesResult, error)
	ReadResourceHandler          func(context.Context, *ReadResourceRequest) (*ReadResourceResult, error)
	ListResourceTemplatesHandler func(context.Context, *ListResourceTemplatesRequest) (*ListResourceTemplatesResult, error)
	SubscribeHandler             func(context.Context, *SubscribeRequest) error
	UnsubscribeHandler           func(context.Context, *UnsubscribeRequest) error
	SetLevelHandler              func(context.Context, *SetLevelRequest) error
	CompleteHandler              func(context.Context, *CompleteServerRequest) (*CompleteResult, error)

	RootsListChangedHandler func(context.Context, *RootsListChangedRequest)

	// FallbackRequestHandler and FallbackNotificationHandler, if set, must
	// be set before Connect: the handler registry is append-only until the
	// session starts dispatching.
	FallbackRequestHandler      func(context.Context, string, internaljson.RawMessage) (any, error)
	FallbackNotificationHandler func(context.Context, string, internaljson.RawMessage)
}

// Server is a configured MCP server identity that can accept one or more
// sessions from clients.
type Server struct {
	impl *Implementation
	opts ServerOptions
}

// NewServer returns a Server that identifies itself to clients as impl.
func NewServer(impl *Implementation, opts *ServerOptions) *Server {
	sv := &Server{impl: impl}
	if opts != nil {
		sv.opts = *opts
	}
	return sv
}

// ServerSession is a single initialized connection to a client.
type ServerSession struct {
	server *Server
	conn   *conn
	state  stateBox

	clientInfo *Implementation
	clientCaps *ClientCapabilities
	logging    *logGate

	initOnce sync.Once
	initDone chan struct{}
	initErr  error
}

func registerServerHandlers(reg *handlerRegistry, sv *Server, session *ServerSession) {
	opts := &sv.opts

	reg.addRequest(methodInitialize, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
		params := new(InitializeParams)
		if err := session.conn.decodeParams(raw, params); err != nil {
			return nil, fmt.Errorf("decoding initialize params: %w", err)
		}
		session.clientInfo = params.ClientInfo
		session.clientCaps = params.Capabilities
		session.state.store(stateConnecting)

		caps := inferServerCapabilities(reg, opts.Capabilities, session.conn.logger)
		return &InitializeResult{
			Capabilities:    caps,
			Instructions:    opts.Instructions,
			ProtocolVersion: ProtocolVersion,
			ServerInfo:      sv.impl,
		}, nil
	})

	reg.addNotification(notificationInitialized, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
		session.state.store(stateInitialized)
		session.initOnce.Do(func() { close(session.initDone) })
	})

	reg.addRequest(methodPing, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
		return &PingResult{}, nil
	})

	if opts.ListToolsHandler != nil {
		reg.addRequest(methodListTools, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ListToolsParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding tools/list params: %w", err)
			}
			return opts.ListToolsHandler(ctx, &ListToolsRequest{Session: session, Params: params})
		})
	}
	if opts.CallToolHandler != nil {
		reg.addRequest(methodCallTool, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(CallToolParamsRaw)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding tools/call params: %w", err)
			}
			return opts.CallToolHandler(ctx, &CallToolRequest{Session: session, Params: params})
		})
	}
	if opts.ListPromptsHandler != nil {
		reg.addRequest(methodListPrompts, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ListPromptsParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding prompts/list params: %w", err)
			}
			return opts.ListPromptsHandler(ctx, &ListPromptsRequest{Session: session, Params: params})
		})
	}
	if opts.GetPromptHandler != nil {
		reg.addRequest(methodGetPrompt, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(GetPromptParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding prompts/get params: %w", err)
			}
			return opts.GetPromptHandler(ctx, &GetPromptRequest{Session: session, Params: params})
		})
	}
	if opts.ListResourcesHandler != nil {
		reg.addRequest(methodListResources, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ListResourcesParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding resources/list params: %w", err)
			}
			return opts.ListResourcesHandler(ctx, &ListResourcesRequest{Session: session, Params: params})
		})
	}
	if opts.ReadResourceHandler != nil {
		reg.addRequest(methodReadResource, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ReadResourceParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding resources/read params: %w", err)
			}
			return opts.ReadResourceHandler(ctx, &ReadResourceRequest{Session: session, Params: params})
		})
	}
	if opts.ListResourceTemplatesHandler != nil {
		reg.addRequest(methodListResourceTemplates, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(ListResourceTemplatesParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding resources/templates/list params: %w", err)
			}
			return opts.ListResourceTemplatesHandler(ctx, &ListResourceTemplatesRequest{Session: session, Params: params})
		})
	}
	if opts.SubscribeHandler != nil {
		reg.addRequest(methodSubscribe, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(SubscribeParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding resources/subscribe params: %w", err)
			}
			if err := opts.SubscribeHandler(ctx, &SubscribeRequest{Session: session, Params: params}); err != nil {
				return nil, err
			}
			return &EmptyResult{}, nil
		})
	}
	if opts.UnsubscribeHandler != nil {
		reg.addRequest(methodUnsubscribe, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(UnsubscribeParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding resources/unsubscribe params: %w", err)
			}
			if err := opts.UnsubscribeHandler(ctx, &UnsubscribeRequest{Session: session, Params: params}); err != nil {
				return nil, err
			}
			return &EmptyResult{}, nil
		})
	}
	// logging/setLevel is handled intrinsically (it gates session.Log), not
	// only when a SetLevelHandler is supplied: log-level gating is ambient
	// infrastructure, the same way a host's own logger has levels.
	reg.addRequest(methodSetLevel, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
		params := new(SetLoggingLevelParams)
		if err := session.conn.decodeParams(raw, params); err != nil {
			return nil, fmt.Errorf("decoding logging/setLevel params: %w", err)
		}
		session.logging.set(params.Level)
		if opts.SetLevelHandler != nil {
			if err := opts.SetLevelHandler(ctx, &SetLevelRequest{Session: session, Params: params}); err != nil {
				return nil, err
			}
		}
		return &EmptyResult{}, nil
	})
	if opts.CompleteHandler != nil {
		reg.addRequest(methodComplete, func(ctx context.Context, _ string, raw internaljson.RawMessage) (any, error) {
			params := new(CompleteParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return nil, fmt.Errorf("decoding completion/complete params: %w", err)
			}
			return opts.CompleteHandler(ctx, &CompleteServerRequest{Session: session, Params: params})
		})
	}

	if opts.RootsListChangedHandler != nil {
		reg.addNotification(notificationRootsListChanged, func(ctx context.Context, _ string, raw internaljson.RawMessage) {
			params := new(RootsListChangedParams)
			if err := session.conn.decodeParams(raw, params); err != nil {
				return
			}
			opts.RootsListChangedHandler(ctx, &RootsListChangedRequest{Session: session, Params: params})
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

// Connect starts serving t: it launches the reader, waits for the client's
// initialize request and subsequent notifications/initialized, and returns
// a ready ServerSession. Unlike Client.Connect, the handshake is driven by
// the peer; Connect here just waits for it to finish.
func (sv *Server) Connect(ctx context.Context, t Transport) (*ServerSession, error) {
	s := &ServerSession{server: sv, initDone: make(chan struct{}), logging: newLogGate()}
	s.conn = newConn(t, sv.opts.Logger)
	registerServerHandlers(s.conn.handlers, sv, s)
	s.conn.start()

	select {
	case <-s.initDone:
		return s, nil
	case <-ctx.Done():
		s.conn.Close()
		return nil, ctx.Err()
	case <-s.conn.closed:
		return nil, ErrConnectionClosed
	}
}

// ClientInfo returns the client's self-description, valid after Connect.
func (s *ServerSession) ClientInfo() *Implementation { return s.clientInfo }

// ClientCapabilities returns the client's negotiated capabilities.
func (s *ServerSession) ClientCapabilities() *ClientCapabilities { return s.clientCaps }

func (s *ServerSession) notifyProgress(ctx context.Context, token any, msg string, progress, total float64) error {
	return s.conn.notifyProgress(ctx, token, msg, progress, total)
}

// Close disconnects the session, failing all pending requests.
func (s *ServerSession) Close() error {
	s.state.store(stateClosing)
	err := s.conn.Close()
	s.state.store(stateClosed)
	return err
}

// CreateMessage asks the client to sample from a model on the server's behalf.
func (s *ServerSession) CreateMessage(ctx context.Context, params *CreateMessageParams, opts RequestOptions) (*CreateMessageResult, error) {
	result := new(CreateMessageResult)
	if err := s.conn.call(ctx, methodCreateMessage, params, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Elicit asks the client to collect structured input from its user.
func (s *ServerSession) Elicit(ctx context.Context, params *ElicitParams) (*ElicitResult, error) {
	result := new(ElicitResult)
	if err := s.conn.call(ctx, methodElicit, params, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// ListRoots asks the client which filesystem roots it has exposed.
func (s *ServerSession) ListRoots(ctx context.Context) (*ListRootsResult, error) {
	result := new(ListRootsResult)
	if err := s.conn.call(ctx, methodListRoots, &ListRootsParams{}, result, RequestOptions{}); err != nil {
		return nil, err
	}
	return result, nil
}

// Log sends a logging/message notification to the client.
func (s *ServerSession) Log(ctx context.Context, params *LoggingMessageParams) error {
	return s.logMessage(ctx, params)
}

// NotifyToolListChanged tells the client that the tool list changed.
func (s *ServerSession) NotifyToolListChanged(ctx context.Context) error {
	return s.conn.notify(ctx, notificationToolListChanged, &ToolListChangedParams{})
}

// NotifyPromptListChanged tells the client that the prompt list changed.
func (s *ServerSession) NotifyPromptListChanged(ctx context.Context) error {
	return s.conn.notify(ctx, notificationPromptListChanged, &PromptListChangedParams{})
}

// NotifyResourceListChanged tells the client that the resource list changed.
func (s *ServerSession) NotifyResourceListChanged(ctx context.Context) error {
	return s.conn.notify(ctx, notificationResourceListChanged, &ResourceListChangedParams{})
}

// NotifyResourceUpdated tells the client that a subscribed resource changed.
func (s *ServerSession) NotifyResourceUpdated(ctx context.Context, uri string) error {
	return s.conn.notify(ctx, notificationResourceUpdated, &ResourceUpdatedNotificationParams{URI: uri})
}

// Ping round-trips a ping to the client.
func (s *ServerSession) Ping(ctx context.Context) error {
	return s.conn.call(ctx, methodPing, &PingParams{}, &PingResult{}, RequestOptions{})
}
