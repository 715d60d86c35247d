// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	internaljson "github.com/go-mcp/core/internal/json"
	"github.com/go-mcp/core/internal/jsonrpc2"
	"github.com/go-mcp/core/internal/mcpgodebug"
)

// pendingCall is the bookkeeping kept alongside a registered pendingTable
// entry for a single outbound request.
type pendingCall struct {
	id              string // the request-id key this call is filed under in conn.calls
	token           string // progress token, may equal the request ID
	onProgress      func(ProgressNotificationParams)
	lastProgress    float64
	haveProgress    bool
	resetOnProgress bool // whether an inbound progress notification should push the deadline back
}

// conn is the dispatcher shared by ClientSession and ServerSession: it owns
// the single reader goroutine for a transport, the pending-request table,
// the timeout manager, and the handler registry, and routes every decoded
// frame to the right place. ClientSession and ServerSession differ only in
// which methods they register as handlers and in the Params/Result types
// they know how to build; the wire dance is identical on both sides.
type conn struct {
	transport Transport
	logger    *slog.Logger
	relaxed   bool // from MCPGODEBUG=relaxedjson=1: skip strict field-case validation

	handlers *handlerRegistry
	pending  *pendingTable
	timeouts *timeoutManager
	ids      idGenerator

	writeMu sync.Mutex

	mu         sync.Mutex
	calls      map[string]*pendingCall           // request-id-string -> call bookkeeping
	progressTo map[string]*pendingCall           // progress-token-string -> call bookkeeping
	inbound    map[string]context.CancelFunc      // request-id-string -> cancel for an in-flight inbound handler

	closed    chan struct{}
	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// decodeParams unmarshals an inbound params/result payload into v. Unless
// MCPGODEBUG=relaxedjson=1 is set, it runs the payload through
// jsonrpc2.StrictUnmarshal first so a peer cannot smuggle a field past
// Go's case-insensitive JSON matching (e.g. "Name" for "name").
func (c *conn) decodeParams(data internaljson.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if c.relaxed {
		return internaljson.Unmarshal(data, v)
	}
	return jsonrpc2.StrictUnmarshal(data, v)
}

func newConn(t Transport, logger *slog.Logger) *conn {
	if logger == nil {
		logger = slog.Default()
	}
	return &conn{
		transport:  t,
		logger:     logger,
		relaxed:    mcpgodebug.Value("relaxedjson") == "1",
		handlers:   newHandlerRegistry(),
		pending:    newPendingTable(),
		timeouts:   newTimeoutManager(),
		calls:      make(map[string]*pendingCall),
		progressTo: make(map[string]*pendingCall),
		inbound:    make(map[string]context.CancelFunc),
		closed:     make(chan struct{}),
	}
}

// start freezes the handler registry and launches the reader goroutine.
// After start, registering additional handlers panics.
func (c *conn) start() {
	c.handlers.freeze()
	c.wg.Add(1)
	go c.readLoop()
}

func (c *conn) readLoop() {
	defer c.wg.Done()
	ctx := context.Background()
	for {
		frame, err := c.transport.Read(ctx)
		if err != nil {
			c.shutdown(err)
			return
		}
		c.handleFrame(frame)
	}
}

func (c *conn) handleFrame(frame []byte) {
	msg, err := jsonrpc2.Decode(frame)
	if err != nil {
		var pe *jsonrpc2.ParseError
		if errors.As(err, &pe) && pe.HasID {
			c.writeResponse(&jsonrpc2.Response{
				ID:  pe.ID,
				Err: jsonrpc2.NewError(jsonrpc2.CodeParseError, "parse error: %s", err.Error()),
			})
			return
		}
		c.logger.Warn("mcp: dropping malformed frame", "error", err)
		return
	}
	switch m := msg.(type) {
	case *jsonrpc2.Response:
		c.dispatchResponse(m)
	case *jsonrpc2.Request:
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.dispatchRequest(m)
		}()
	case *jsonrpc2.Notification:
		switch m.Method {
		case notificationCancelled, notificationProgress:
			// Dispatched inline on the reader goroutine, same as a Response
			// frame: §4.6 funnels progress and completion for a given
			// request id through the same logical queue, which here is
			// simply frame-arrival order on the one reader. A progress
			// frame read before a response frame is therefore always
			// routed to its sink before the response is observed by the
			// caller. Only request handlers and other notifications run
			// off the reader task.
			c.dispatchNotification(m)
		default:
			c.wg.Add(1)
			go func() {
				defer c.wg.Done()
				c.dispatchNotification(m)
			}()
		}
	}
}

func (c *conn) dispatchResponse(resp *jsonrpc2.Response) {
	key := resp.ID.String()
	c.mu.Lock()
	call := c.calls[key]
	delete(c.calls, key)
	if call != nil && call.token != "" {
		delete(c.progressTo, call.token)
	}
	c.mu.Unlock()
	c.timeouts.stop(key)
	if !c.pending.complete(resp) {
		c.logger.Debug("mcp: response for unknown request id", "id", resp.ID.String())
	}
}

func (c *conn) dispatchRequest(req *jsonrpc2.Request) {
	h, ok := c.handlers.lookup(req.Method)
	if !ok {
		c.writeResponse(&jsonrpc2.Response{
			ID:  req.ID,
			Err: jsonrpc2.NewError(jsonrpc2.CodeMethodNotFound, "method not found: %s", req.Method),
		})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	key := req.ID.String()
	c.mu.Lock()
	c.inbound[key] = cancel
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.inbound, key)
		c.mu.Unlock()
		cancel()
	}()

	result, err := h(ctx, req.Method, req.Params)
	if err != nil {
		var re *RemoteError
		if errors.As(err, &re) {
			c.writeResponse(&jsonrpc2.Response{ID: req.ID, Err: &jsonrpc2.Error{Code: re.Code, Message: re.Message}})
			return
		}
		c.writeResponse(&jsonrpc2.Response{
			ID:  req.ID,
			Err: jsonrpc2.NewError(jsonrpc2.CodeInternalError, "%s", err.Error()),
		})
		return
	}
	raw, err := internaljson.Marshal(result)
	if err != nil {
		c.writeResponse(&jsonrpc2.Response{
			ID:  req.ID,
			Err: jsonrpc2.NewError(jsonrpc2.CodeInternalError, "encoding result: %s", err.Error()),
		})
		return
	}
	c.writeResponse(&jsonrpc2.Response{ID: req.ID, Result: raw})
}

func (c *conn) dispatchNotification(n *jsonrpc2.Notification) {
	switch n.Method {
	case notificationCancelled:
		var params CancelledParams
		if err := c.decodeParams(n.Params, &params); err != nil {
			c.logger.Warn("mcp: malformed cancellation notification", "error", err)
			return
		}
		c.handleCancelled(&params)
		return
	case notificationProgress:
		var params ProgressNotificationParams
		if err := c.decodeParams(n.Params, &params); err != nil {
			c.logger.Warn("mcp: malformed progress notification", "error", err)
			return
		}
		c.handleProgress(&params)
		return
	}
	h, ok := c.handlers.lookupNotification(n.Method)
	if !ok {
		c.logger.Debug("mcp: no handler for notification", "method", n.Method)
		return
	}
	h(context.Background(), n.Method, n.Params)
}

func (c *conn) handleCancelled(params *CancelledParams) {
	key := requestIDKey(params.RequestID)
	c.mu.Lock()
	cancel, ok := c.inbound[key]
	c.mu.Unlock()
	if ok {
		cancel()
	}
}

func (c *conn) handleProgress(params *ProgressNotificationParams) {
	key := fmt.Sprint(params.ProgressToken)
	c.mu.Lock()
	call, ok := c.progressTo[key]
	c.mu.Unlock()
	if !ok {
		return
	}
	if call.haveProgress && params.Progress <= call.lastProgress {
		c.logger.Warn("mcp: non-monotonic progress", "token", key, "previous", call.lastProgress, "got", params.Progress)
	}
	call.lastProgress = params.Progress
	call.haveProgress = true
	if call.resetOnProgress {
		c.timeouts.reset(call.id)
	}
	if call.onProgress != nil {
		call.onProgress(*params)
	}
}

// requestIDKey renders a decoded notifications/cancelled requestId (an any
// holding either a JSON string or a JSON number unmarshaled to float64) as
// the same string form jsonrpc2.ID.String() uses for c.inbound's keys, so an
// inbound cancellation can be matched regardless of which wire type the
// peer's id was.
func requestIDKey(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case float64:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(v)
	}
}

func (c *conn) writeResponse(resp *jsonrpc2.Response) {
	frame, err := jsonrpc2.EncodeResponse(resp)
	if err != nil {
		c.logger.Error("mcp: encoding response", "error", err)
		return
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.transport.Write(context.Background(), frame); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Warn("mcp: writing response", "error", err)
	}
}

// call issues a request and blocks until a response, timeout, or ctx
// cancellation resolves it. result, if non-nil, receives the decoded
// result payload.
func (c *conn) call(ctx context.Context, method string, params Params, result Result, opts RequestOptions) error {
	id := c.ids.new()
	key := id.String()

	if opts.OnProgress != nil || opts.ResetTimeoutOnProgress {
		if params.GetProgressToken() == nil {
			params.SetProgressToken(key)
		}
	}
	token := fmt.Sprint(params.GetProgressToken())
	if params.GetProgressToken() == nil {
		token = ""
	}

	pc := &pendingCall{id: key, token: token, onProgress: opts.OnProgress, resetOnProgress: opts.ResetTimeoutOnProgress}
	c.mu.Lock()
	c.calls[key] = pc
	if token != "" {
		c.progressTo[token] = pc
	}
	c.mu.Unlock()

	respCh := c.pending.register(id)

	rawParams, err := internaljson.Marshal(params)
	if err != nil {
		c.pending.cancel(id)
		return fmt.Errorf("mcp: encoding params: %w", err)
	}
	frame, err := jsonrpc2.EncodeRequest(&jsonrpc2.Request{ID: id, Method: method, Params: rawParams})
	if err != nil {
		c.pending.cancel(id)
		return fmt.Errorf("mcp: encoding request: %w", err)
	}

	startedAt := time.Now()
	timedOut := make(chan bool, 1)
	c.timeouts.start(key, opts, func(hard bool) { timedOut <- hard })

	c.writeMu.Lock()
	writeErr := c.transport.Write(ctx, frame)
	c.writeMu.Unlock()
	if writeErr != nil {
		c.timeouts.stop(key)
		c.pending.cancel(id)
		return fmt.Errorf("mcp: writing request: %w", writeErr)
	}

	select {
	case resp := <-respCh:
		c.timeouts.stop(key)
		c.forgetCall(key, token)
		if resp.Err != nil {
			return remoteErrorFromWire(resp.Err)
		}
		if result != nil {
			if err := internaljson.Unmarshal(resp.Result, result); err != nil {
				return fmt.Errorf("mcp: decoding result: %w", err)
			}
		}
		return nil
	case hard := <-timedOut:
		c.pending.cancel(id)
		c.forgetCall(key, token)
		c.sendCancelled(ctx, id, "Timed out after "+time.Since(startedAt).String())
		return &RequestTimeoutError{Elapsed: time.Since(startedAt), Hard: hard}
	case <-ctx.Done():
		c.timeouts.stop(key)
		c.pending.cancel(id)
		c.forgetCall(key, token)
		c.sendCancelled(ctx, id, ctx.Err().Error())
		return ErrRequestCancelled
	case <-c.closed:
		c.timeouts.stop(key)
		c.forgetCall(key, token)
		return ErrConnectionClosed
	}
}

func (c *conn) forgetCall(key, token string) {
	c.mu.Lock()
	delete(c.calls, key)
	if token != "" {
		delete(c.progressTo, token)
	}
	c.mu.Unlock()
}

func (c *conn) sendCancelled(ctx context.Context, id jsonrpc2.ID, reason string) {
	params := &CancelledParams{RequestID: id.Value(), Reason: reason}
	_ = c.notify(context.Background(), notificationCancelled, params)
	_ = ctx
}

// notify sends a fire-and-forget notification.
func (c *conn) notify(ctx context.Context, method string, params Params) error {
	var raw internaljson.RawMessage
	var err error
	if params != nil {
		raw, err = internaljson.Marshal(params)
		if err != nil {
			return fmt.Errorf("mcp: encoding notification params: %w", err)
		}
	}
	frame, err := jsonrpc2.EncodeNotification(&jsonrpc2.Notification{Method: method, Params: raw})
	if err != nil {
		return fmt.Errorf("mcp: encoding notification: %w", err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.transport.Write(ctx, frame)
}

func (c *conn) notifyProgress(ctx context.Context, token any, msg string, progress, total float64) error {
	return c.notify(ctx, notificationProgress, &ProgressNotificationParams{
		ProgressToken: token,
		Message:       msg,
		Progress:      progress,
		Total:         total,
	})
}

func (c *conn) shutdown(cause error) {
	c.closeOnce.Do(func() {
		c.closeErr = cause
		close(c.closed)
		c.pending.failAll(jsonrpc2.NewError(jsonrpc2.CodeInternalError, "connection closed: %s", cause))
		c.transport.Close()
	})
}

func (c *conn) Close() error {
	c.shutdown(ErrConnectionClosed)
	c.wg.Wait()
	return nil
}
