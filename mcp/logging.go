// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// logLevelSeverity orders LoggingLevel the way RFC 5424 syslog severities
// do, which is the ordering the MCP logging/setLevel method borrows.
var logLevelSeverity = map[LoggingLevel]int{
	LoggingLevelDebug:     0,
	LoggingLevelInfo:      1,
	LoggingLevelNotice:    2,
	LoggingLevelWarning:   3,
	LoggingLevelError:     4,
	LoggingLevelCritical:  5,
	LoggingLevelAlert:     6,
	LoggingLevelEmergency: 7,
}

// logGate tracks the minimum LoggingLevel a server session will forward to
// its peer as a logging/message notification, as set by the peer's most
// recent logging/setLevel call. It starts open (every level passes) until
// the peer narrows it, matching a host that hasn't called setLevel yet
// expecting to see everything.
type logGate struct {
	level atomic.Value // LoggingLevel
}

func newLogGate() *logGate {
	g := &logGate{}
	g.level.Store(LoggingLevelDebug)
	return g
}

func (g *logGate) set(level LoggingLevel) {
	if _, ok := logLevelSeverity[level]; !ok {
		return
	}
	g.level.Store(level)
}

func (g *logGate) allows(level LoggingLevel) bool {
	cur, _ := g.level.Load().(LoggingLevel)
	want, ok := logLevelSeverity[level]
	if !ok {
		return true
	}
	floor, ok := logLevelSeverity[cur]
	if !ok {
		return true
	}
	return want >= floor
}

// logMessage sends a logging/message notification to the client, unless the
// client has raised its minimum level above params.Level via
// logging/setLevel, in which case the message is dropped silently (the
// same outcome as if the server had never been asked to emit it).
func (s *ServerSession) logMessage(ctx context.Context, params *LoggingMessageParams) error {
	if s.logging != nil && !s.logging.allows(params.Level) {
		return nil
	}
	if s.conn.logger != nil {
		s.conn.logger.Log(ctx, slogLevel(params.Level), "mcp: logging/message", "logger", params.Logger, "data", params.Data)
	}
	return s.conn.notify(ctx, notificationLoggingMessage, params)
}

// Logf is a convenience over Log/logMessage for handlers that build log
// messages the way they'd build a slog record: a level, a short message,
// and a logger-name-shaped source.
func (s *ServerSession) Logf(ctx context.Context, level LoggingLevel, logger, msg string) error {
	return s.logMessage(ctx, &LoggingMessageParams{Level: level, Logger: logger, Data: msg})
}

// slogLevel maps an MCP LoggingLevel to the nearest slog.Level so a
// logging/message notification can also be mirrored to the session's own
// structured logger, not just sent over the wire.
func slogLevel(l LoggingLevel) slog.Level {
	switch l {
	case LoggingLevelDebug:
		return slog.LevelDebug
	case LoggingLevelInfo, LoggingLevelNotice:
		return slog.LevelInfo
	case LoggingLevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
