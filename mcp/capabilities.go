// Copyright 2026 The MCP Core Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp

import "log/slog"

// inferServerCapabilities derives a ServerCapabilities from which methods
// are actually registered in reg, then lets explicit override any field it
// sets. Experimental is always taken from explicit: there is no handler
// signal that implies an experimental capability. A mismatch between what
// a capability advertises and what handlers actually exist is logged, not
// rejected: the peer is still told the truth about what it can call.
func inferServerCapabilities(reg *handlerRegistry, explicit *ServerCapabilities, logger *slog.Logger) *ServerCapabilities {
	caps := &ServerCapabilities{}

	_, hasTools := reg.building[methodListTools]
	if hasTools {
		caps.Tools = &ToolCapabilities{}
		_, caps.Tools.ListChanged = reg.building[notificationToolListChanged]
	}
	_, hasPrompts := reg.building[methodListPrompts]
	if hasPrompts {
		caps.Prompts = &PromptCapabilities{}
		_, caps.Prompts.ListChanged = reg.building[notificationPromptListChanged]
	}
	_, hasResources := reg.building[methodListResources]
	if hasResources {
		caps.Resources = &ResourceCapabilities{}
		_, caps.Resources.ListChanged = reg.building[notificationResourceListChanged]
		_, caps.Resources.Subscribe = reg.building[methodSubscribe]
	}
	// methodSetLevel is always registered (logging/setLevel gates
	// ServerSession.Log intrinsically), so logging is always inferred; an
	// explicit override below can replace it but never clears it.
	_, hasLogging := reg.building[methodSetLevel]
	if hasLogging {
		caps.Logging = &LoggingCapabilities{}
	}
	_, hasCompletions := reg.building[methodComplete]
	if hasCompletions {
		caps.Completions = &CompletionCapabilities{}
	}

	if explicit != nil {
		if explicit.Tools != nil {
			caps.Tools = explicit.Tools
		}
		if explicit.Prompts != nil {
			caps.Prompts = explicit.Prompts
		}
		if explicit.Resources != nil {
			caps.Resources = explicit.Resources
		}
		if explicit.Logging != nil {
			caps.Logging = explicit.Logging
		}
		if explicit.Completions != nil {
			caps.Completions = explicit.Completions
		}
		caps.Experimental = explicit.Experimental
	}

	warnCapabilityMismatch(logger, "tools", caps.Tools != nil, hasTools)
	warnCapabilityMismatch(logger, "prompts", caps.Prompts != nil, hasPrompts)
	warnCapabilityMismatch(logger, "resources", caps.Resources != nil, hasResources)
	warnCapabilityMismatch(logger, "logging", caps.Logging != nil, hasLogging)
	warnCapabilityMismatch(logger, "completions", caps.Completions != nil, hasCompletions)
	return caps
}

// warnCapabilityMismatch logs when a capability is advertised with no
// matching handler, or a handler is registered for a capability that
// ended up not advertised. The merges in this file only ever replace an
// inferred capability with a non-nil explicit one, so from them only the
// first case arises.
func warnCapabilityMismatch(logger *slog.Logger, name string, advertised, hasHandler bool) {
	if logger == nil {
		return
	}
	switch {
	case advertised && !hasHandler:
		logger.Warn("mcp: capability advertised with no registered handler", "capability", name)
	case hasHandler && !advertised:
		logger.Warn("mcp: handler registered for a capability that is not advertised", "capability", name)
	}
}

// inferClientCapabilities mirrors inferServerCapabilities for the client
// side. Tasks has no inferable handler signal (no task methods are
// implemented in this module) and so is always taken from explicit.
func inferClientCapabilities(reg *handlerRegistry, explicit *ClientCapabilities, logger *slog.Logger) *ClientCapabilities {
	caps := &ClientCapabilities{}

	_, hasRoots := reg.building[methodListRoots]
	if hasRoots {
		caps.Roots = &RootCapabilities{}
		_, caps.Roots.ListChanged = reg.building[notificationRootsListChanged]
	}
	_, hasSampling := reg.building[methodCreateMessage]
	if hasSampling {
		caps.Sampling = &SamplingCapabilities{}
	}
	_, hasElicitation := reg.building[methodElicit]
	if hasElicitation {
		caps.Elicitation = &ElicitationCapabilities{}
	}

	if explicit != nil {
		if explicit.Roots != nil {
			caps.Roots = explicit.Roots
		}
		if explicit.Sampling != nil {
			caps.Sampling = explicit.Sampling
		}
		if explicit.Elicitation != nil {
			caps.Elicitation = explicit.Elicitation
		}
		caps.Tasks = explicit.Tasks
		caps.Experimental = explicit.Experimental
	}

	warnCapabilityMismatch(logger, "roots", caps.Roots != nil, hasRoots)
	warnCapabilityMismatch(logger, "sampling", caps.Sampling != nil, hasSampling)
	warnCapabilityMismatch(logger, "elicitation", caps.Elicitation != nil, hasElicitation)
	return caps
}
