package server

import (
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/errcode"
	"solidity-lsp/internal/pathutil"
	"solidity-lsp/internal/version"
)

// handleInitialize implements the initialize request (spec §4.7). It is the
// one request the lifecycle guard lets through in every state, but only
// transitions Uninitialized -> Running: a second initialize is rejected.
//
// spec §9 flags the original core's handling of rootPath as buggy: a local
// variable named "rootPath" bound to the JSON value _args["rootPath"]
// shadows the outer std::string rootPath the function actually returns,
// silently discarding the fallback path whenever rootUri is absent. This
// implementation reads rootUri first and only falls back to a distinctly
// named rootPathValue when it's actually needed.
func (s *Server) handleInitialize(params map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	if s.state != StateUninitialized {
		s.mu.Unlock()
		return nil, errcode.NewLifecycleError(errcode.InvalidRequest)
	}
	s.mu.Unlock()

	rootPath := ""
	if rootURI, ok := params["rootUri"].(string); ok {
		if p, ok := pathutil.FromURI(rootURI); ok {
			rootPath = p
		}
	}
	if rootPath == "" {
		if rootPathValue, ok := params["rootPath"].(string); ok {
			rootPath = rootPathValue
		}
	}

	if trace, ok := params["trace"].(string); ok {
		s.setTraceLevel(trace)
	}

	s.mu.Lock()
	s.basePath = rootPath
	s.mu.Unlock()

	if opts, ok := params["initializationOptions"].(map[string]interface{}); ok {
		s.mu.Lock()
		settings := s.settings
		s.mu.Unlock()
		// Ingest may log, and the $/logTrace sink takes s.mu.
		config.Ingest(&settings, opts, s.log)
		s.mu.Lock()
		s.settings = settings
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.state = StateRunning
	s.mu.Unlock()

	return capabilitiesResult(version.ServerName, version.GetVersion()), nil
}

// handleShutdown implements the shutdown request (spec §4.7): transitions
// Running -> ShutdownRequested and acknowledges with a null result. It does
// not itself terminate the process — that is exit's job. shutdownRequested
// latches independently of state so handleExit can still tell a proper
// shutdown->exit sequence apart from a bare exit once it has overwritten
// state to Exited.
func (s *Server) handleShutdown(map[string]interface{}) (interface{}, error) {
	s.mu.Lock()
	s.state = StateShutdownRequested
	s.shutdownRequested = true
	s.mu.Unlock()
	return nil, nil
}

// handleExit implements the exit notification: transitions to Exited, which
// Run() checks after every dispatched message to end its loop.
func (s *Server) handleExit(map[string]interface{}) {
	s.mu.Lock()
	s.state = StateExited
	s.mu.Unlock()
}

func (s *Server) setTraceLevel(level string) {
	switch level {
	case "off", "messages", "verbose":
		s.mu.Lock()
		s.traceLevel = level
		s.mu.Unlock()
	}
}

// handleDidChangeConfiguration implements workspace/didChangeConfiguration
// (spec §4.8): re-ingests the settings object through the same routine
// initializationOptions uses.
func (s *Server) handleDidChangeConfiguration(params map[string]interface{}) {
	settings, ok := params["settings"].(map[string]interface{})
	if !ok {
		return
	}
	s.mu.Lock()
	current := s.settings
	s.mu.Unlock()
	// Ingest may log, and the $/logTrace sink takes s.mu.
	config.Ingest(&current, settings, s.log)
	s.mu.Lock()
	s.settings = current
	s.mu.Unlock()
}
