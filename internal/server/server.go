// Package server implements the language server core (spec §4.7): the
// lifecycle state machine, request/notification dispatch table, and the
// per-request handlers that tie together the document store, compile
// driver and query handlers.
package server

import (
	"errors"
	"io"
	"sync"

	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/config"
	"solidity-lsp/internal/documents"
	"solidity-lsp/internal/errcode"
	"solidity-lsp/internal/rpc"
	"solidity-lsp/internal/tracelog"
	"solidity-lsp/internal/transport"
)

// ErrAbnormalExit is returned by Run when the message loop ended — the
// client's stdio channel closed, or an exit notification arrived — without a
// prior shutdown request (spec §4.7: "process exit status = 0 if shutdown
// was requested, else 1"). cli.Execute's existing error-to-os.Exit(1)
// handling turns this into the required nonzero status.
var ErrAbnormalExit = errors.New("server exited without a prior shutdown request")

type requestHandler func(*Server, map[string]interface{}) (interface{}, error)
type notificationHandler func(*Server, map[string]interface{})

// requestHandlers is the dispatch table for methods that expect a response,
// grounded on the teacher's own map[string]func(...) (...) dispatch table
// (internal/workspace/mock_lsp_server.go) and on the original solc language
// server's m_handlers table.
var requestHandlers = map[string]requestHandler{
	"initialize":                    (*Server).handleInitialize,
	"shutdown":                      (*Server).handleShutdown,
	"textDocument/definition":       (*Server).handleDefinition,
	"textDocument/implementation":   (*Server).handleImplementation,
	"textDocument/references":       (*Server).handleReferences,
	"textDocument/documentHighlight": (*Server).handleDocumentHighlight,
	"textDocument/hover":            (*Server).handleHover,
}

// notificationHandlers is the dispatch table for fire-and-forget methods.
var notificationHandlers = map[string]notificationHandler{
	"$/cancelRequest":                  (*Server).handleNoop,
	"cancelRequest":                    (*Server).handleNoop,
	"initialized":                      (*Server).handleNoop,
	"exit":                             (*Server).handleExit,
	"textDocument/didOpen":             (*Server).handleDidOpen,
	"textDocument/didChange":           (*Server).handleDidChange,
	"textDocument/didClose":            (*Server).handleDidClose,
	"workspace/didChangeConfiguration": (*Server).handleDidChangeConfiguration,
}

// Server is the language server core. All mutable fields are guarded by mu
// since requests, notifications and the log-trace sink can all touch them
// from the same goroutine sequentially, but tests exercise handlers
// directly and concurrently.
type Server struct {
	mu sync.Mutex

	state             State
	shutdownRequested bool
	basePath          string
	settings          config.Settings
	traceLevel        string

	documents *documents.Store
	driver    *compiler.Driver
	transport *transport.Stdio
	log       *tracelog.Logger
}

// ApplyFileDefaults seeds settings from an on-disk defaults file before
// initialize runs (spec §4 ambient stack: the config file "seeds Settings
// before initialize runs"). Calling it after initialize is harmless but
// pointless, since initializationOptions/didChangeConfiguration will just
// overwrite whatever it set.
func (s *Server) ApplyFileDefaults(defaults *config.FileDefaults) {
	s.mu.Lock()
	defer s.mu.Unlock()
	config.ApplyFileDefaults(&s.settings, defaults)
}

// New builds a Server around a transport and a compiler frontend factory.
// The frontend factory, rather than a shared instance, lets compiler.Driver
// install a fresh frontend on every compile (spec §4.3).
func New(t *transport.Stdio, newFrontend func() compiler.Frontend, log *tracelog.Logger) *Server {
	s := &Server{
		state:     StateUninitialized,
		settings:  config.Default(),
		documents: documents.NewStore(),
		transport: t,
		log:       log,
	}
	s.driver = compiler.NewDriver(newFrontend, log)
	if log != nil {
		log.AddSink(s.emitLogTrace)
	}
	return s
}

// Run reads and dispatches messages until the transport reports its channel
// closed or the client sends exit (spec §6, §4.7).
func (s *Server) Run() error {
	for {
		msg, err := s.transport.Receive()
		if err != nil {
			if err == io.EOF {
				return s.exitResult()
			}
			return err
		}

		s.dispatch(msg)

		s.mu.Lock()
		exited := s.state == StateExited
		s.mu.Unlock()
		if exited {
			return s.exitResult()
		}
	}
}

// exitResult reports whether the loop ended after a shutdown request, per
// spec §4.7's exit-status rule.
func (s *Server) exitResult() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdownRequested {
		return nil
	}
	return ErrAbnormalExit
}

func (s *Server) dispatch(msg rpc.Message) {
	switch {
	case msg.IsRequest():
		s.dispatchRequest(msg)
	case msg.IsNotification():
		s.dispatchNotification(msg)
	default:
		// A response to a request we never sent (or a malformed message).
		// This server never initiates requests of its own, so there is
		// nothing to correlate it to; ignore it.
	}
}

func (s *Server) dispatchRequest(msg rpc.Message) {
	handler, ok := requestHandlers[msg.Method]
	if !ok {
		s.reply(msg.ID, nil, errcode.New(errcode.MethodNotFound, msg.Method))
		return
	}

	if rpcErr := s.lifecycleGuard(msg.Method); rpcErr != nil {
		s.reply(msg.ID, nil, rpcErr)
		return
	}

	params, err := msg.ParamsMap()
	if err != nil {
		s.reply(msg.ID, nil, errcode.New(errcode.ParseError, err.Error()))
		return
	}

	result, err := handler(s, params)
	if err != nil {
		s.reply(msg.ID, nil, errcode.ToRPCError(err))
		return
	}
	s.reply(msg.ID, result, nil)
}

// lifecycleGuard implements spec §7's lifecycle taxonomy: every method other
// than "initialize" requires the server to be Running; once shutdown has
// been requested, no further requests are serviced.
func (s *Server) lifecycleGuard(method string) *errcode.RPCError {
	if method == "initialize" {
		return nil
	}

	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case StateUninitialized:
		return errcode.New(errcode.ServerNotInitialized, nil)
	case StateShutdownRequested, StateExited:
		return errcode.New(errcode.InvalidRequest, "shutdown has been requested")
	default:
		return nil
	}
}

func (s *Server) dispatchNotification(msg rpc.Message) {
	handler, ok := notificationHandlers[msg.Method]
	if !ok {
		// Unknown notifications are silently ignored: there is no response
		// channel to report an error on (spec §7).
		return
	}

	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if msg.Method != "exit" && state != StateRunning {
		return
	}

	params, err := msg.ParamsMap()
	if err != nil {
		if s.log != nil {
			s.log.Warn("failed to decode params for %s: %v", msg.Method, err)
		}
		return
	}
	handler(s, params)
}

func (s *Server) reply(id interface{}, result interface{}, rpcErr *errcode.RPCError) {
	var msg rpc.Message
	if rpcErr != nil {
		msg = rpc.NewErrorResponse(id, rpcErr)
	} else {
		msg = rpc.NewResponse(id, result)
	}
	if err := s.transport.Send(msg); err != nil && s.log != nil {
		s.log.Error("failed to send response: %v", err)
	}
}

func (s *Server) handleNoop(map[string]interface{}) {}
