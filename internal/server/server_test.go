package server

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/compiler"
	"solidity-lsp/internal/compiler/refimpl"
	"solidity-lsp/internal/errcode"
	"solidity-lsp/internal/rpc"
	"solidity-lsp/internal/transport"
)

func newTestServer() (*Server, *bytes.Buffer) {
	var out bytes.Buffer
	tr := transport.NewStdio(nil, &out)
	s := New(tr, func() compiler.Frontend { return refimpl.New() }, nil)
	return s, &out
}

func frame(body string) string {
	return "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
}

func newRunnableServer(input string) *Server {
	tr := transport.NewStdio(strings.NewReader(input), io.Discard)
	return New(tr, func() compiler.Frontend { return refimpl.New() }, nil)
}

func drainMessages(t *testing.T, out *bytes.Buffer) []rpc.Message {
	t.Helper()
	reader := transport.NewStdio(bytes.NewReader(out.Bytes()), io.Discard)
	var messages []rpc.Message
	for {
		msg, err := reader.Receive()
		if err != nil {
			break
		}
		messages = append(messages, msg)
	}
	return messages
}

func TestRequestBeforeInitializeIsRejected(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "textDocument/hover", ID: float64(1)})

	messages := drainMessages(t, out)
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].Error)
	assert.Equal(t, errcode.ServerNotInitialized, messages[0].Error.Code)
}

func TestInitializeTransitionsToRunningAndReturnsCapabilities(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(1), Params: []byte(`{}`)})

	assert.Equal(t, StateRunning, s.state)

	messages := drainMessages(t, out)
	require.Len(t, messages, 1)
	require.Nil(t, messages[0].Error)
	require.NotNil(t, messages[0].Result)
}

func TestDuplicateInitializeIsRejected(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(1), Params: []byte(`{}`)})
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(2), Params: []byte(`{}`)})

	messages := drainMessages(t, out)
	require.Len(t, messages, 2)
	assert.Nil(t, messages[0].Error)
	require.NotNil(t, messages[1].Error)
	assert.Equal(t, errcode.InvalidRequest, messages[1].Error.Code)
}

func TestShutdownThenRequestIsRejected(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(1), Params: []byte(`{}`)})
	s.dispatchRequest(rpc.Message{Method: "shutdown", ID: float64(2)})
	s.dispatchRequest(rpc.Message{Method: "textDocument/hover", ID: float64(3), Params: []byte(`{}`)})

	messages := drainMessages(t, out)
	require.Len(t, messages, 3)
	assert.Nil(t, messages[1].Error) // shutdown itself succeeds
	require.NotNil(t, messages[2].Error)
	assert.Equal(t, errcode.InvalidRequest, messages[2].Error.Code)
}

func TestExitNotificationEndsRunLoop(t *testing.T) {
	s, _ := newTestServer()
	s.dispatchNotification(rpc.Message{Method: "exit"})
	assert.Equal(t, StateExited, s.state)
}

func TestNotificationsAfterShutdownAreDroppedExceptExit(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(1), Params: []byte(`{"rootUri":"file:///work"}`)})
	s.dispatchRequest(rpc.Message{Method: "shutdown", ID: float64(2)})
	out.Reset()

	s.dispatchNotification(rpc.Message{
		Method: "textDocument/didOpen",
		Params: []byte(`{"textDocument":{"uri":"file:///work/c.sol","text":"contract C {\n}"}}`),
	})

	messages := drainMessages(t, out)
	assert.Empty(t, messages, "didOpen after shutdown must not publish diagnostics")
	assert.Equal(t, StateShutdownRequested, s.state)

	s.dispatchNotification(rpc.Message{Method: "exit"})
	assert.Equal(t, StateExited, s.state)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(1), Params: []byte(`{"rootUri":"file:///work"}`)})
	out.Reset()

	s.dispatchNotification(rpc.Message{
		Method: "textDocument/didOpen",
		Params: []byte(`{"textDocument":{"uri":"file:///work/c.sol","text":"contract C {\n    function f( {\n    }\n}"}}`),
	})

	messages := drainMessages(t, out)
	require.Len(t, messages, 1)
	assert.Equal(t, "textDocument/publishDiagnostics", messages[0].Method)
}

func TestDidOpenIgnoresNonSourceExtensions(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "initialize", ID: float64(1), Params: []byte(`{"rootUri":"file:///work"}`)})
	out.Reset()

	s.dispatchNotification(rpc.Message{
		Method: "textDocument/didOpen",
		Params: []byte(`{"textDocument":{"uri":"file:///work/README.md","text":"# hello"}}`),
	})

	messages := drainMessages(t, out)
	assert.Empty(t, messages, "opening a non-source file must not trigger a compile/publish")

	_, ok := s.documents.Get("README.md")
	assert.False(t, ok, "a non-source document must never be tracked in the store")
}

func TestUnknownMethodReturnsMethodNotFound(t *testing.T) {
	s, out := newTestServer()
	s.dispatchRequest(rpc.Message{Method: "textDocument/completion", ID: float64(1)})

	messages := drainMessages(t, out)
	require.Len(t, messages, 1)
	require.NotNil(t, messages[0].Error)
	assert.Equal(t, errcode.MethodNotFound, messages[0].Error.Code)
}

func TestRunReturnsNilWhenExitFollowsShutdown(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		frame(`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`) +
		frame(`{"jsonrpc":"2.0","method":"exit"}`)
	s := newRunnableServer(input)

	assert.NoError(t, s.Run())
	assert.Equal(t, StateExited, s.state)
}

func TestRunReturnsAbnormalExitWhenExitPrecedesShutdown(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`) +
		frame(`{"jsonrpc":"2.0","method":"exit"}`)
	s := newRunnableServer(input)

	assert.Equal(t, ErrAbnormalExit, s.Run())
	assert.Equal(t, StateExited, s.state)
}

func TestRunReturnsAbnormalExitWhenClientDisconnectsWithoutShutdown(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)
	s := newRunnableServer(input)

	assert.Equal(t, ErrAbnormalExit, s.Run())
}
