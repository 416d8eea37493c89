package transport_test

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/rpc"
	"solidity-lsp/internal/transport"
)

func TestSendThenReceiveRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	writer := transport.NewStdio(nil, &buf)
	require.NoError(t, writer.Send(rpc.NewResponse(float64(1), "ok")))

	reader := transport.NewStdio(&buf, nil)
	msg, err := reader.Receive()
	require.NoError(t, err)
	assert.Equal(t, "2.0", msg.JSONRPC)

	var result string
	require.NoError(t, msg.ParamsInto(&result)) // no params on a response; must not error
}

func TestReceiveReturnsEOFOnClosedStream(t *testing.T) {
	r := transport.NewStdio(strings.NewReader(""), nil)
	_, err := r.Receive()
	assert.Equal(t, io.EOF, err)
}

func TestReceiveRejectsMissingContentLength(t *testing.T) {
	r := transport.NewStdio(strings.NewReader("\r\n"), nil)
	_, err := r.Receive()
	require.Error(t, err)
}

func TestReceiveParsesFramedRequest(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	frame := "Content-Length: " + strconv.Itoa(len(body)) + "\r\n\r\n" + body
	r := transport.NewStdio(strings.NewReader(frame), nil)

	msg, err := r.Receive()
	require.NoError(t, err)
	assert.Equal(t, "initialize", msg.Method)
	assert.True(t, msg.IsRequest())
}
