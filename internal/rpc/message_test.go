package rpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solidity-lsp/internal/errcode"
	"solidity-lsp/internal/rpc"
)

func TestMessageClassification(t *testing.T) {
	request := rpc.Message{Method: "textDocument/hover", ID: float64(1)}
	assert.True(t, request.IsRequest())
	assert.False(t, request.IsNotification())

	notification := rpc.Message{Method: "textDocument/didOpen"}
	assert.True(t, notification.IsNotification())
	assert.False(t, notification.IsRequest())

	response := rpc.Message{ID: float64(1), Result: "ok"}
	assert.True(t, response.IsResponse())
}

func TestParamsMapDecodesObjectParams(t *testing.T) {
	msg := rpc.Message{Params: []byte(`{"textDocument":{"uri":"file:///a.sol"}}`)}
	params, err := msg.ParamsMap()
	require.NoError(t, err)
	doc, ok := params["textDocument"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "file:///a.sol", doc["uri"])
}

func TestParamsMapHandlesMissingParams(t *testing.T) {
	msg := rpc.Message{}
	params, err := msg.ParamsMap()
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestNewErrorResponseCarriesRPCError(t *testing.T) {
	resp := rpc.NewErrorResponse(float64(2), errcode.New(errcode.MethodNotFound, nil))
	require.NotNil(t, resp.Error)
	assert.Equal(t, errcode.MethodNotFound, resp.Error.Code)
}
