// Package rpc defines the JSON-RPC 2.0 envelope this server speaks over the
// framed stdio transport (internal/transport), grounded on the teacher's
// JSONRPCMessage (src/server/protocol/jsonrpc.go) but trimmed to what a
// single in-process language server needs: no batching, no response
// correlation for outbound requests (spec §1 scopes the server to answering
// requests and pushing notifications, not initiating requests of its own
// besides window/logMessage-style notifications).
package rpc

import (
	"encoding/json"

	"solidity-lsp/internal/errcode"
)

// Version is the fixed jsonrpc field value every message on the wire uses.
const Version = "2.0"

// Message is the union of every shape a JSON-RPC 2.0 message over LSP can
// take. Exactly one of (Method set, ID nil) / (Method set, ID non-nil) /
// (Method empty, ID non-nil) holds for any well-formed message; callers use
// IsRequest/IsNotification/IsResponse to tell them apart.
type Message struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      interface{}      `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  interface{}      `json:"result,omitempty"`
	Error   *errcode.RPCError `json:"error,omitempty"`
}

// IsRequest reports whether m is a request awaiting a response.
func (m Message) IsRequest() bool { return m.Method != "" && m.ID != nil }

// IsNotification reports whether m is a fire-and-forget notification.
func (m Message) IsNotification() bool { return m.Method != "" && m.ID == nil }

// IsResponse reports whether m is a response to a previously sent request.
func (m Message) IsResponse() bool { return m.Method == "" && m.ID != nil }

// NewResponse builds a successful response envelope.
func NewResponse(id interface{}, result interface{}) Message {
	return Message{JSONRPC: Version, ID: id, Result: result}
}

// NewErrorResponse builds a failed response envelope.
func NewErrorResponse(id interface{}, rpcErr *errcode.RPCError) Message {
	return Message{JSONRPC: Version, ID: id, Error: rpcErr}
}

// NewNotification builds a server-to-client notification envelope, e.g.
// textDocument/publishDiagnostics or $/logTrace.
func NewNotification(method string, params interface{}) (Message, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return Message{}, err
	}
	return Message{JSONRPC: Version, Method: method, Params: raw}, nil
}

// ParamsInto unmarshals m.Params into v, treating a missing/null params
// field as "leave v at its zero value" rather than an error, matching how
// LSP messages without arguments (e.g. the shutdown request or the exit
// notification) are framed.
func (m Message) ParamsInto(v interface{}) error {
	if len(m.Params) == 0 || string(m.Params) == "null" {
		return nil
	}
	return json.Unmarshal(m.Params, v)
}

// ParamsMap unmarshals m.Params as a generic map, the shape every query
// handler in this server reads its request parameters through (see
// internal/query) instead of go.lsp.dev/protocol's typed param structs.
func (m Message) ParamsMap() (map[string]interface{}, error) {
	var out map[string]interface{}
	if len(m.Params) == 0 || string(m.Params) == "null" {
		return map[string]interface{}{}, nil
	}
	if err := json.Unmarshal(m.Params, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	return out, nil
}
