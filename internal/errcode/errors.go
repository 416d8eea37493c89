package errcode

import "fmt"

// RPCError is the wire shape of a JSON-RPC error object.
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New builds an RPCError using the canonical message for code, ignoring any
// caller-supplied message override so error text stays consistent across
// call sites.
func New(code int, data interface{}) *RPCError {
	return &RPCError{Code: code, Message: MessageFor(code), Data: data}
}

// ValidationError represents a malformed or missing request parameter.
type ValidationError struct {
	Parameter string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Parameter, e.Message)
}

// NewValidationError constructs a ValidationError.
func NewValidationError(parameter, message string) *ValidationError {
	return &ValidationError{Parameter: parameter, Message: message}
}

// LifecycleError represents a request received in the wrong server lifecycle
// state (spec §7, taxonomy item 3).
type LifecycleError struct {
	Code    int
	Message string
}

func (e *LifecycleError) Error() string { return e.Message }

// NewLifecycleError builds a LifecycleError carrying one of
// ServerNotInitialized or InvalidRequest.
func NewLifecycleError(code int) *LifecycleError {
	return &LifecycleError{Code: code, Message: MessageFor(code)}
}

// ToRPCError converts any error returned by a handler into a wire-ready
// RPCError, defaulting to InternalError for values that carry no LSP-specific
// classification. Compile errors are never routed through this path — they
// are always delivered as publishDiagnostics (spec §7, taxonomy item 5).
func ToRPCError(err error) *RPCError {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *ValidationError:
		return &RPCError{Code: InvalidParams, Message: e.Error()}
	case *LifecycleError:
		return &RPCError{Code: e.Code, Message: e.Message}
	default:
		return &RPCError{Code: InternalError, Message: err.Error()}
	}
}
