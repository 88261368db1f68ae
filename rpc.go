package dispatcher

import (
	"encoding/json"

	"github.com/stellaranchor/action-dispatcher/errors"
)

// RPCRequest is the JSON-RPC 2.0 envelope an operator sends to invoke an
// action.
type RPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// RPCResponse is the JSON-RPC 2.0 envelope returned for a request. Result
// and Error are mutually exclusive.
type RPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// rpcCode maps a dispatcher error Code to its JSON-RPC numeric code.
func rpcCode(code errors.Code) int {
	switch code {
	case errors.InvalidParams:
		return -32602
	case errors.InternalError:
		return -32603
	case errors.InvalidRequest:
		return -32600
	case errors.TransactionNotFound:
		return -32001
	case errors.BadRequest:
		return -32002
	case errors.Conflict:
		return -32005
	default:
		return -32603
	}
}

// NewRPCError converts a dispatcher error into a JSON-RPC error object. Any
// error that is not a *errors.DispatchError is treated as an internal
// error; its raw message is never echoed to the caller.
func NewRPCError(err error) *RPCError {
	var de *errors.DispatchError
	if errors.As(err, &de) {
		return &RPCError{Code: rpcCode(de.Code), Message: de.Message}
	}
	return &RPCError{Code: rpcCode(errors.InternalError), Message: "internal error"}
}
