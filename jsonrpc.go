// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"encoding/json"
	"fmt"
)

// JSONRPCVersion is the JSON-RPC version spoken on the task endpoint.
const JSONRPCVersion = "2.0"

// JSONRPCMessage is the base structure for all JSON-RPC 2.0 messages.
type JSONRPCMessage struct {
	// JSONRPC version, always "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID correlates a response with its request. String or number; null
	// in a response when the request id could not be determined.
	ID any `json:"id"`
}

// NewJSONRPCMessage creates a new [JSONRPCMessage] with the given id.
func NewJSONRPCMessage(id any) JSONRPCMessage {
	return JSONRPCMessage{JSONRPC: JSONRPCVersion, ID: id}
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	// Code is the error code.
	Code int `json:"code"`
	// Message is a short description of the error.
	Message string `json:"message"`
	// Data contains optional additional error details.
	Data any `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// JSONRPCResponse represents a JSON-RPC 2.0 response. Result and Error
// are mutually exclusive.
type JSONRPCResponse struct {
	JSONRPCMessage

	Result any           `json:"result,omitempty"`
	Error  *JSONRPCError `json:"error,omitempty"`
}

// SendTaskRequest represents a request to initiate or continue a task.
type SendTaskRequest struct {
	JSONRPCMessage

	Params TaskSendParams `json:"params"`
}

// SendTaskResponse represents a response to a [SendTaskRequest].
type SendTaskResponse struct {
	JSONRPCMessage

	Result *Task         `json:"result,omitempty"`
	Error  *JSONRPCError `json:"error,omitempty"`
}

// NewSendTaskRequest creates a new [SendTaskRequest] with a fresh
// request id.
func NewSendTaskRequest(params TaskSendParams) *SendTaskRequest {
	return &SendTaskRequest{
		JSONRPCMessage: NewJSONRPCMessage(NewRequestID()),
		Params:         params,
	}
}

// NewSendTaskResponse creates a successful [SendTaskResponse].
func NewSendTaskResponse(id any, result *Task) *SendTaskResponse {
	return &SendTaskResponse{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Result:         result,
	}
}

// GetTaskRequest represents a request to retrieve the current state of a
// task.
type GetTaskRequest struct {
	JSONRPCMessage

	Params TaskQueryParams `json:"params"`
}

// GetTaskResponse represents a response to a [GetTaskRequest].
type GetTaskResponse struct {
	JSONRPCMessage

	Result *Task         `json:"result,omitempty"`
	Error  *JSONRPCError `json:"error,omitempty"`
}

// NewGetTaskRequest creates a new [GetTaskRequest] with a fresh request id.
func NewGetTaskRequest(params TaskQueryParams) *GetTaskRequest {
	return &GetTaskRequest{
		JSONRPCMessage: NewJSONRPCMessage(NewRequestID()),
		Params:         params,
	}
}

// NewGetTaskResponse creates a successful [GetTaskResponse].
func NewGetTaskResponse(id any, result *Task) *GetTaskResponse {
	return &GetTaskResponse{
		JSONRPCMessage: NewJSONRPCMessage(id),
		Result:         result,
	}
}

// Standard JSON-RPC 2.0 error codes.
const (
	// ParseErrorCode indicates an invalid JSON payload.
	ParseErrorCode = -32700
	// InvalidRequestErrorCode indicates a request payload validation error.
	InvalidRequestErrorCode = -32600
	// UnsupportedMethodErrorCode indicates the request shape matched no
	// recognized method.
	UnsupportedMethodErrorCode = -32601
	// InvalidParamsErrorCode indicates invalid method parameters.
	InvalidParamsErrorCode = -32602
	// InternalErrorCode indicates an internal server error.
	InternalErrorCode = -32603
)

// A2A specific error codes.
const (
	// TaskNotFoundErrorCode indicates the specified task id was not found.
	TaskNotFoundErrorCode = -32001
)

// NewParseError creates a ParseError for a malformed request body.
func NewParseError(detail string) *JSONRPCError {
	return &JSONRPCError{
		Code:    ParseErrorCode,
		Message: "Invalid JSON payload",
		Data:    detail,
	}
}

// NewInvalidRequestError creates an InvalidRequest error.
func NewInvalidRequestError(detail string) *JSONRPCError {
	return &JSONRPCError{
		Code:    InvalidRequestErrorCode,
		Message: "Request payload validation error",
		Data:    detail,
	}
}

// NewUnsupportedMethodError creates an UnsupportedMethod error.
func NewUnsupportedMethodError() *JSONRPCError {
	return &JSONRPCError{
		Code:    UnsupportedMethodErrorCode,
		Message: "Unsupported method",
	}
}

// NewInternalError creates an InternalError carrying the failure's message.
func NewInternalError(message string) *JSONRPCError {
	return &JSONRPCError{
		Code:    InternalErrorCode,
		Message: message,
	}
}

// NewTaskNotFoundError creates a TaskNotFound error.
func NewTaskNotFoundError() *JSONRPCError {
	return &JSONRPCError{
		Code:    TaskNotFoundErrorCode,
		Message: "Task not found",
	}
}

// A2ARequest is the union of recognized task-endpoint requests:
// [*SendTaskRequest] or [*GetTaskRequest].
type A2ARequest interface {
	isA2ARequest()
}

func (*SendTaskRequest) isA2ARequest() {}
func (*GetTaskRequest) isA2ARequest()  {}

// rawEnvelope is the shape-agnostic first pass over a request body.
type rawEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Params  json.RawMessage `json:"params"`
}

// paramsProbe distinguishes the recognized method shapes. The endpoint
// carries no explicit method string; a params object with a message is a
// send-task, one with only a task id is a get-task.
type paramsProbe struct {
	ID      string          `json:"id"`
	Message json.RawMessage `json:"message"`
}

// DecodeRequest validates a request body against the closed set of
// recognized method shapes and returns the decoded request.
//
// The returned id is best-effort: DecodeRequest extracts it even when
// the rest of the body fails validation so that error responses can echo
// it, and returns nil when it could not be determined.
func DecodeRequest(body []byte) (A2ARequest, any, *JSONRPCError) {
	var env rawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, nil, NewParseError(err.Error())
	}

	if len(env.Params) == 0 {
		return nil, env.ID, NewInvalidRequestError("missing params")
	}

	var probe paramsProbe
	if err := json.Unmarshal(env.Params, &probe); err != nil {
		return nil, env.ID, NewInvalidRequestError(err.Error())
	}

	switch {
	case len(probe.Message) > 0 && string(probe.Message) != "null":
		var params TaskSendParams
		if err := json.Unmarshal(env.Params, &params); err != nil {
			return nil, env.ID, NewInvalidRequestError(err.Error())
		}
		if err := params.Validate(); err != nil {
			return nil, env.ID, NewInvalidRequestError(err.Error())
		}
		return &SendTaskRequest{
			JSONRPCMessage: NewJSONRPCMessage(env.ID),
			Params:         params,
		}, env.ID, nil

	case probe.ID != "":
		var params TaskQueryParams
		if err := json.Unmarshal(env.Params, &params); err != nil {
			return nil, env.ID, NewInvalidRequestError(err.Error())
		}
		if err := params.Validate(); err != nil {
			return nil, env.ID, NewInvalidRequestError(err.Error())
		}
		return &GetTaskRequest{
			JSONRPCMessage: NewJSONRPCMessage(env.ID),
			Params:         params,
		}, env.ID, nil

	default:
		return nil, env.ID, NewUnsupportedMethodError()
	}
}
