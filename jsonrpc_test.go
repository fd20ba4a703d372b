// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"encoding/json"
	"testing"
)

func TestDecodeRequestSendTask(t *testing.T) {
	body := []byte(`{
		"jsonrpc": "2.0",
		"id": "req-1",
		"params": {
			"id": "t1",
			"sessionId": "s1",
			"message": {"role": "user", "parts": [{"type": "text", "text": "hi"}]}
		}
	}`)

	req, id, rpcErr := DecodeRequest(body)
	if rpcErr != nil {
		t.Fatalf("unexpected error: %v", rpcErr)
	}
	if id != "req-1" {
		t.Errorf("expected id %q, got %v", "req-1", id)
	}

	send, ok := req.(*SendTaskRequest)
	if !ok {
		t.Fatalf("expected *SendTaskRequest, got %T", req)
	}
	if send.Params.ID != "t1" || send.Params.SessionID != "s1" {
		t.Errorf("unexpected params: %+v", send.Params)
	}
	if got := send.Params.Message.FirstText(); got != "hi" {
		t.Errorf("expected message text %q, got %q", "hi", got)
	}
}

func TestDecodeRequestSendTaskAssignsSessionID(t *testing.T) {
	body := []byte(`{
		"id": "req-1",
		"params": {
			"id": "t1",
			"message": {"role": "user", "parts": [{"type": "text", "text": "hi"}]}
		}
	}`)

	req, _, rpcErr := DecodeRequest(body)
	if rpcErr != nil {
		t.Fatalf("unexpected error: %v", rpcErr)
	}
	send := req.(*SendTaskRequest)
	if send.Params.SessionID == "" {
		t.Error("expected a session id to be assigned")
	}
}

func TestDecodeRequestGetTask(t *testing.T) {
	body := []byte(`{
		"jsonrpc": "2.0",
		"id": 7,
		"params": {"id": "t1", "historyLength": 2}
	}`)

	req, id, rpcErr := DecodeRequest(body)
	if rpcErr != nil {
		t.Fatalf("unexpected error: %v", rpcErr)
	}
	if got, ok := id.(float64); !ok || got != 7 {
		t.Errorf("expected numeric id 7, got %v", id)
	}

	get, ok := req.(*GetTaskRequest)
	if !ok {
		t.Fatalf("expected *GetTaskRequest, got %T", req)
	}
	if get.Params.ID != "t1" {
		t.Errorf("expected task id %q, got %q", "t1", get.Params.ID)
	}
	if get.Params.HistoryLength == nil || *get.Params.HistoryLength != 2 {
		t.Errorf("expected historyLength 2, got %v", get.Params.HistoryLength)
	}
}

func TestDecodeRequestErrors(t *testing.T) {
	tests := map[string]struct {
		body     string
		wantCode int
		wantID   any
	}{
		"malformed json": {
			body:     `{not json`,
			wantCode: ParseErrorCode,
			wantID:   nil,
		},
		"missing params": {
			body:     `{"jsonrpc": "2.0", "id": "req-9"}`,
			wantCode: InvalidRequestErrorCode,
			wantID:   "req-9",
		},
		"unrecognized shape": {
			body:     `{"jsonrpc": "2.0", "id": "req-9", "params": {"query": "what"}}`,
			wantCode: UnsupportedMethodErrorCode,
			wantID:   "req-9",
		},
		"send task without message role": {
			body:     `{"id": "req-9", "params": {"id": "t1", "message": {"parts": []}}}`,
			wantCode: InvalidRequestErrorCode,
			wantID:   "req-9",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req, id, rpcErr := DecodeRequest([]byte(tt.body))
			if req != nil {
				t.Errorf("expected no request, got %T", req)
			}
			if rpcErr == nil {
				t.Fatal("expected an error")
			}
			if rpcErr.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, rpcErr.Code)
			}
			if id != tt.wantID {
				t.Errorf("expected id %v, got %v", tt.wantID, id)
			}
		})
	}
}

func TestResponseEnvelopeMutualExclusion(t *testing.T) {
	resp := NewSendTaskResponse("req-1", &Task{
		ID:      "t1",
		Status:  NewTaskStatus(TaskStateCompleted),
		History: []Message{NewUserTextMessage("hi")},
	})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := decoded["error"]; ok {
		t.Error("success response must not carry an error field")
	}
	if decoded["id"] != "req-1" {
		t.Errorf("expected id %q, got %v", "req-1", decoded["id"])
	}
	if _, ok := decoded["result"]; !ok {
		t.Error("success response must carry a result")
	}
}

func TestErrorResponseNullID(t *testing.T) {
	resp := JSONRPCResponse{
		JSONRPCMessage: NewJSONRPCMessage(nil),
		Error:          NewParseError("bad body"),
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	id, present := decoded["id"]
	if !present {
		t.Fatal("error response must carry an id field")
	}
	if id != nil {
		t.Errorf("expected null id, got %v", id)
	}
}

func TestJSONRPCErrorError(t *testing.T) {
	err := NewTaskNotFoundError()
	if err.Code != TaskNotFoundErrorCode {
		t.Errorf("expected code %d, got %d", TaskNotFoundErrorCode, err.Code)
	}
	if err.Message != "Task not found" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}
}
