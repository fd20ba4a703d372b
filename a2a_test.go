// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewUserTextMessage(t *testing.T) {
	msg := NewUserTextMessage("hi")
	if msg.Role != RoleUser {
		t.Errorf("expected role %q, got %q", RoleUser, msg.Role)
	}
	if got := msg.FirstText(); got != "hi" {
		t.Errorf("expected first text %q, got %q", "hi", got)
	}
	if err := msg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestMessageValidate(t *testing.T) {
	tests := map[string]struct {
		msg     Message
		wantErr string
	}{
		"valid agent message": {
			msg: NewAgentTextMessage("hello"),
		},
		"bad role": {
			msg:     Message{Role: "system", Parts: []Part{NewTextPart("x")}},
			wantErr: "invalid message role",
		},
		"no parts": {
			msg:     Message{Role: RoleUser},
			wantErr: "at least one part",
		},
		"unknown part type": {
			msg:     Message{Role: RoleUser, Parts: []Part{{Type: "image"}}},
			wantErr: "unsupported part type",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFirstTextSkipsNonText(t *testing.T) {
	msg := Message{
		Role: RoleAgent,
		Parts: []Part{
			{Type: "image"},
			NewTextPart("found"),
		},
	}
	if got := msg.FirstText(); got != "found" {
		t.Errorf("expected %q, got %q", "found", got)
	}

	empty := Message{Role: RoleAgent, Parts: []Part{{Type: "image"}}}
	if got := empty.FirstText(); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
}

func TestTaskSendParamsValidate(t *testing.T) {
	params := TaskSendParams{
		ID:      "t1",
		Message: NewUserTextMessage("hi"),
	}
	if err := params.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.SessionID == "" {
		t.Error("expected a session id to be assigned")
	}

	pinned := TaskSendParams{
		ID:        "t2",
		SessionID: "session-1",
		Message:   NewUserTextMessage("hi"),
	}
	if err := pinned.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pinned.SessionID != "session-1" {
		t.Errorf("expected caller-supplied session id to survive, got %q", pinned.SessionID)
	}

	missing := TaskSendParams{Message: NewUserTextMessage("hi")}
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing task ID")
	}
}

func TestTaskRoundTrip(t *testing.T) {
	task := Task{
		ID:     "t1",
		Status: TaskStatus{State: TaskStateCompleted, Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		History: []Message{
			NewUserTextMessage("hi"),
			NewAgentTextMessage("hello"),
		},
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal task: %v", err)
	}

	var decoded Task
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal task: %v", err)
	}

	if diff := cmp.Diff(task, decoded); diff != "" {
		t.Errorf("task round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAgentCardRoundTrip(t *testing.T) {
	tests := map[string]AgentCard{
		"full": {
			Name:        "TellTimeAgent",
			Description: "Tells the current time",
			URL:         "http://localhost:4737",
			Version:     "1.0.0",
			Capabilities: AgentCapabilities{
				Streaming: false,
			},
			Skills: []AgentSkill{
				{
					ID:          "tell_time",
					Name:        "Tell Time",
					Description: "Replies with the current time",
					Tags:        []string{"time"},
					Examples:    []string{"What time is it?"},
					InputModes:  []string{"text"},
					OutputModes: []string{"text"},
				},
			},
		},
		"empty optionals": {
			Name:        "GreetingAgent",
			Description: "Greets the user",
			URL:         "http://localhost:4738",
			Version:     "1.0.0",
			Skills: []AgentSkill{
				{ID: "greet", Name: "Greet"},
			},
		},
	}

	for name, card := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(card)
			if err != nil {
				t.Fatalf("marshal card: %v", err)
			}

			var decoded AgentCard
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal card: %v", err)
			}

			if diff := cmp.Diff(card, decoded); diff != "" {
				t.Errorf("card round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAgentCardOmitsEmptyOptionals(t *testing.T) {
	card := AgentCard{
		Name:        "GreetingAgent",
		Description: "Greets the user",
		URL:         "http://localhost:4738",
		Version:     "1.0.0",
		Skills:      []AgentSkill{{ID: "greet", Name: "Greet"}},
	}

	data, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal card: %v", err)
	}

	for _, field := range []string{"tags", "examples", "inputModes", "outputModes"} {
		if strings.Contains(string(data), field) {
			t.Errorf("expected empty %q to be omitted, got %s", field, data)
		}
	}
}

func TestAgentCardValidate(t *testing.T) {
	card := AgentCard{Name: "A", URL: "http://localhost", Version: "1.0.0"}
	if err := card.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	card.Name = ""
	if err := card.Validate(); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestNewTaskStatus(t *testing.T) {
	before := time.Now().UTC()
	status := NewTaskStatus(TaskStateSubmitted)
	after := time.Now().UTC()

	if status.State != TaskStateSubmitted {
		t.Errorf("expected state %q, got %q", TaskStateSubmitted, status.State)
	}
	if status.Timestamp.Before(before) || status.Timestamp.After(after) {
		t.Errorf("timestamp %v outside [%v, %v]", status.Timestamp, before, after)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty session ids, got %q and %q", a, b)
	}
}
