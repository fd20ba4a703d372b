// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the protocol types for a minimal multi-agent
// task-delegation mesh: tasks with message histories, agent cards served
// from the discovery well-known path, and the JSON-RPC envelope the
// agents speak to each other.
package a2a

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version is the current version of the mesh protocol.
const Version = "0.1.0"

// AgentCardWellKnownPath is the discovery endpoint every agent serves.
const AgentCardWellKnownPath = "/.well-known/agent.json"

// TaskState represents the lifecycle state of a Task.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been received and stored.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the task is being worked on.
	TaskStateWorking TaskState = "working"

	// TaskStateInputRequired indicates the task is waiting for more input.
	TaskStateInputRequired TaskState = "input-required"

	// TaskStateCompleted indicates the task has been completed.
	TaskStateCompleted TaskState = "completed"

	// TaskStateCanceled indicates the task has been canceled.
	TaskStateCanceled TaskState = "canceled"

	// TaskStateFailed indicates the task has failed.
	TaskStateFailed TaskState = "failed"

	// TaskStateUnknown indicates the task state could not be determined.
	TaskStateUnknown TaskState = "unknown"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// PartTypeText is the type discriminator for text parts.
const PartTypeText = "text"

// Part is one piece of a message's content. It is an open tagged union
// keyed by Type; text is the only variant currently defined, and future
// media types add their own fields alongside a new discriminator value.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text,omitzero"`

	Metadata map[string]any `json:"metadata,omitzero"`
}

// NewTextPart creates a text Part.
func NewTextPart(text string) Part {
	return Part{Type: PartTypeText, Text: text}
}

// Validate ensures the Part carries a known type discriminator.
func (p Part) Validate() error {
	if p.Type != PartTypeText {
		return fmt.Errorf("unsupported part type: %q", p.Type)
	}
	return nil
}

// Message represents a single exchange in a task's history. Messages are
// immutable once constructed.
type Message struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// NewUserTextMessage creates a user message containing a single text part.
func NewUserTextMessage(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{NewTextPart(text)}}
}

// NewAgentTextMessage creates an agent message containing a single text part.
func NewAgentTextMessage(text string) Message {
	return Message{Role: RoleAgent, Parts: []Part{NewTextPart(text)}}
}

// FirstText returns the text of the first text part, or the empty string
// if the message carries none.
func (m Message) FirstText() string {
	for _, part := range m.Parts {
		if part.Type == PartTypeText {
			return part.Text
		}
	}
	return ""
}

// Validate ensures the Message is valid.
func (m Message) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAgent {
		return fmt.Errorf("invalid message role: %q", m.Role)
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message must contain at least one part")
	}
	for i, part := range m.Parts {
		if err := part.Validate(); err != nil {
			return fmt.Errorf("message part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// TaskStatus represents the current state of a task and when it was set.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTaskStatus creates a TaskStatus stamped with the current time.
func NewTaskStatus(state TaskState) TaskStatus {
	return TaskStatus{State: state, Timestamp: time.Now().UTC()}
}

// Task is a unit of conversational work identified by a caller-supplied
// id. History grows append-only; the first entry is always the user
// message that created the task.
type Task struct {
	ID      string     `json:"id"`
	Status  TaskStatus `json:"status"`
	History []Message  `json:"history"`
}

// Validate ensures the Task is valid.
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if t.Status.State == "" {
		return fmt.Errorf("task status state cannot be empty")
	}
	for i, msg := range t.History {
		if err := msg.Validate(); err != nil {
			return fmt.Errorf("history message at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// TaskSendParams is the unit of work submitted to a task manager.
type TaskSendParams struct {
	ID            string         `json:"id"`
	SessionID     string         `json:"sessionId,omitzero"`
	Message       Message        `json:"message"`
	HistoryLength *int           `json:"historyLength,omitzero"`
	Metadata      map[string]any `json:"metadata,omitzero"`
}

// Validate ensures the TaskSendParams are valid, assigning a fresh
// session id when the caller did not supply one.
func (p *TaskSendParams) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if err := p.Message.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}
	if p.SessionID == "" {
		p.SessionID = NewSessionID()
	}
	return nil
}

// TaskQueryParams identifies a task to look up, with an optional bound on
// how much history to return.
type TaskQueryParams struct {
	ID            string         `json:"id"`
	HistoryLength *int           `json:"historyLength,omitzero"`
	Metadata      map[string]any `json:"metadata,omitzero"`
}

// Validate ensures the TaskQueryParams are valid.
func (p TaskQueryParams) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	return nil
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// NewTaskID returns a fresh task identifier.
func NewTaskID() string {
	return uuid.NewString()
}

// NewRequestID returns a fresh JSON-RPC request identifier.
func NewRequestID() string {
	return uuid.NewString()
}

// AgentCapabilities advertises the optional protocol features an agent
// supports.
type AgentCapabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

// AgentSkill describes a unit of capability an agent can perform.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitzero"`
	Tags        []string `json:"tags,omitzero"`
	Examples    []string `json:"examples,omitzero"`
	InputModes  []string `json:"inputModes,omitzero"`
	OutputModes []string `json:"outputModes,omitzero"`
}

// Validate ensures the AgentSkill is valid.
func (s AgentSkill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("agent skill ID cannot be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("agent skill name cannot be empty")
	}
	return nil
}

// AgentCard represents metadata about an agent, including its address and
// skills. Cards are fetched transiently during discovery and never
// persisted by the core.
type AgentCard struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	URL          string            `json:"url"`
	Version      string            `json:"version"`
	Capabilities AgentCapabilities `json:"capabilities"`
	Skills       []AgentSkill      `json:"skills"`
}

// Validate ensures the AgentCard is valid.
func (c AgentCard) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("agent card name cannot be empty")
	}
	if c.URL == "" {
		return fmt.Errorf("agent card URL cannot be empty")
	}
	if c.Version == "" {
		return fmt.Errorf("agent card version cannot be empty")
	}
	for i, skill := range c.Skills {
		if err := skill.Validate(); err != nil {
			return fmt.Errorf("agent skill at index %d is invalid: %w", i, err)
		}
	}
	return nil
}
