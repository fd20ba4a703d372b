// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server implements the HTTP surface of a mesh agent: the agent
// card discovery endpoint and the JSON-RPC task endpoint, backed by a
// task manager that pairs a task store with a reasoning collaborator.
package server

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/server/task"
)

// Reasoner is the external decision-making collaborator that turns a
// query into a reply. The manager assumes nothing about its internals
// beyond this signature; a reasoner may itself delegate to other agents
// before answering.
type Reasoner interface {
	Invoke(ctx context.Context, query, sessionID string) (string, error)
}

// ReasonerFunc adapts a function to the Reasoner interface.
type ReasonerFunc func(ctx context.Context, query, sessionID string) (string, error)

// Invoke implements [Reasoner].
func (f ReasonerFunc) Invoke(ctx context.Context, query, sessionID string) (string, error) {
	return f(ctx, query, sessionID)
}

// TaskManager handles the two recognized task operations.
type TaskManager interface {
	OnSendTask(ctx context.Context, req *a2a.SendTaskRequest) (*a2a.SendTaskResponse, error)
	OnGetTask(ctx context.Context, req *a2a.GetTaskRequest) (*a2a.GetTaskResponse, error)
}

// AgentTaskManager composes a task store and a reasoner. All storage and
// locking live in the store; the manager owns the task lifecycle.
type AgentTaskManager struct {
	store    task.Store
	reasoner Reasoner
	logger   *zap.Logger
}

var _ TaskManager = (*AgentTaskManager)(nil)

// NewAgentTaskManager creates an AgentTaskManager.
func NewAgentTaskManager(store task.Store, reasoner Reasoner, logger *zap.Logger) (*AgentTaskManager, error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if reasoner == nil {
		return nil, fmt.Errorf("reasoner cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentTaskManager{
		store:    store,
		reasoner: reasoner,
		logger:   logger,
	}, nil
}

// OnSendTask stores the inbound user message, invokes the reasoner, and
// appends the reply while marking the task completed. A reasoner failure
// propagates to the boundary; the task is never silently completed.
func (m *AgentTaskManager) OnSendTask(ctx context.Context, req *a2a.SendTaskRequest) (*a2a.SendTaskResponse, error) {
	m.logger.Info("received task",
		zap.String("task_id", req.Params.ID),
		zap.String("session_id", req.Params.SessionID),
	)

	t, err := m.store.Upsert(ctx, req.Params)
	if err != nil {
		return nil, fmt.Errorf("upsert task %s: %w", req.Params.ID, err)
	}

	query := req.Params.Message.FirstText()
	reply, err := m.reasoner.Invoke(ctx, query, req.Params.SessionID)
	if err != nil {
		return nil, fmt.Errorf("invoke reasoner for task %s: %w", t.ID, err)
	}

	updated, err := m.store.Update(ctx, t.ID, func(t *a2a.Task) error {
		t.History = append(t.History, a2a.NewAgentTextMessage(reply))
		t.Status = a2a.NewTaskStatus(a2a.TaskStateCompleted)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("complete task %s: %w", t.ID, err)
	}

	return a2a.NewSendTaskResponse(req.ID, updated), nil
}

// OnGetTask looks a task up by id, truncating history when requested. An
// unknown id yields an error envelope rather than a transport failure.
func (m *AgentTaskManager) OnGetTask(ctx context.Context, req *a2a.GetTaskRequest) (*a2a.GetTaskResponse, error) {
	t, err := m.store.Get(ctx, req.Params.ID, req.Params.HistoryLength)
	if err != nil {
		var notFound a2a.TaskNotFoundError
		if errors.As(err, &notFound) {
			return &a2a.GetTaskResponse{
				JSONRPCMessage: a2a.NewJSONRPCMessage(req.ID),
				Error:          a2a.NewTaskNotFoundError(),
			}, nil
		}
		return nil, fmt.Errorf("get task %s: %w", req.Params.ID, err)
	}

	return a2a.NewGetTaskResponse(req.ID, t), nil
}
