// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/internal/rpclog"
)

// Connector delegates text messages as tasks to one named remote agent,
// recording each request and response in the interaction log.
type Connector struct {
	name   string
	client *Client
	log    *rpclog.Logger
}

// NewConnector creates a Connector for the named agent reachable at url.
func NewConnector(name, url string, log *rpclog.Logger) (*Connector, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	c, err := NewClient(url)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = rpclog.Nop()
	}
	return &Connector{name: name, client: c, log: log}, nil
}

// Name returns the remote agent's name.
func (c *Connector) Name() string {
	return c.name
}

// SendTask wraps message into a fresh task bound to sessionID, submits it
// to the remote agent, and returns the completed task.
func (c *Connector) SendTask(ctx context.Context, sender, message, sessionID string) (*a2a.Task, error) {
	params := a2a.TaskSendParams{
		ID:        a2a.NewTaskID(),
		SessionID: sessionID,
		Message:   a2a.NewUserTextMessage(message),
	}

	c.log.Record(sender, c.name, rpclog.DirectionSend, params)

	task, err := c.client.SendTask(ctx, params)
	if err != nil {
		c.log.Record(c.name, sender, rpclog.DirectionReceive, err.Error())
		return nil, fmt.Errorf("send task to %s: %w", c.name, err)
	}

	c.log.Record(c.name, sender, rpclog.DirectionReceive, task)
	return task, nil
}

// GetTask retrieves the current state of a previously submitted task from
// the remote agent.
func (c *Connector) GetTask(ctx context.Context, taskID string, historyLength *int) (*a2a.Task, error) {
	task, err := c.client.GetTask(ctx, a2a.TaskQueryParams{ID: taskID, HistoryLength: historyLength})
	if err != nil {
		return nil, fmt.Errorf("get task from %s: %w", c.name, err)
	}
	return task, nil
}
