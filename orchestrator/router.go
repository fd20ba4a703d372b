// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator routes user queries to discovered remote agents.
// A Router resolves agent names against the discovered cards and keeps
// one connector per remote agent; a DelegatingReasoner turns free-form
// queries into delegations using the router's tool surface.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	a2a "github.com/go-a2a/agentmesh"
	"github.com/go-a2a/agentmesh/client"
	"github.com/go-a2a/agentmesh/internal/rpclog"
)

// Router holds the discovered agent cards and a cache of connectors to
// the agents it has already delegated to.
type Router struct {
	name   string
	cards  []*a2a.AgentCard
	log    *rpclog.Logger
	logger *zap.Logger

	mu         sync.Mutex
	connectors map[string]*client.Connector
}

// NewRouter creates a Router over the given discovered cards. name is the
// sender identity recorded in the interaction log.
func NewRouter(name string, cards []*a2a.AgentCard, log *rpclog.Logger, logger *zap.Logger) (*Router, error) {
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if log == nil {
		log = rpclog.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		name:       name,
		cards:      cards,
		log:        log,
		logger:     logger,
		connectors: make(map[string]*client.Connector),
	}, nil
}

// ListAgents returns the names of all discovered agents in discovery
// order.
func (r *Router) ListAgents() []string {
	names := make([]string, len(r.cards))
	for i, card := range r.cards {
		names[i] = card.Name
	}
	return names
}

// Cards returns the discovered agent cards in discovery order.
func (r *Router) Cards() []*a2a.AgentCard {
	return r.cards
}

// Resolve maps a requested agent name to a discovered card. An exact
// case-insensitive match wins; otherwise the first card whose name
// contains the requested name case-insensitively, in discovery order.
func (r *Router) Resolve(name string) (*a2a.AgentCard, error) {
	want := strings.ToLower(name)
	if want == "" {
		return nil, a2a.AgentNotFoundError{Name: name}
	}
	for _, card := range r.cards {
		if strings.ToLower(card.Name) == want {
			return card, nil
		}
	}
	for _, card := range r.cards {
		if strings.Contains(strings.ToLower(card.Name), want) {
			return card, nil
		}
	}
	return nil, a2a.AgentNotFoundError{Name: name}
}

// Delegate resolves name, submits message as a task on the given session,
// and returns the text of the delegated task's last agent message.
func (r *Router) Delegate(ctx context.Context, name, message, sessionID string) (string, error) {
	card, err := r.Resolve(name)
	if err != nil {
		return "", err
	}

	conn, err := r.connectorFor(card)
	if err != nil {
		return "", err
	}

	r.logger.Info("delegating task",
		zap.String("agent", card.Name),
		zap.String("session_id", sessionID),
	)

	task, err := conn.SendTask(ctx, r.name, message, sessionID)
	if err != nil {
		return "", err
	}

	reply := lastAgentText(task)
	if reply == "" {
		return "", fmt.Errorf("agent %s returned no reply for task %s", card.Name, task.ID)
	}
	return reply, nil
}

// connectorFor returns the cached connector for a resolved card, creating
// it on first use.
func (r *Router) connectorFor(card *a2a.AgentCard) (*client.Connector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conn, ok := r.connectors[card.Name]; ok {
		return conn, nil
	}
	conn, err := client.NewConnector(card.Name, card.URL, r.log)
	if err != nil {
		return nil, err
	}
	r.connectors[card.Name] = conn
	return conn, nil
}

// lastAgentText returns the text of the most recent agent message in the
// task history.
func lastAgentText(task *a2a.Task) string {
	for i := len(task.History) - 1; i >= 0; i-- {
		if task.History[i].Role == a2a.RoleAgent {
			return task.History[i].FirstText()
		}
	}
	return ""
}
