// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package task provides task storage for mesh agents: a concurrency-safe
// in-memory store and a database-backed variant with the same contract.
package task

import (
	"context"

	a2a "github.com/go-a2a/agentmesh"
)

// Store is the storage contract task managers compose. Upsert and Update
// serialize against each other so a manager's read-modify-write sequence
// (store the inbound message, later append the reply and complete) never
// interleaves with another caller's upsert.
type Store interface {
	// Upsert creates a task for params.ID with status submitted and
	// history [params.Message], or appends params.Message to the existing
	// task's history. It returns the stored task.
	Upsert(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error)

	// Get returns a copy of the task, truncated to the last historyLength
	// messages when historyLength is non-nil and non-negative. An unknown
	// id yields [a2a.TaskNotFoundError] and creates nothing.
	Get(ctx context.Context, id string, historyLength *int) (*a2a.Task, error)

	// Update runs fn against the stored task under the store's lock and
	// returns a copy of the updated task. It is the transaction handle
	// managers use to append a reply and transition status atomically.
	Update(ctx context.Context, id string, fn func(*a2a.Task) error) (*a2a.Task, error)
}

// truncateHistory applies read-side history truncation: the returned
// slice holds the last min(n, len(history)) messages.
func truncateHistory(history []a2a.Message, historyLength *int) []a2a.Message {
	if historyLength == nil || *historyLength < 0 || *historyLength >= len(history) {
		return history
	}
	return history[len(history)-*historyLength:]
}

// copyTask returns a deep enough copy that later mutations by the owning
// manager are not visible to the caller.
func copyTask(t *a2a.Task, historyLength *int) *a2a.Task {
	history := truncateHistory(t.History, historyLength)
	cp := &a2a.Task{
		ID:      t.ID,
		Status:  t.Status,
		History: make([]a2a.Message, len(history)),
	}
	copy(cp.History, history)
	return cp
}
