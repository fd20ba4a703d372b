// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"fmt"
	"sync"

	a2a "github.com/go-a2a/agentmesh"
)

// InMemoryStore is an in-memory implementation of Store. Task data is
// lost when the process stops. A single mutex guards the whole map: tasks
// are independent but the container itself is shared mutable state, and
// coarse locking keeps history appends and status transitions atomic.
type InMemoryStore struct {
	mu    sync.Mutex
	tasks map[string]*a2a.Task
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		tasks: make(map[string]*a2a.Task),
	}
}

// Upsert implements [Store].
func (s *InMemoryStore) Upsert(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	if params.ID == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[params.ID]
	if !ok {
		t = &a2a.Task{
			ID:      params.ID,
			Status:  a2a.NewTaskStatus(a2a.TaskStateSubmitted),
			History: []a2a.Message{params.Message},
		}
		s.tasks[params.ID] = t
	} else {
		t.History = append(t.History, params.Message)
	}

	return copyTask(t, nil), nil
}

// Get implements [Store]. The copy-and-truncate runs under the store lock
// so a concurrent upsert cannot produce a torn history.
func (s *InMemoryStore) Get(ctx context.Context, id string, historyLength *int) (*a2a.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, a2a.TaskNotFoundError{TaskID: id}
	}

	return copyTask(t, historyLength), nil
}

// Update implements [Store]. fn runs against a working copy; the stored
// task is replaced only when fn succeeds.
func (s *InMemoryStore) Update(ctx context.Context, id string, fn func(*a2a.Task) error) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, a2a.TaskNotFoundError{TaskID: id}
	}

	working := copyTask(t, nil)
	if err := fn(working); err != nil {
		return nil, err
	}
	s.tasks[id] = working

	return copyTask(working, nil), nil
}

// Size returns the current number of stored tasks. Useful in tests.
func (s *InMemoryStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}
