// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import "fmt"

// TaskNotFoundError indicates the specified task id was not found.
type TaskNotFoundError struct {
	TaskID string
}

// Error implements the error interface.
func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.TaskID)
}

// AgentNotFoundError indicates no discovered agent matched the requested
// name.
type AgentNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e AgentNotFoundError) Error() string {
	return fmt.Sprintf("agent not found: %s", e.Name)
}
