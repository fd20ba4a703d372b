// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	a2a "github.com/go-a2a/agentmesh"
)

// TaskModel is the database row a task is serialized into. Status and
// history are stored as JSON columns.
type TaskModel struct {
	ID      string `gorm:"primaryKey;column:id"`
	Status  string `gorm:"column:status"`
	History string `gorm:"column:history"`
}

// TableName implements the gorm table-name convention.
func (TaskModel) TableName() string {
	return "tasks"
}

// newTaskModel serializes a task into its row form.
func newTaskModel(t *a2a.Task) (*TaskModel, error) {
	status, err := json.Marshal(t.Status)
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}
	history, err := json.Marshal(t.History)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return &TaskModel{
		ID:      t.ID,
		Status:  string(status),
		History: string(history),
	}, nil
}

// toTask deserializes the row back into a task.
func (m *TaskModel) toTask() (*a2a.Task, error) {
	t := &a2a.Task{ID: m.ID}
	if err := json.Unmarshal([]byte(m.Status), &t.Status); err != nil {
		return nil, fmt.Errorf("unmarshal status: %w", err)
	}
	if err := json.Unmarshal([]byte(m.History), &t.History); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return t, nil
}

// DatabaseStore is a database implementation of Store using GORM. The
// caller owns the *gorm.DB handle and its driver; per-id atomicity comes
// from running every read-modify-write inside a database transaction.
type DatabaseStore struct {
	db *gorm.DB
}

var _ Store = (*DatabaseStore)(nil)

// NewDatabaseStore creates a DatabaseStore over an existing connection,
// migrating the tasks table.
func NewDatabaseStore(db *gorm.DB) (*DatabaseStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}
	if err := db.AutoMigrate(&TaskModel{}); err != nil {
		return nil, fmt.Errorf("migrate tasks table: %w", err)
	}
	return &DatabaseStore{db: db}, nil
}

// Upsert implements [Store].
func (s *DatabaseStore) Upsert(ctx context.Context, params a2a.TaskSendParams) (*a2a.Task, error) {
	if params.ID == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	var result *a2a.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model TaskModel
		err := tx.Where("id = ?", params.ID).First(&model).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result = &a2a.Task{
				ID:      params.ID,
				Status:  a2a.NewTaskStatus(a2a.TaskStateSubmitted),
				History: []a2a.Message{params.Message},
			}
		case err != nil:
			return fmt.Errorf("load task %s: %w", params.ID, err)
		default:
			result, err = model.toTask()
			if err != nil {
				return err
			}
			result.History = append(result.History, params.Message)
		}

		updated, err := newTaskModel(result)
		if err != nil {
			return err
		}
		return tx.Save(updated).Error
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Get implements [Store].
func (s *DatabaseStore) Get(ctx context.Context, id string, historyLength *int) (*a2a.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("task ID cannot be empty")
	}

	var model TaskModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, a2a.TaskNotFoundError{TaskID: id}
		}
		return nil, fmt.Errorf("load task %s: %w", id, err)
	}

	t, err := model.toTask()
	if err != nil {
		return nil, err
	}
	t.History = truncateHistory(t.History, historyLength)

	return t, nil
}

// Update implements [Store].
func (s *DatabaseStore) Update(ctx context.Context, id string, fn func(*a2a.Task) error) (*a2a.Task, error) {
	var result *a2a.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model TaskModel
		if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return a2a.TaskNotFoundError{TaskID: id}
			}
			return fmt.Errorf("load task %s: %w", id, err)
		}

		t, err := model.toTask()
		if err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}

		updated, err := newTaskModel(t)
		if err != nil {
			return err
		}
		if err := tx.Save(updated).Error; err != nil {
			return err
		}

		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
