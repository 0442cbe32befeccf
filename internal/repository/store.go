package repository

import (
	"context"

	"flowtasks/internal/model"
)

// TaskStore is the persistence contract for tasks. Implementations assign ids
// on Insert, never reuse them, and never hand out memory they keep.
type TaskStore interface {
	// All returns every task in insertion order
	All(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id model.ID) (model.Task, error)
	// Insert assigns task.ID and stores a copy
	Insert(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task model.Task) error
	// SaveAll stores every task or none of them
	SaveAll(ctx context.Context, tasks []model.Task) error
	// Delete removes the task and returns what was stored
	Delete(ctx context.Context, id model.ID) (model.Task, error)
	// DeleteByList removes every task of a list and returns them
	DeleteByList(ctx context.Context, key model.ListKey) ([]model.Task, error)
}

// ListStore is the persistence contract for lists
type ListStore interface {
	All(ctx context.Context) ([]model.List, error)
	Get(ctx context.Context, id model.ID) (model.List, error)
	Insert(ctx context.Context, list *model.List) error
	Save(ctx context.Context, list model.List) error
	Delete(ctx context.Context, id model.ID) (model.List, error)
}

var (
	_ TaskStore = (*TaskRepository)(nil)
	_ TaskStore = (*MemoryTaskStore)(nil)
	_ ListStore = (*ListRepository)(nil)
	_ ListStore = (*MemoryListStore)(nil)
)
