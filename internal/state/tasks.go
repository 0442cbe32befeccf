// Package state keeps the session's local copy of tasks and lists in sync
// with the services. Binders merge what the service returns, report the
// outcome through a notifier and never retry.
package state

import (
	"context"
	"sync"

	"flowtasks/internal/model"
	"flowtasks/internal/notify"

	"github.com/rs/zerolog/log"
)

// TaskBackend is the part of the task service a binder calls
type TaskBackend interface {
	GetAll(ctx context.Context) ([]model.Task, error)
	GetByListID(ctx context.Context, key model.ListKey) ([]model.Task, error)
	Create(ctx context.Context, draft model.TaskDraft) (model.Task, error)
	Update(ctx context.Context, id model.ID, patch model.TaskPatch) (model.Task, error)
	Delete(ctx context.Context, id model.ID) (model.Task, error)
	ToggleComplete(ctx context.Context, id model.ID) (model.Task, error)
	UpdateOrder(ctx context.Context, id model.ID, order int, key model.ListKey) (model.Task, error)
}

// TaskState is a point-in-time copy of a Tasks binder
type TaskState struct {
	Tasks   []model.Task
	Loading bool
	// Err is the error of the last load, if it failed
	Err error
}

type Tasks struct {
	svc      TaskBackend
	notifier notify.Notifier
	// scope limits the collection to one list; empty loads every task
	scope model.ListKey

	mu      sync.RWMutex
	tasks   []model.Task
	loading bool
	err     error
}

func NewTasks(svc TaskBackend, notifier notify.Notifier, scope model.ListKey) *Tasks {
	if scope.IsAll() {
		scope = ""
	}
	return &Tasks{svc: svc, notifier: notifier, scope: scope}
}

func (b *Tasks) Snapshot() TaskState {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Task, len(b.tasks))
	for i, t := range b.tasks {
		out[i] = t.Clone()
	}
	return TaskState{Tasks: out, Loading: b.loading, Err: b.err}
}

// Load replaces the collection with a fresh read. A failed load keeps the
// previous collection and records the error.
func (b *Tasks) Load(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.err = nil
	b.mu.Unlock()

	var (
		tasks []model.Task
		err   error
	)
	if b.scope != "" {
		tasks, err = b.svc.GetByListID(ctx, b.scope)
	} else {
		tasks, err = b.svc.GetAll(ctx)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		b.err = err
		log.Error().Err(err).Msg("Error loading tasks")
		return err
	}
	b.tasks = tasks
	return nil
}

func (b *Tasks) Create(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	task, err := b.svc.Create(ctx, draft)
	if err != nil {
		b.notifier.NotifyFailure("Failed to create task")
		log.Error().Err(err).Msg("Error creating task")
		return model.Task{}, err
	}
	b.merge(task)
	b.notifier.NotifySuccess("Task created successfully!")
	return task, nil
}

func (b *Tasks) Update(ctx context.Context, id model.ID, patch model.TaskPatch) (model.Task, error) {
	task, err := b.svc.Update(ctx, id, patch)
	if err != nil {
		b.notifier.NotifyFailure("Failed to update task")
		log.Error().Err(err).Stringer("task_id", id).Msg("Error updating task")
		return model.Task{}, err
	}
	if patch.Moves() {
		b.reload(ctx, id)
	} else {
		b.merge(task)
	}
	return task, nil
}

// Delete reloads afterwards since the remaining tasks of the list are
// renumbered.
func (b *Tasks) Delete(ctx context.Context, id model.ID) error {
	if _, err := b.svc.Delete(ctx, id); err != nil {
		b.notifier.NotifyFailure("Failed to delete task")
		log.Error().Err(err).Stringer("task_id", id).Msg("Error deleting task")
		return err
	}
	b.remove(id)
	b.notifier.NotifySuccess("Task deleted successfully!")
	b.reload(ctx, id)
	return nil
}

func (b *Tasks) ToggleComplete(ctx context.Context, id model.ID) (model.Task, error) {
	task, err := b.svc.ToggleComplete(ctx, id)
	if err != nil {
		b.notifier.NotifyFailure("Failed to update task")
		log.Error().Err(err).Stringer("task_id", id).Msg("Error toggling task")
		return model.Task{}, err
	}
	b.merge(task)
	if task.Completed {
		b.notifier.NotifySuccess("Task completed! 🎉")
	} else {
		b.notifier.NotifySuccess("Task restored!")
	}
	return task, nil
}

func (b *Tasks) UpdateOrder(ctx context.Context, id model.ID, order int, key model.ListKey) (model.Task, error) {
	task, err := b.svc.UpdateOrder(ctx, id, order, key)
	if err != nil {
		b.notifier.NotifyFailure("Failed to reorder task")
		log.Error().Err(err).Stringer("task_id", id).Msg("Error updating task order")
		return model.Task{}, err
	}
	b.reload(ctx, id)
	return task, nil
}

// reload refreshes the collection after a mutation that renumbered siblings.
// The mutation itself succeeded, so a failed reload only shows up in Err.
func (b *Tasks) reload(ctx context.Context, id model.ID) {
	if err := b.Load(ctx); err != nil {
		log.Warn().Err(err).Stringer("task_id", id).Msg("Task collection is stale until the next load")
	}
}

// merge replaces the task with the same id, or appends it. A task that
// left the binder's scope is dropped.
func (b *Tasks) merge(task model.Task) {
	if b.scope != "" && task.ListID != b.scope {
		b.remove(task.ID)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == task.ID {
			b.tasks[i] = task.Clone()
			return
		}
	}
	b.tasks = append(b.tasks, task.Clone())
}

func (b *Tasks) remove(id model.ID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.tasks[:0]
	for _, t := range b.tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	b.tasks = out
}
