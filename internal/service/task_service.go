package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"flowtasks/internal/model"
	"flowtasks/internal/ordering"

	"github.com/rs/zerolog/log"
)

type TaskService struct {
	*base
	defaultList model.ListKey
}

// GetAll returns every task, unordered across lists
func (s *TaskService) GetAll(ctx context.Context) ([]model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	return s.tasks.All(ctx)
}

func (s *TaskService) GetByID(ctx context.Context, id model.ID) (model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.Task{}, err
	}
	return s.tasks.Get(ctx, id)
}

func (s *TaskService) GetByListID(ctx context.Context, key model.ListKey) ([]model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	all, err := s.tasks.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Task
	for _, t := range all {
		if t.ListID == key {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create fills in defaults for every missing field. An empty title is
// accepted; rejecting it is up to the caller.
func (s *TaskService) Create(ctx context.Context, draft model.TaskDraft) (model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.Task{}, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		return model.Task{}, model.ErrInvalidPriority
	}
	key := draft.ListID
	if key == "" {
		key = s.defaultList
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireList(ctx, key); err != nil {
		return model.Task{}, err
	}
	all, err := s.tasks.All(ctx)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		Title:       strings.TrimSpace(draft.Title),
		Description: draft.Description,
		Priority:    priority,
		ListID:      key,
		CreatedAt:   s.clock(),
	}
	if draft.DueDate != nil && !draft.DueDate.IsZero() {
		d := *draft.DueDate
		task.DueDate = &d
	}

	placed, shifted := ordering.Insert(all, task, draft.Order)
	if len(shifted) > 0 {
		if err := s.tasks.SaveAll(ctx, shifted); err != nil {
			return model.Task{}, fmt.Errorf("failed to shift tasks: %w", err)
		}
	}
	if err := s.tasks.Insert(ctx, &placed); err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug().Stringer("task_id", placed.ID).Str("list", string(key)).Int("order", placed.Order).Msg("task created")
	return placed.Clone(), nil
}

// Update merges patch over the stored task. The record is read after the
// latency wait, so changes made meanwhile by other calls are kept.
func (s *TaskService) Update(ctx context.Context, id model.ID, patch model.TaskPatch) (model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.Task{}, err
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return model.Task{}, model.ErrInvalidPriority
	}
	if patch.Order != nil && *patch.Order < 1 {
		return model.Task{}, ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if patch.ListID != nil {
		if err := s.requireList(ctx, *patch.ListID); err != nil {
			return model.Task{}, err
		}
	}

	patch.Apply(&current, s.clock())

	if !patch.Moves() {
		if err := s.tasks.Save(ctx, current); err != nil {
			return model.Task{}, fmt.Errorf("failed to update task: %w", err)
		}
		return current.Clone(), nil
	}

	key := current.ListID
	if patch.ListID != nil {
		key = *patch.ListID
	}
	order := math.MaxInt
	if patch.Order != nil {
		order = *patch.Order
	} else if key == current.ListID {
		order = current.Order
	}
	return s.move(ctx, current, order, key)
}

// Delete removes the task and closes the gap in its list
func (s *TaskService) Delete(ctx context.Context, id model.ID) (model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	rest, err := s.tasks.All(ctx)
	if err != nil {
		return model.Task{}, err
	}
	if updates := ordering.Remove(rest, removed); len(updates) > 0 {
		if err := s.tasks.SaveAll(ctx, updates); err != nil {
			return model.Task{}, fmt.Errorf("failed to renumber list %q: %w", removed.ListID, err)
		}
	}
	return removed, nil
}

func (s *TaskService) ToggleComplete(ctx context.Context, id model.ID) (model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task.SetCompleted(!task.Completed, s.clock())
	if err := s.tasks.Save(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("failed to toggle task: %w", err)
	}
	return task.Clone(), nil
}

// UpdateOrder moves a task to position order of list key. An empty key
// keeps the task in its current list. Both the old and the new list end
// up numbered 1..N.
func (s *TaskService) UpdateOrder(ctx context.Context, id model.ID, order int, key model.ListKey) (model.Task, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.Task{}, err
	}
	if order < 1 {
		return model.Task{}, ErrInvalidOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if key == "" {
		key = task.ListID
	} else if err := s.requireList(ctx, key); err != nil {
		return model.Task{}, err
	}
	return s.move(ctx, task, order, key)
}

// move persists task, with its new placement, and every sibling the move
// renumbered. Callers hold mu.
func (s *TaskService) move(ctx context.Context, task model.Task, order int, key model.ListKey) (model.Task, error) {
	all, err := s.tasks.All(ctx)
	if err != nil {
		return model.Task{}, err
	}
	for i := range all {
		if all[i].ID == task.ID {
			all[i] = task
		}
	}

	moved, updates, err := ordering.Move(all, task.ID, order, key)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.tasks.SaveAll(ctx, withTask(updates, moved)); err != nil {
		return model.Task{}, fmt.Errorf("failed to reorder tasks: %w", err)
	}

	log.Debug().Stringer("task_id", moved.ID).Str("list", string(moved.ListID)).Int("order", moved.Order).Msg("task moved")
	return moved.Clone(), nil
}

// withTask makes sure task is part of updates even when its placement did
// not change.
func withTask(updates []model.Task, task model.Task) []model.Task {
	for i := range updates {
		if updates[i].ID == task.ID {
			updates[i] = task
			return updates
		}
	}
	return append(updates, task)
}

func (s *TaskService) requireList(ctx context.Context, key model.ListKey) error {
	_, ok, err := s.findList(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownList, key)
	}
	return nil
}
