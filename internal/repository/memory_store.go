package repository

import (
	"context"
	"sync"

	"flowtasks/internal/model"
)

// table is an in-memory collection kept in insertion order.
// Records are copied on the way in and on the way out.
type table[T any] struct {
	mu        sync.RWMutex
	rows      []T
	highWater model.ID
	idOf      func(T) model.ID
	setID     func(*T, model.ID)
	clone     func(T) T
}

// nextID is max(every id ever assigned) + 1, so deleting the newest
// record never frees its id for reuse.
func (t *table[T]) nextID() model.ID {
	next := t.highWater
	for _, row := range t.rows {
		if id := t.idOf(row); id > next {
			next = id
		}
	}
	next++
	t.highWater = next
	return next
}

func (t *table[T]) indexOf(id model.ID) int {
	for i, row := range t.rows {
		if t.idOf(row) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, len(t.rows))
	for i, row := range t.rows {
		out[i] = t.clone(row)
	}
	return out
}

func (t *table[T]) get(id model.ID) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	i := t.indexOf(id)
	if i < 0 {
		return zero, false
	}
	return t.clone(t.rows[i]), true
}

func (t *table[T]) insert(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setID(row, t.nextID())
	t.rows = append(t.rows, t.clone(*row))
}

func (t *table[T]) saveAll(rows []T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := make([]int, len(rows))
	for i, row := range rows {
		if idx[i] = t.indexOf(t.idOf(row)); idx[i] < 0 {
			return false
		}
	}
	for i, row := range rows {
		t.rows[idx[i]] = t.clone(row)
	}
	return true
}

func (t *table[T]) remove(match func(T) bool) []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	var removed []T
	kept := t.rows[:0]
	for _, row := range t.rows {
		if match(row) {
			removed = append(removed, row)
			continue
		}
		kept = append(kept, row)
	}
	// clear the tail so removed rows are not retained by the backing array
	var zero T
	for i := len(kept); i < len(t.rows); i++ {
		t.rows[i] = zero
	}
	t.rows = kept
	return removed
}

// MemoryTaskStore keeps tasks in process memory for the lifetime of the server
type MemoryTaskStore struct {
	t *table[model.Task]
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{t: &table[model.Task]{
		idOf:  func(task model.Task) model.ID { return task.ID },
		setID: func(task *model.Task, id model.ID) { task.ID = id },
		clone: model.Task.Clone,
	}}
}

func (s *MemoryTaskStore) All(ctx context.Context) ([]model.Task, error) {
	return s.t.all(), nil
}

func (s *MemoryTaskStore) Get(ctx context.Context, id model.ID) (model.Task, error) {
	task, ok := s.t.get(id)
	if !ok {
		return model.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *MemoryTaskStore) Insert(ctx context.Context, task *model.Task) error {
	s.t.insert(task)
	return nil
}

func (s *MemoryTaskStore) Save(ctx context.Context, task model.Task) error {
	return s.SaveAll(ctx, []model.Task{task})
}

func (s *MemoryTaskStore) SaveAll(ctx context.Context, tasks []model.Task) error {
	if !s.t.saveAll(tasks) {
		return ErrTaskNotFound
	}
	return nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, id model.ID) (model.Task, error) {
	removed := s.t.remove(func(task model.Task) bool { return task.ID == id })
	if len(removed) == 0 {
		return model.Task{}, ErrTaskNotFound
	}
	return removed[0], nil
}

func (s *MemoryTaskStore) DeleteByList(ctx context.Context, key model.ListKey) ([]model.Task, error) {
	return s.t.remove(func(task model.Task) bool { return task.ListID == key }), nil
}

// MemoryListStore keeps lists in process memory for the lifetime of the server
type MemoryListStore struct {
	t *table[model.List]
}

func NewMemoryListStore() *MemoryListStore {
	return &MemoryListStore{t: &table[model.List]{
		idOf:  func(list model.List) model.ID { return list.ID },
		setID: func(list *model.List, id model.ID) { list.ID = id },
		clone: func(list model.List) model.List {
			list.TaskCount = 0
			return list
		},
	}}
}

func (s *MemoryListStore) All(ctx context.Context) ([]model.List, error) {
	return s.t.all(), nil
}

func (s *MemoryListStore) Get(ctx context.Context, id model.ID) (model.List, error) {
	list, ok := s.t.get(id)
	if !ok {
		return model.List{}, ErrListNotFound
	}
	return list, nil
}

func (s *MemoryListStore) Insert(ctx context.Context, list *model.List) error {
	s.t.insert(list)
	return nil
}

func (s *MemoryListStore) Save(ctx context.Context, list model.List) error {
	if !s.t.saveAll([]model.List{list}) {
		return ErrListNotFound
	}
	return nil
}

func (s *MemoryListStore) Delete(ctx context.Context, id model.ID) (model.List, error) {
	removed := s.t.remove(func(list model.List) bool { return list.ID == id })
	if len(removed) == 0 {
		return model.List{}, ErrListNotFound
	}
	return removed[0], nil
}
