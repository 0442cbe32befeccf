package service

import (
	"context"
	"fmt"
	"strings"

	"flowtasks/internal/model"
	"flowtasks/internal/view"

	"github.com/rs/zerolog/log"
)

// ListService manages lists. A list is referenced by tasks through its
// lowercase name, so renaming and deleting a list also touch its tasks.
type ListService struct {
	*base
}

// GetAll returns every list with TaskCount set to its active tasks
func (s *ListService) GetAll(ctx context.Context) ([]model.List, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	lists, err := s.lists.All(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.All(ctx)
	if err != nil {
		return nil, err
	}
	return view.ListCounts(lists, tasks), nil
}

func (s *ListService) GetByID(ctx context.Context, id model.ID) (model.List, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.List{}, err
	}
	list, err := s.lists.Get(ctx, id)
	if err != nil {
		return model.List{}, err
	}
	return s.counted(ctx, list)
}

func (s *ListService) Create(ctx context.Context, draft model.ListDraft) (model.List, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.List{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(draft.Name)
	if err := s.checkName(ctx, name, 0); err != nil {
		return model.List{}, err
	}
	existing, err := s.lists.All(ctx)
	if err != nil {
		return model.List{}, err
	}

	list := model.List{
		Name:  name,
		Color: draft.Color,
		Order: draft.Order,
	}
	if list.Color == "" {
		list.Color = model.DefaultListColor
	}
	if list.Order <= 0 {
		list.Order = len(existing) + 1
	}
	if err := s.lists.Insert(ctx, &list); err != nil {
		return model.List{}, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

// Update applies patch. A rename moves every task of the list to the new key.
func (s *ListService) Update(ctx context.Context, id model.ID, patch model.ListPatch) (model.List, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.List{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.lists.Get(ctx, id)
	if err != nil {
		return model.List{}, err
	}
	oldKey := list.Key()
	patch.Apply(&list)
	if list.Color == "" {
		list.Color = model.DefaultListColor
	}

	newKey := list.Key()
	if patch.Name != nil {
		if err := s.checkName(ctx, list.Name, id); err != nil {
			return model.List{}, err
		}
	}
	if err := s.lists.Save(ctx, list); err != nil {
		return model.List{}, fmt.Errorf("failed to update list: %w", err)
	}

	if newKey != oldKey {
		if err := s.rekey(ctx, oldKey, newKey); err != nil {
			return model.List{}, err
		}
		log.Info().Str("from", string(oldKey)).Str("to", string(newKey)).Msg("list renamed")
	}
	return s.counted(ctx, list)
}

// Delete removes the list together with all of its tasks
func (s *ListService) Delete(ctx context.Context, id model.ID) (model.List, error) {
	if err := s.latency.wait(ctx); err != nil {
		return model.List{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, removed, err := s.deleteCascade(ctx, id)
	if err != nil {
		return model.List{}, err
	}

	log.Info().Str("list", string(list.Key())).Int("tasks", len(removed)).Msg("list deleted")
	return list, nil
}

// cascadeDeleter is a list store that removes a list and its tasks in one
// transaction.
type cascadeDeleter interface {
	DeleteCascade(ctx context.Context, id model.ID) (model.List, []model.Task, error)
}

// deleteCascade removes list id and its tasks. Stores without transactions
// run the two steps under mu, where neither can fail once the list exists.
func (s *ListService) deleteCascade(ctx context.Context, id model.ID) (model.List, []model.Task, error) {
	if store, ok := s.lists.(cascadeDeleter); ok {
		list, removed, err := store.DeleteCascade(ctx, id)
		if err != nil {
			return model.List{}, nil, fmt.Errorf("failed to delete list: %w", err)
		}
		return list, removed, nil
	}

	list, err := s.lists.Get(ctx, id)
	if err != nil {
		return model.List{}, nil, err
	}
	removed, err := s.tasks.DeleteByList(ctx, list.Key())
	if err != nil {
		return model.List{}, nil, fmt.Errorf("failed to delete tasks of list %q: %w", list.Key(), err)
	}
	if _, err := s.lists.Delete(ctx, id); err != nil {
		return model.List{}, nil, err
	}
	return list, removed, nil
}

// checkName rejects empty and reserved names and names whose key another
// list already uses. self is the list being renamed, or 0.
func (s *ListService) checkName(ctx context.Context, name string, self model.ID) error {
	key := model.KeyOf(name)
	if key.IsAll() {
		return ErrInvalidListName
	}
	l, ok, err := s.findList(ctx, key)
	if err != nil {
		return err
	}
	if ok && l.ID != self {
		return fmt.Errorf("%w: %q", ErrListExists, key)
	}
	return nil
}

func (s *ListService) rekey(ctx context.Context, from, to model.ListKey) error {
	all, err := s.tasks.All(ctx)
	if err != nil {
		return err
	}
	var moved []model.Task
	for _, t := range all {
		if t.ListID == from {
			t.ListID = to
			moved = append(moved, t)
		}
	}
	if len(moved) == 0 {
		return nil
	}
	if err := s.tasks.SaveAll(ctx, moved); err != nil {
		return fmt.Errorf("failed to move tasks to %q: %w", to, err)
	}
	return nil
}

func (s *ListService) counted(ctx context.Context, list model.List) (model.List, error) {
	tasks, err := s.tasks.All(ctx)
	if err != nil {
		return model.List{}, err
	}
	return view.ListCounts([]model.List{list}, tasks)[0], nil
}
