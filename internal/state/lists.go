package state

import (
	"context"
	"sync"

	"flowtasks/internal/model"
	"flowtasks/internal/notify"

	"github.com/rs/zerolog/log"
)

type ListBackend interface {
	GetAll(ctx context.Context) ([]model.List, error)
	Create(ctx context.Context, draft model.ListDraft) (model.List, error)
	Update(ctx context.Context, id model.ID, patch model.ListPatch) (model.List, error)
	Delete(ctx context.Context, id model.ID) (model.List, error)
}

type ListState struct {
	Lists   []model.List
	Loading bool
	Err     error
}

type Lists struct {
	svc      ListBackend
	notifier notify.Notifier

	mu      sync.RWMutex
	lists   []model.List
	loading bool
	err     error
}

func NewLists(svc ListBackend, notifier notify.Notifier) *Lists {
	return &Lists{svc: svc, notifier: notifier}
}

func (b *Lists) Snapshot() ListState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.List, len(b.lists))
	copy(out, b.lists)
	return ListState{Lists: out, Loading: b.loading, Err: b.err}
}

func (b *Lists) Load(ctx context.Context) error {
	b.mu.Lock()
	b.loading = true
	b.err = nil
	b.mu.Unlock()

	lists, err := b.svc.GetAll(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.loading = false
	if err != nil {
		b.err = err
		log.Error().Err(err).Msg("Error loading lists")
		return err
	}
	b.lists = lists
	return nil
}

func (b *Lists) Create(ctx context.Context, draft model.ListDraft) (model.List, error) {
	list, err := b.svc.Create(ctx, draft)
	if err != nil {
		b.notifier.NotifyFailure("Failed to create list")
		log.Error().Err(err).Msg("Error creating list")
		return model.List{}, err
	}

	b.mu.Lock()
	b.lists = append(b.lists, list)
	b.mu.Unlock()

	b.notifier.NotifySuccess("List created successfully!")
	return list, nil
}

func (b *Lists) Update(ctx context.Context, id model.ID, patch model.ListPatch) (model.List, error) {
	list, err := b.svc.Update(ctx, id, patch)
	if err != nil {
		b.notifier.NotifyFailure("Failed to update list")
		log.Error().Err(err).Stringer("list_id", id).Msg("Error updating list")
		return model.List{}, err
	}

	b.mu.Lock()
	for i := range b.lists {
		if b.lists[i].ID == list.ID {
			b.lists[i] = list
		}
	}
	b.mu.Unlock()
	return list, nil
}

func (b *Lists) Delete(ctx context.Context, id model.ID) error {
	if _, err := b.svc.Delete(ctx, id); err != nil {
		b.notifier.NotifyFailure("Failed to delete list")
		log.Error().Err(err).Stringer("list_id", id).Msg("Error deleting list")
		return err
	}

	b.mu.Lock()
	out := b.lists[:0]
	for _, l := range b.lists {
		if l.ID != id {
			out = append(out, l)
		}
	}
	b.lists = out
	b.mu.Unlock()

	b.notifier.NotifySuccess("List deleted successfully!")
	return nil
}
