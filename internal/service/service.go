// Package service exposes the task and list operations the rest of the
// application uses. Every call simulates a network round trip before it
// touches the store, and every returned value is a copy.
package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"flowtasks/internal/model"
	"flowtasks/internal/repository"
)

// Latency bounds the simulated round trip of each call
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// wait sleeps for a random duration in [Min, Max] or until ctx is done
func (l Latency) wait(ctx context.Context) error {
	d := l.Min
	if l.Max > l.Min {
		d += time.Duration(rand.Int64N(int64(l.Max-l.Min) + 1))
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Options struct {
	Latency Latency
	// DefaultList receives tasks created without a list
	DefaultList model.ListKey
	// Clock defaults to time.Now
	Clock func() time.Time
}

// base is shared by both services. The mutex serializes every store
// mutation; it is never held across the latency wait.
type base struct {
	tasks   repository.TaskStore
	lists   repository.ListStore
	mu      *sync.Mutex
	latency Latency
	clock   func() time.Time
}

// New builds the task and list services over the same stores
func New(tasks repository.TaskStore, lists repository.ListStore, opts Options) (*TaskService, *ListService) {
	b := &base{
		tasks:   tasks,
		lists:   lists,
		mu:      &sync.Mutex{},
		latency: opts.Latency,
		clock:   opts.Clock,
	}
	if b.clock == nil {
		b.clock = time.Now
	}
	return &TaskService{base: b, defaultList: opts.DefaultList}, &ListService{base: b}
}

// findList looks a list up by key. Callers hold mu.
func (b *base) findList(ctx context.Context, key model.ListKey) (model.List, bool, error) {
	lists, err := b.lists.All(ctx)
	if err != nil {
		return model.List{}, false, err
	}
	for _, l := range lists {
		if l.Key() == key {
			return l, true, nil
		}
	}
	return model.List{}, false, nil
}
