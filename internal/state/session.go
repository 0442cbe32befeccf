package state

import (
	"context"

	"flowtasks/internal/model"
	"flowtasks/internal/notify"

	"golang.org/x/sync/errgroup"
)

// Session groups the binders one client works with
type Session struct {
	Tasks *Tasks
	Lists *Lists
}

func NewSession(tasks TaskBackend, lists ListBackend, notifier notify.Notifier) *Session {
	return &Session{
		Tasks: NewTasks(tasks, notifier, model.AllLists),
		Lists: NewLists(lists, notifier),
	}
}

// Load reads both collections concurrently. A failure of one does not
// stop the other; the first error is returned.
func (s *Session) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return s.Tasks.Load(ctx) })
	g.Go(func() error { return s.Lists.Load(ctx) })
	return g.Wait()
}
