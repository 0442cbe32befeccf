// Package view derives filtered, sorted and counted projections of a task
// collection. Everything here is a pure function of its inputs; nothing is
// cached between calls.
package view

import (
	"math"
	"sort"
	"time"

	"flowtasks/internal/model"
)

// DefaultCompletedPreview is how many completed tasks a collapsed view shows
const DefaultCompletedPreview = 5

type Options struct {
	// ListKey scopes the view to one list; empty or "all" means every list
	ListKey model.ListKey
	// Expanded shows every completed task instead of the preview
	Expanded bool
	// CompletedPreview overrides DefaultCompletedPreview when positive
	CompletedPreview int
	Now              time.Time
}

type View struct {
	Filter Filter
	// Active holds the non-completed tasks passing the filter, by order
	Active []model.Task
	// Completed holds completed tasks in collection order
	Completed []model.Task
	// CompletedTotal counts every completed task in scope
	CompletedTotal int
	// HiddenCompleted counts completed tasks left out of a collapsed view
	HiddenCompleted int
}

// Select returns what a filter selects: completed tasks in collection order
// for FilterCompleted, otherwise the matching active tasks sorted by order.
func Select(tasks []model.Task, f Filter, at time.Time) []model.Task {
	if f == FilterCompleted {
		return completed(tasks)
	}
	today := Today(at)
	var out []model.Task
	for _, t := range tasks {
		if !t.Completed && f.matches(t, today) {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Build computes the full view for one filter. The completed section is
// present for every filter; when collapsed it keeps only the most recently
// completed tasks, still in collection order.
func Build(tasks []model.Task, f Filter, opts Options) View {
	scoped := Scope(tasks, opts.ListKey)
	done := completed(scoped)

	v := View{Filter: f, CompletedTotal: len(done)}
	if f == FilterCompleted {
		v.Completed = done
		return v
	}

	v.Active = Select(scoped, f, opts.Now)
	v.Completed = done
	limit := opts.CompletedPreview
	if limit <= 0 {
		limit = DefaultCompletedPreview
	}
	if !opts.Expanded && len(done) > limit {
		v.Completed = mostRecent(done, limit)
		v.HiddenCompleted = len(done) - limit
	}
	return v
}

// Scope keeps the tasks of one list
func Scope(tasks []model.Task, key model.ListKey) []model.Task {
	if key.IsAll() {
		return tasks
	}
	var out []model.Task
	for _, t := range tasks {
		if t.ListID == key {
			out = append(out, t)
		}
	}
	return out
}

func completed(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Completed {
			out = append(out, t.Clone())
		}
	}
	return out
}

// mostRecent keeps the n latest completions without reordering them
func mostRecent(done []model.Task, n int) []model.Task {
	idx := make([]int, len(done))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return completedAt(done[idx[a]]).After(completedAt(done[idx[b]]))
	})
	keep := make(map[int]bool, n)
	for _, i := range idx[:n] {
		keep[i] = true
	}

	out := make([]model.Task, 0, n)
	for i, t := range done {
		if keep[i] {
			out = append(out, t)
		}
	}
	return out
}

func completedAt(t model.Task) time.Time {
	if t.CompletedAt == nil {
		return time.Time{}
	}
	return *t.CompletedAt
}

// Progress summarizes completion across the whole collection
type Progress struct {
	Total     int
	Completed int
	// Rate is the completed share as a whole percentage
	Rate int
}

type Counts struct {
	ByFilter map[Filter]int
	// ByList counts active tasks per list key, including empty lists
	ByList   map[model.ListKey]int
	Progress Progress
}

// Count recomputes every counter from scratch
func Count(tasks []model.Task, lists []model.List, at time.Time) Counts {
	c := Counts{
		ByFilter: make(map[Filter]int, len(Filters)),
		ByList:   make(map[model.ListKey]int, len(lists)),
	}
	for _, f := range Filters {
		c.ByFilter[f] = 0
	}
	for _, l := range lists {
		c.ByList[l.Key()] = 0
	}

	today := Today(at)
	for _, t := range tasks {
		if t.Completed {
			c.ByFilter[FilterCompleted]++
			continue
		}
		c.ByList[t.ListID]++
		for _, f := range Filters {
			if f != FilterCompleted && f.matches(t, today) {
				c.ByFilter[f]++
			}
		}
	}

	c.Progress = Progress{Total: len(tasks), Completed: c.ByFilter[FilterCompleted]}
	if c.Progress.Total > 0 {
		c.Progress.Rate = int(math.Round(float64(c.Progress.Completed) * 100 / float64(c.Progress.Total)))
	}
	return c
}

// ListCounts sets TaskCount on copies of lists
func ListCounts(lists []model.List, tasks []model.Task) []model.List {
	counts := make(map[model.ListKey]int)
	for _, t := range tasks {
		if !t.Completed {
			counts[t.ListID]++
		}
	}
	out := make([]model.List, len(lists))
	for i, l := range lists {
		l.TaskCount = counts[l.Key()]
		out[i] = l
	}
	return out
}
