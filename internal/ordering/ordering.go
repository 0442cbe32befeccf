// Package ordering keeps the per-list order of tasks gap-free.
//
// Every function works on snapshots: inputs are never modified and the
// returned tasks are copies the caller may persist. Within a list, order
// values are always renumbered to exactly 1..N.
package ordering

import (
	"errors"
	"sort"

	"flowtasks/internal/model"
)

// ErrUnknownTask is returned when the task to move is not in the collection
var ErrUnknownTask = errors.New("task is not in the collection")

// InList returns copies of the tasks that belong to key, sorted by order.
// Ties keep collection order.
func InList(all []model.Task, key model.ListKey) []model.Task {
	var out []model.Task
	for _, t := range all {
		if t.ListID == key {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Resequence returns the tasks sorted by order and renumbered 1..N
func Resequence(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	number(out)
	return out
}

func number(tasks []model.Task) {
	for i := range tasks {
		tasks[i].Order = i + 1
	}
}

// Contiguous reports whether the orders in list key are exactly 1..N
func Contiguous(all []model.Task, key model.ListKey) bool {
	seen := make(map[int]bool)
	n := 0
	for _, t := range all {
		if t.ListID != key {
			continue
		}
		n++
		if seen[t.Order] {
			return false
		}
		seen[t.Order] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			return false
		}
	}
	return true
}

// Move gives task id the order value order in list key and renumbers the
// list 1..N by order. Ties keep collection order, so an order that collides
// with a sibling's places the moved task by its position in all. An empty
// key keeps the task in its current list. If the list changes, the old list
// is closed up.
//
// It returns the moved task and every task whose list or order changed,
// the moved task included.
func Move(all []model.Task, id model.ID, order int, key model.ListKey) (model.Task, []model.Task, error) {
	idx := -1
	for i, t := range all {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Task{}, nil, ErrUnknownTask
	}

	from := all[idx].ListID
	if key == "" {
		key = from
	}

	placed := make([]model.Task, len(all))
	copy(placed, all)
	placed[idx].ListID = key
	placed[idx].Order = order

	after := InList(placed, key)
	number(after)
	if from != key {
		rest := InList(placed, from)
		number(rest)
		after = append(after, rest...)
	}

	var moved model.Task
	for _, t := range after {
		if t.ID == id {
			moved = t
		}
	}
	return moved, changed(all, after), nil
}

// Insert finds the position for a new task in its list. A non-positive order
// appends. It returns the task with its order set and the siblings that had
// to shift to make room.
func Insert(all []model.Task, task model.Task, order int) (model.Task, []model.Task) {
	siblings := InList(all, task.ListID)
	number(siblings)

	pos := len(siblings) + 1
	if order > 0 {
		pos = clamp(order, 1, len(siblings)+1)
	}

	placed := task.Clone()
	placed.Order = pos

	for i := pos - 1; i < len(siblings); i++ {
		siblings[i].Order++
	}
	return placed, changed(all, siblings)
}

// Remove closes the gap a deleted task leaves behind. It returns the
// siblings whose order changed.
func Remove(all []model.Task, removed model.Task) []model.Task {
	rest := without(InList(all, removed.ListID), removed.ID)
	number(rest)
	return changed(all, rest)
}

func without(tasks []model.Task, id model.ID) []model.Task {
	out := tasks[:0:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// changed keeps the tasks of after whose placement differs from all
func changed(all []model.Task, after []model.Task) []model.Task {
	before := make(map[model.ID]model.Task, len(all))
	for _, t := range all {
		before[t.ID] = t
	}

	var out []model.Task
	for _, t := range after {
		prev, ok := before[t.ID]
		if ok && prev.ListID == t.ListID && prev.Order == t.Order {
			continue
		}
		out = append(out, t)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
