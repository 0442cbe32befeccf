package model

import (
	"strings"
	"time"
)

type Task struct {
	ID          ID       `gorm:"primaryKey;autoIncrement"`
	Title       string   `gorm:"not null"`
	Description string
	Priority    Priority `gorm:"type:varchar(16);not null;default:medium"`
	DueDate     *Date    `gorm:"type:date"`
	ListID      ListKey  `gorm:"column:list_id;type:varchar(255);not null;index"`
	Completed   bool     `gorm:"not null;default:false"`
	CreatedAt   time.Time
	CompletedAt *time.Time
	// Order is the 1-based position among tasks sharing ListID
	Order int `gorm:"column:position;not null"`
}

// Clone returns a copy that shares no memory with t
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return c
}

// SetCompleted keeps CompletedAt non-nil exactly when the task is completed.
// An already completed task keeps its original completion time.
func (t *Task) SetCompleted(done bool, now time.Time) {
	t.Completed = done
	if !done {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		at := now
		t.CompletedAt = &at
	}
}

// TaskDraft carries the caller-supplied fields of a new task.
// Zero values are replaced by defaults.
type TaskDraft struct {
	Title       string
	Description string
	Priority    Priority
	DueDate     *Date
	ListID      ListKey
	// Order, when positive, inserts the task at that position instead of appending
	Order int
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *Priority
	DueDate      *Date
	ClearDueDate bool
	Completed    *bool
	ListID       *ListKey
	Order        *int
}

// Moves reports whether the patch changes the task's placement
func (p TaskPatch) Moves() bool {
	return p.ListID != nil || p.Order != nil
}

// Apply merges every non-placement field of p into t.
// ListID and Order are handled by the ordering engine.
func (p TaskPatch) Apply(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Completed != nil {
		t.SetCompleted(*p.Completed, now)
	}
}
