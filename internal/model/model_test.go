package model_test

import (
	"testing"
	"time"

	"flowtasks/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, err := model.ParseID(" 42 ")
	assert.NoError(t, err)
	assert.Equal(t, model.ID(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := model.ParseID(raw)
		assert.ErrorIs(t, err, model.ErrInvalidID, raw)
	}
}

func TestParseDate(t *testing.T) {
	d, err := model.ParseDate("2024-03-09")
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-09", d.String())

	d, err = model.ParseDate("2024-03-09T18:30:00Z")
	assert.NoError(t, err)
	assert.True(t, d.Equal(model.NewDate(2024, time.March, 9)))

	_, err = model.ParseDate("09/03/2024")
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestDate_ScanAndValue(t *testing.T) {
	var d model.Date
	assert.NoError(t, d.Scan(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-02", d.String())

	assert.NoError(t, d.Scan([]byte("2025-02-03")))
	v, err := d.Value()
	assert.NoError(t, err)
	assert.Equal(t, "2025-02-03", v)

	assert.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	assert.Error(t, d.Scan(42))
}

func TestParsePriority(t *testing.T) {
	p, err := model.ParsePriority("HIGH")
	assert.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, p)

	_, err = model.ParsePriority("")
	assert.ErrorIs(t, err, model.ErrInvalidPriority)
	_, err = model.ParsePriority("urgent")
	assert.ErrorIs(t, err, model.ErrInvalidPriority)
}

func TestTask_SetCompleted(t *testing.T) {
	first := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	var task model.Task
	task.SetCompleted(true, first)
	assert.True(t, task.Completed)
	assert.Equal(t, first, *task.CompletedAt)

	// completing twice keeps the first timestamp
	task.SetCompleted(true, later)
	assert.Equal(t, first, *task.CompletedAt)

	task.SetCompleted(false, later)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
}

func TestTask_Clone(t *testing.T) {
	due := model.NewDate(2025, 6, 1)
	at := time.Now()
	task := model.Task{ID: 1, DueDate: &due, CompletedAt: &at, Completed: true}

	c := task.Clone()
	*c.DueDate = model.NewDate(1999, 1, 1)
	*c.CompletedAt = time.Time{}

	assert.Equal(t, "2025-06-01", task.DueDate.String())
	assert.Equal(t, at, *task.CompletedAt)
}

func TestTaskPatch_Apply(t *testing.T) {
	now := time.Now()
	due := model.NewDate(2025, 7, 4)
	task := model.Task{ID: 7, Title: "old", Priority: model.PriorityLow, DueDate: &due}

	title := "  new title "
	high := model.PriorityHigh
	done := true
	model.TaskPatch{Title: &title, Priority: &high, Completed: &done, ClearDueDate: true}.Apply(&task, now)

	assert.Equal(t, model.ID(7), task.ID)
	assert.Equal(t, "new title", task.Title)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.True(t, task.Completed)
	assert.NotNil(t, task.CompletedAt)

	assert.False(t, model.TaskPatch{Title: &title}.Moves())
	order := 2
	assert.True(t, model.TaskPatch{Order: &order}.Moves())
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t, model.ListKey("work"), model.KeyOf(" Work "))
	assert.True(t, model.ListKey("").IsAll())
	assert.True(t, model.AllLists.IsAll())
	assert.False(t, model.ListKey("work").IsAll())
	assert.Equal(t, model.ListKey("shopping"), model.List{Name: "Shopping"}.Key())
}
