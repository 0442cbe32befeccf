package view

import (
	"strings"
	"time"

	"flowtasks/internal/model"

	"github.com/jinzhu/now"
)

// Filter names a selection of tasks. Filters are mutually exclusive.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterToday     Filter = "today"
	FilterOverdue   Filter = "overdue"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order
var Filters = []Filter{FilterAll, FilterToday, FilterOverdue, FilterHigh, FilterMedium, FilterLow, FilterCompleted}

// ParseFilter maps unknown names to FilterAll
func ParseFilter(s string) Filter {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Filters {
		if f == known {
			return f
		}
	}
	return FilterAll
}

// Today is the calendar day of t in t's location
func Today(t time.Time) model.Date {
	return model.DateOf(now.With(t).BeginningOfDay())
}

// matches reports whether an active task passes the filter. Completed
// tasks are never passed here.
func (f Filter) matches(t model.Task, today model.Date) bool {
	switch f {
	case FilterToday:
		return t.DueDate != nil && t.DueDate.Equal(today)
	case FilterOverdue:
		return t.DueDate != nil && t.DueDate.Before(today)
	case FilterHigh:
		return t.Priority == model.PriorityHigh
	case FilterMedium:
		return t.Priority == model.PriorityMedium
	case FilterLow:
		return t.Priority == model.PriorityLow
	default:
		return true
	}
}
