package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when no task has the requested id
	ErrTaskNotFound = errors.New("task not found")

	// ErrListNotFound is returned when no list has the requested id
	ErrListNotFound = errors.New("list not found")
)
