package service

import "errors"

// Validation errors
var (
	ErrUnknownList     = errors.New("list does not exist")
	ErrInvalidListName = errors.New("list name is empty or reserved")
	ErrInvalidOrder    = errors.New("invalid order: must be >= 1")
)

// Business logic errors
var (
	ErrListExists = errors.New("a list with this name already exists")
)
