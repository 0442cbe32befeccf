package model

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when an identifier is not a positive integer
var ErrInvalidID = errors.New("invalid id")

// ID identifies a task or a list. Ids are positive and assigned by the store.
type ID int64

// ParseID converts a path or query value into an ID
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return ID(n), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
