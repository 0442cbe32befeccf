package model

import "strings"

// DefaultListColor is used when a list is created without a color
const DefaultListColor = "#6366f1"

// ListKey is the lowercase list name tasks use to reference their list
type ListKey string

// AllLists is the "all tasks" pseudo-list. It is never persisted.
const AllLists ListKey = "all"

// KeyOf derives the routing key of a list name
func KeyOf(name string) ListKey {
	return ListKey(strings.ToLower(strings.TrimSpace(name)))
}

// IsAll reports whether k selects every list
func (k ListKey) IsAll() bool {
	return k == "" || k == AllLists
}

type List struct {
	ID    ID     `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Color string `gorm:"not null"`
	Order int    `gorm:"column:position;not null"`

	// TaskCount is derived on read and never stored
	TaskCount int `gorm:"-"`
}

func (l List) Key() ListKey {
	return KeyOf(l.Name)
}

type ListDraft struct {
	Name  string
	Color string
	Order int
}

// ListPatch is a partial update. Nil fields are left unchanged.
type ListPatch struct {
	Name  *string
	Color *string
	Order *int
}

func (p ListPatch) Apply(l *List) {
	if p.Name != nil {
		l.Name = strings.TrimSpace(*p.Name)
	}
	if p.Color != nil {
		l.Color = *p.Color
	}
	if p.Order != nil {
		l.Order = *p.Order
	}
}
