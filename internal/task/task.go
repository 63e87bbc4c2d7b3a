package task

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// All is the filter value that matches every priority or category.
const All = "all"

var (
	ErrUnknownPriority = errors.New("unknown priority")
	ErrUnknownCategory = errors.New("unknown category")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryStudy    Category = "study"
)

// ID identifies a task for the lifetime of the process.
type ID = uuid.UUID

// Task is a single to-do record.
type Task struct {
	ID        ID
	Text      string
	Completed bool
	Priority  Priority
	Category  Category
	DueDate   *time.Time
	CreatedAt time.Time
}

// New builds a task with a fresh time-ordered ID. Empty priority and
// category fall back to medium and personal.
func New(text string, p Priority, c Category, due *time.Time, now time.Time) Task {
	if p == "" {
		p = PriorityMedium
	}
	if c == "" {
		c = CategoryPersonal
	}
	return Task{
		ID:        NewID(),
		Text:      text,
		Priority:  p,
		Category:  c,
		DueDate:   copyDate(due),
		CreatedAt: now.Round(0),
	}
}

// Clone returns a copy of t that shares no pointers with it.
func (t Task) Clone() Task {
	t.DueDate = copyDate(t.DueDate)
	return t
}

// NewID returns a UUIDv7, falling back to a random UUID if the clock
// source fails.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Blank reports whether text would be rejected by add or edit.
func Blank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

func Categories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryShopping, CategoryHealth, CategoryStudy}
}

func ParsePriority(v string) (Priority, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, p := range Priorities() {
		if string(p) == v {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPriority, v)
}

func ParseCategory(v string) (Category, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, c := range Categories() {
		if string(c) == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, v)
}

// ParseDueDate accepts YYYY-MM-DD. An empty string means no due date.
func ParseDueDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// NextPriority cycles all -> low -> medium -> high -> all.
func NextPriority(cur Priority) Priority {
	opts := append([]Priority{All}, Priorities()...)
	return opts[(indexOf(opts, cur)+1)%len(opts)]
}

// NextCategory cycles all -> personal -> ... -> study -> all.
func NextCategory(cur Category) Category {
	opts := append([]Category{All}, Categories()...)
	return opts[(indexOf(opts, cur)+1)%len(opts)]
}

func indexOf[T comparable](opts []T, v T) int {
	for i, o := range opts {
		if o == v {
			return i
		}
	}
	return 0
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}
