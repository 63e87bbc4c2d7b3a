package task

import "strings"

// Filter selects the visible subset of tasks. The zero value matches
// everything.
type Filter struct {
	Search   string
	Category Category
	Priority Priority
}

// Stats are always computed over the full, unfiltered list.
type Stats struct {
	Total        int
	Completed    int
	Pending      int
	HighPriority int
}

// Active reports whether the filter narrows the list at all.
func (f Filter) Active() bool {
	return f.Search != "" || !isAll(string(f.Category)) || !isAll(string(f.Priority))
}

func (f Filter) Match(t Task) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Text), strings.ToLower(f.Search)) {
		return false
	}
	if !isAll(string(f.Category)) && t.Category != f.Category {
		return false
	}
	if !isAll(string(f.Priority)) && t.Priority != f.Priority {
		return false
	}
	return true
}

// Apply returns the tasks matching f in their original order.
func Apply(tasks []Task, f Filter) []Task {
	return Select(tasks, f.Match)
}

func Summarize(tasks []Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Priority == PriorityHigh {
			s.HighPriority++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// Select returns elements from slice that satisfy the predicate.
func Select[T any](slice []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

func isAll(v string) bool {
	return v == "" || v == All
}
