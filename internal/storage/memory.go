package storage

import (
	"slices"
	"time"

	"tasknest/internal/task"
)

// Memory is a slice-backed Store. It is not safe for concurrent use; the
// UI drives it from a single goroutine.
type Memory struct {
	tasks []task.Task
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Tasks() []task.Task {
	out := make([]task.Task, len(m.tasks))
	for i, t := range m.tasks {
		out[i] = t.Clone()
	}
	return out
}

func (m *Memory) Add(text string, p task.Priority, c task.Category, due *time.Time) (task.Task, bool) {
	if task.Blank(text) {
		return task.Task{}, false
	}
	t := task.New(text, p, c, due, m.now())
	m.tasks = slices.Insert(m.tasks, 0, t)
	return t.Clone(), true
}

func (m *Memory) ToggleComplete(id task.ID) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.tasks[i].Completed = !m.tasks[i].Completed
	return true
}

func (m *Memory) EditText(id task.ID, text string) bool {
	if task.Blank(text) {
		return false
	}
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.tasks[i].Text = text
	return true
}

func (m *Memory) Delete(id task.ID) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.tasks = slices.Delete(m.tasks, i, i+1)
	return true
}

func (m *Memory) Close() error {
	m.tasks = nil
	return nil
}

func (m *Memory) index(id task.ID) int {
	return slices.IndexFunc(m.tasks, func(t task.Task) bool { return t.ID == id })
}
