package storage

import (
	"fmt"
	"log/slog"
	"time"

	"tasknest/internal/config"
	"tasknest/internal/task"
)

// Store owns the ordered task list. Mutations are total: invalid input or
// an unknown id leaves the list untouched and reports false.
type Store interface {
	// Tasks returns a copy of the list, newest first.
	Tasks() []task.Task
	Add(text string, p task.Priority, c task.Category, due *time.Time) (task.Task, bool)
	ToggleComplete(id task.ID) bool
	EditText(id task.ID, text string) bool
	Delete(id task.ID) bool
	Close() error
}

// New opens the backend named in cfg.
func New(cfg config.Config, log *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemory(), nil
	case config.BackendSQLite:
		s, err := OpenSQLite(log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

type seedTask struct {
	text     string
	priority task.Priority
	category task.Category
}

// welcome is listed in insertion order; the last entry ends up on top.
var welcome = []seedTask{
	{"Press t to switch to dark mode", task.PriorityLow, task.CategoryPersonal},
	{"Try adding a new task with priority", task.PriorityHigh, task.CategoryWork},
	{"Welcome to your new to-do list!", task.PriorityMedium, task.CategoryPersonal},
}

// Seed fills s with the welcome tasks shown on first start.
func Seed(s Store) {
	for _, w := range welcome {
		s.Add(w.text, w.priority, w.category, nil)
	}
}
