package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tasknest/internal/task"
)

// SQLite keeps the task list in a private in-memory SQLite database. The
// database disappears when the store is closed or the process exits.
//
// Driver errors are logged and turned into no-ops so SQLite satisfies the
// same total contract as Memory.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

func OpenSQLite(log *slog.Logger) (*SQLite, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	db, err := sql.Open("sqlite", memoryDSN("tasks-"+uuid.NewString()))
	if err != nil {
		return nil, err
	}
	// A mode=memory database lives as long as its single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	s := &SQLite{db: db, log: log, now: time.Now}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	text TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	priority TEXT NOT NULL DEFAULT 'medium',
	category TEXT NOT NULL DEFAULT 'personal',
	due TEXT DEFAULT NULL,
	created_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *SQLite) Tasks() []task.Task {
	tasks, err := s.fetchTasks()
	if err != nil {
		s.log.Error("fetch tasks", "err", err)
		return nil
	}
	return tasks
}

func (s *SQLite) fetchTasks() ([]task.Task, error) {
	rows, err := s.db.Query(`SELECT id, text, completed, priority, category, due, created_at FROM tasks ORDER BY seq DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var idStr, priority, category, createdStr string
		var completed int
		var dueStr sql.NullString

		if err := rows.Scan(&idStr, &t.Text, &completed, &priority, &category, &dueStr, &createdStr); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("task id %q: %w", idStr, err)
		}
		t.ID = id
		t.Completed = completed == 1
		t.Priority = task.Priority(priority)
		t.Category = task.Category(category)
		if dueStr.Valid {
			if due, err := task.ParseDueDate(dueStr.String); err == nil {
				t.DueDate = due
			}
		}
		if created, err := time.Parse(time.RFC3339Nano, createdStr); err == nil {
			t.CreatedAt = created
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *SQLite) Add(text string, p task.Priority, c task.Category, due *time.Time) (task.Task, bool) {
	if task.Blank(text) {
		return task.Task{}, false
	}
	t := task.New(text, p, c, due, s.now())
	dueStr := sql.NullString{}
	if t.DueDate != nil {
		dueStr = sql.NullString{String: task.FormatDueDate(t.DueDate), Valid: true}
	}
	_, err := s.db.Exec(`INSERT INTO tasks (id, text, completed, priority, category, due, created_at) VALUES (?, ?, 0, ?, ?, ?, ?);`,
		t.ID.String(), t.Text, string(t.Priority), string(t.Category), dueStr, t.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		s.log.Error("insert task", "err", err)
		return task.Task{}, false
	}
	return t, true
}

func (s *SQLite) ToggleComplete(id task.ID) bool {
	return s.exec("toggle task", `UPDATE tasks SET completed = 1 - completed WHERE id = ?;`, id.String())
}

func (s *SQLite) EditText(id task.ID, text string) bool {
	if task.Blank(text) {
		return false
	}
	return s.exec("edit task", `UPDATE tasks SET text = ? WHERE id = ?;`, text, id.String())
}

func (s *SQLite) Delete(id task.ID) bool {
	return s.exec("delete task", `DELETE FROM tasks WHERE id = ?;`, id.String())
}

// exec runs a single-row statement and reports whether a row changed.
func (s *SQLite) exec(op, query string, args ...any) bool {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		s.log.Error(op, "err", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.log.Error(op, "err", err)
		return false
	}
	return n > 0
}

// memoryDSN builds a modernc.org/sqlite DSN for a named in-memory
// database.
func memoryDSN(name string) string {
	u := url.URL{
		Scheme: "file",
		Opaque: name,
	}
	q := u.Query()
	q.Set("mode", "memory")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
