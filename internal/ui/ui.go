package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"tasknest/internal/config"
	"tasknest/internal/storage"
	"tasknest/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
)

const (
	fieldText = iota
	fieldPriority
	fieldCategory
	fieldDue
)

// draftState holds the add form while it is open.
type draftState struct {
	text     string
	priority string
	category string
	due      string
	index    int
}

type Model struct {
	store storage.Store
	cfg   config.Config
	keys  keyMap
	help  help.Model
	theme theme
	log   *slog.Logger
	now   func() time.Time

	tasks   []task.Task
	visible []task.Task
	stats   task.Stats
	filter  task.Filter

	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *task.Task
	draft      *draftState
	editID     task.ID
	aboutOpen  bool
	width      int

	// Choices from the last saved form, reused by the next one.
	lastPriority string
	lastCategory string
}

func New(store storage.Store, cfg config.Config, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	ti := textinput.New()
	ti.Placeholder = "Task text"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		cfg:    cfg,
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		theme:  newTheme(cfg.DarkMode),
		log:    log,
		now:    time.Now,
		filter: task.Filter{Category: task.All, Priority: task.All},
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' for help.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Help),

		lastPriority: cfg.DefaultPriority,
		lastCategory: cfg.DefaultCategory,
	}
	m.refresh()
	return m
}

func Run(store storage.Store, cfg config.Config, log *slog.Logger) error {
	program := tea.NewProgram(New(store, cfg, log), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.aboutOpen {
			m.aboutOpen = false
			m.help.ShowAll = false
			return m, nil
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		}
		return m.updateListMode(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 20)
		m.help.Width = msg.Width
	}
	return m, nil
}

// refresh re-reads the store and recomputes the visible list and stats.
func (m *Model) refresh() {
	m.tasks = m.store.Tasks()
	m.visible = task.Apply(m.tasks, m.filter)
	m.stats = task.Summarize(m.tasks)
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) selected() (task.Task, bool) {
	if len(m.visible) == 0 {
		return task.Task{}, false
	}
	return m.visible[clampCursor(m.cursor, len(m.visible))], true
}

func (m *Model) moveCursorTo(id task.ID) {
	for i, t := range m.visible {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(m.visible))
	case key.Matches(msg, m.keys.Add):
		return m.startAdd()
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.store.ToggleComplete(t.ID) {
			m.status = "Marked " + humanDone(!t.Completed)
			m.log.Debug("task toggled", "id", t.ID, "completed", !t.Completed)
		}
		m.refresh()
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(t)
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
	case key.Matches(msg, m.keys.Detail):
		t, ok := m.selected()
		if !ok {
			m.status = "No tasks"
			return m, nil
		}
		m.status = detailLine(t)
	case key.Matches(msg, m.keys.Search):
		return m.startSearch()
	case key.Matches(msg, m.keys.FilterCategory):
		m.filter.Category = task.NextCategory(m.filter.Category)
		m.refresh()
		m.status = "Category: " + string(m.filter.Category)
	case key.Matches(msg, m.keys.FilterPriority):
		m.filter.Priority = task.NextPriority(m.filter.Priority)
		m.refresh()
		m.status = "Priority: " + string(m.filter.Priority)
	case key.Matches(msg, m.keys.ClearFilters):
		m.filter = task.Filter{Category: task.All, Priority: task.All}
		m.refresh()
		m.status = "Filters cleared"
	case key.Matches(msg, m.keys.DarkMode):
		m.theme = newTheme(!m.theme.dark)
		if m.theme.dark {
			m.status = "Dark mode on"
		} else {
			m.status = "Dark mode off"
		}
	case key.Matches(msg, m.keys.Help):
		m.aboutOpen = true
		m.help.ShowAll = true
	}
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if m.store.Delete(m.pendingDel.ID) {
			m.status = "Deleted task"
			m.log.Debug("task deleted", "id", m.pendingDel.ID)
		}
		m.refresh()
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) startAdd() (tea.Model, tea.Cmd) {
	m.draft = &draftState{
		priority: m.lastPriority,
		category: m.lastCategory,
	}
	m.mode = modeAdd
	m.loadDraftField()
	m.input.Focus()
	m.status = "New task: tab/shift+tab to move, enter to save, esc to cancel"
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.draft = nil
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		m.draft.setCurrentValue(m.input.Value())
		m.draft.index = wrapIndex(m.draft.index+1, len(draftFields()))
		m.loadDraftField()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.draft.setCurrentValue(m.input.Value())
		m.draft.index = wrapIndex(m.draft.index-1, len(draftFields()))
		m.loadDraftField()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.draft.setCurrentValue(m.input.Value())
		return m.saveDraft()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// saveDraft validates the enum and date fields, then hands the draft to
// the store. Blank text is left for the store to reject.
func (m Model) saveDraft() (tea.Model, tea.Cmd) {
	d := m.draft
	priority, err := task.ParsePriority(d.priority)
	if err != nil {
		m.status = "Priority must be one of: " + joinValues(task.Priorities())
		m.focusDraftField(fieldPriority)
		return m, nil
	}
	category, err := task.ParseCategory(d.category)
	if err != nil {
		m.status = "Category must be one of: " + joinValues(task.Categories())
		m.focusDraftField(fieldCategory)
		return m, nil
	}
	due, err := task.ParseDueDate(d.due)
	if err != nil {
		m.status = "Due date must be YYYY-MM-DD"
		m.focusDraftField(fieldDue)
		return m, nil
	}

	created, ok := m.store.Add(d.text, priority, category, due)
	if !ok {
		m.focusDraftField(fieldText)
		return m, nil
	}
	m.log.Debug("task added", "id", created.ID, "priority", created.Priority, "category", created.Category)
	m.lastPriority = string(priority)
	m.lastCategory = string(category)

	m.draft = nil
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.refresh()
	m.moveCursorTo(created.ID)
	m.status = "Added task"
	return m, nil
}

func (m *Model) loadDraftField() {
	m.input.SetValue(m.draft.currentValue())
	m.input.Placeholder = m.draft.currentLabel()
	m.input.CursorEnd()
}

func (m *Model) focusDraftField(idx int) {
	m.draft.index = idx
	m.loadDraftField()
}

func (m Model) startEdit(t task.Task) (tea.Model, tea.Cmd) {
	m.editID = t.ID
	m.mode = modeEdit
	m.input.SetValue(t.Text)
	m.input.Placeholder = "Task text"
	m.input.CursorEnd()
	m.input.Focus()
	m.status = "Edit text: enter to save, esc to cancel"
	return m, nil
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.status = "Edit cancelled"
	case key.Matches(msg, m.keys.Confirm):
		if m.store.EditText(m.editID, m.input.Value()) {
			m.status = "Updated task"
			m.log.Debug("task edited", "id", m.editID)
		} else {
			m.status = ""
		}
		m.refresh()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	m.mode = modeList
	m.editID = task.ID{}
	m.input.SetValue("")
	m.input.Blur()
	return m, nil
}

func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.mode = modeSearch
	m.input.SetValue(m.filter.Search)
	m.input.Placeholder = "Search tasks"
	m.input.CursorEnd()
	m.input.Focus()
	m.status = "Search: type to filter, enter to keep, esc to clear"
	return m, nil
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.filter.Search = ""
		m.status = "Search cleared"
	case key.Matches(msg, m.keys.Confirm):
		m.status = fmt.Sprintf("%d of %d tasks shown", len(m.visible), len(m.tasks))
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.filter.Search = m.input.Value()
		m.refresh()
		return m, cmd
	}
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.refresh()
	return m, nil
}

func (m Model) View() string {
	if m.aboutOpen {
		return renderAbout(m.cfg.Keys, m.theme.glamour, wrapWidth(m.width)) +
			"\n\n" + m.help.View(m.keys) +
			"\n" + m.theme.status.Render("Press any key to close")
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	if m.filter.Active() {
		b.WriteString(m.renderFilter())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case len(m.visible) == 0 && !m.filter.Active():
		b.WriteString(m.theme.empty.Render(fmt.Sprintf("No tasks yet. Press '%s' to add one.", m.cfg.Keys.Add)))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(m.theme.empty.Render(fmt.Sprintf("No tasks match the current filters. Press '%s' to clear them.", m.cfg.Keys.ClearFilters)))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderTaskList())
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\n")
		b.WriteString(m.renderDraftBox())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("\nEdit: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeSearch:
		b.WriteString("\nSearch: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.confirmDel {
		b.WriteString(m.theme.danger.Render(m.status))
	} else {
		b.WriteString(m.theme.status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.helpKeys()))

	return b.String()
}

func (m Model) helpKeys() help.KeyMap {
	switch m.mode {
	case modeAdd:
		return formKeys{keyMap: m.keys, fields: true}
	case modeEdit, modeSearch:
		return formKeys{keyMap: m.keys}
	}
	return m.keys
}

func (m Model) renderHeader() string {
	shade := "light"
	if m.theme.dark {
		shade = "dark"
	}
	return m.theme.title.Render("tasknest") + " " + m.theme.subtitle.Render("one task at a time • "+shade)
}

func (m Model) renderStats() string {
	stat := func(label string, v int) string {
		return m.theme.statLabel.Render(label+" ") + m.theme.statValue.Render(fmt.Sprintf("%d", v))
	}
	return strings.Join([]string{
		stat("Total", m.stats.Total),
		stat("Completed", m.stats.Completed),
		stat("Pending", m.stats.Pending),
		stat("High priority", m.stats.HighPriority),
	}, "  ")
}

func (m Model) renderFilter() string {
	parts := make([]string, 0, 3)
	if m.filter.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", m.filter.Search))
	}
	parts = append(parts, "category "+orAll(string(m.filter.Category)))
	parts = append(parts, "priority "+orAll(string(m.filter.Priority)))
	return m.theme.filter.Render(fmt.Sprintf("Filters: %s (%d of %d)", strings.Join(parts, " • "), len(m.visible), len(m.tasks)))
}

func (m Model) renderTaskList() string {
	today := m.now().Format(task.DateLayout)
	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = m.theme.cursor.Render(">")
		}

		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}

		text := m.theme.text.Render(t.Text)
		switch {
		case t.Completed:
			text = m.theme.done.Render(t.Text)
		case m.cursor == i:
			text = m.theme.selected.Render(t.Text)
		}

		body := fmt.Sprintf("%s %s %s %s %s", cursor, checkbox, text, m.theme.priorityBadge(t.Priority), m.theme.categoryBadge(t.Category))
		if due := task.FormatDueDate(t.DueDate); due != "" {
			if !t.Completed && due < today {
				body += " " + m.theme.overdue.Render("due "+due)
			} else {
				body += " " + m.theme.due.Render("due "+due)
			}
		}

		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDraftBox() string {
	if m.draft == nil {
		return ""
	}
	values := []string{m.draft.text, m.draft.priority, m.draft.category, m.draft.due}
	var b strings.Builder
	for i, name := range draftFields() {
		val := values[i]
		if i == m.draft.index {
			b.WriteString(m.theme.fieldOn.Render(fmt.Sprintf("> %-22s", name)))
			b.WriteString(" ")
			b.WriteString(m.input.View())
		} else {
			if strings.TrimSpace(val) == "" {
				val = "(empty)"
			}
			b.WriteString(m.theme.field.Render(fmt.Sprintf("  %-22s %s", name, val)))
		}
		if i < len(values)-1 {
			b.WriteString("\n")
		}
	}
	return m.theme.box.Render(b.String())
}

func draftFields() []string {
	return []string{"text", "priority", "category", "due date (YYYY-MM-DD)"}
}

func (ds draftState) currentLabel() string {
	return draftFields()[ds.index]
}

func (ds draftState) currentValue() string {
	switch ds.index {
	case fieldText:
		return ds.text
	case fieldPriority:
		return ds.priority
	case fieldCategory:
		return ds.category
	case fieldDue:
		return ds.due
	default:
		return ""
	}
}

func (ds *draftState) setCurrentValue(v string) {
	switch ds.index {
	case fieldText:
		ds.text = v
	case fieldPriority:
		ds.priority = v
	case fieldCategory:
		ds.category = v
	case fieldDue:
		ds.due = v
	}
}

func detailLine(t task.Task) string {
	info := fmt.Sprintf("%s • %s • %s • %s", t.Text, humanDone(t.Completed), t.Priority, t.Category)
	if t.DueDate != nil {
		info += " • due " + task.FormatDueDate(t.DueDate)
	}
	if !t.CreatedAt.IsZero() {
		info += " • created " + humanize.Time(t.CreatedAt)
	}
	return info
}

func joinValues[T ~string](vals []T) string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}

func orAll(v string) string {
	if v == "" {
		return task.All
	}
	return v
}

func wrapWidth(w int) int {
	if w <= 0 {
		return 80
	}
	return max(w-4, 20)
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
