package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"tasknest/internal/config"
)

const aboutTemplate = `# tasknest

Organize your life, one task at a time. Tasks live only for this session.

## Keys

| Key | Action |
| --- | ------ |
| %s / %s | move |
| %s | add a task (tab cycles text, priority, category, due) |
| %s | toggle completed |
| %s | edit text |
| %s | delete (asks y/n) |
| %s | show details |
| %s | search |
| %s | cycle category filter |
| %s | cycle priority filter |
| %s | clear filters |
| %s | dark mode |
| %s | close this help |
| %s | quit |

Priorities: low, medium, high. Categories: personal, work, shopping, health, study.
Due dates use YYYY-MM-DD.
`

func aboutMarkdown(k config.Keymap) string {
	return fmt.Sprintf(aboutTemplate,
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Edit, k.Delete, k.Detail,
		k.Search, k.FilterCategory, k.FilterPriority, k.ClearFilters,
		k.DarkMode, k.Help, k.Quit)
}

// renderAbout renders the help screen with glamour, falling back to the
// raw markdown if the renderer cannot be built.
func renderAbout(k config.Keymap, style string, width int) string {
	md := aboutMarkdown(k)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
