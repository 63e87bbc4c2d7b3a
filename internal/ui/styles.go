package ui

import (
	"github.com/charmbracelet/lipgloss"

	"tasknest/internal/task"
)

type palette struct {
	primary lipgloss.Color
	accent  lipgloss.Color
	bar     lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	subtle  lipgloss.Color
	warning lipgloss.Color
	danger  lipgloss.Color
	success lipgloss.Color
}

var (
	lightPalette = palette{
		primary: lipgloss.Color("#7C3AED"),
		accent:  lipgloss.Color("#DB2777"),
		bar:     lipgloss.Color("#F3E8FF"),
		text:    lipgloss.Color("#1F2937"),
		muted:   lipgloss.Color("#9CA3AF"),
		subtle:  lipgloss.Color("#4B5563"),
		warning: lipgloss.Color("#CA8A04"),
		danger:  lipgloss.Color("#DC2626"),
		success: lipgloss.Color("#16A34A"),
	}

	darkPalette = palette{
		primary: lipgloss.Color("109"),
		accent:  lipgloss.Color("171"),
		bar:     lipgloss.Color("233"),
		text:    lipgloss.Color("252"),
		muted:   lipgloss.Color("239"),
		subtle:  lipgloss.Color("244"),
		warning: lipgloss.Color("179"),
		danger:  lipgloss.Color("167"),
		success: lipgloss.Color("65"),
	}
)

var categoryColors = map[task.Category]lipgloss.Color{
	task.CategoryPersonal: lipgloss.Color("#A855F7"),
	task.CategoryWork:     lipgloss.Color("#6366F1"),
	task.CategoryShopping: lipgloss.Color("#22C55E"),
	task.CategoryHealth:   lipgloss.Color("#EC4899"),
	task.CategoryStudy:    lipgloss.Color("#F97316"),
}

// theme is the set of styles derived from one palette. Switching dark mode
// swaps the whole theme and nothing else.
type theme struct {
	dark      bool
	glamour   string
	title     lipgloss.Style
	subtitle  lipgloss.Style
	statLabel lipgloss.Style
	statValue lipgloss.Style
	cursor    lipgloss.Style
	selected  lipgloss.Style
	text      lipgloss.Style
	done      lipgloss.Style
	due       lipgloss.Style
	overdue   lipgloss.Style
	filter    lipgloss.Style
	empty     lipgloss.Style
	status    lipgloss.Style
	danger    lipgloss.Style
	field     lipgloss.Style
	fieldOn   lipgloss.Style
	box       lipgloss.Style
	priority  map[task.Priority]lipgloss.Style
}

func newTheme(dark bool) theme {
	p, glamourStyle := lightPalette, "light"
	if dark {
		p, glamourStyle = darkPalette, "dark"
	}
	badge := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)

	return theme{
		dark:    dark,
		glamour: glamourStyle,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			Background(p.bar).
			Padding(0, 1),
		subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		statLabel: lipgloss.NewStyle().
			Foreground(p.subtle),
		statValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text),
		cursor: lipgloss.NewStyle().
			Foreground(p.accent),
		selected: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),
		text: lipgloss.NewStyle().
			Foreground(p.text),
		done: lipgloss.NewStyle().
			Foreground(p.muted).
			Strikethrough(true),
		due: lipgloss.NewStyle().
			Foreground(p.subtle),
		overdue: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		filter: lipgloss.NewStyle().
			Foreground(p.warning),
		empty: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		status: lipgloss.NewStyle().
			Foreground(p.subtle),
		danger: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.danger),
		field: lipgloss.NewStyle().
			Foreground(p.subtle),
		fieldOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityLow:    badge.Background(lipgloss.Color("#3B82F6")),
			task.PriorityMedium: badge.Background(lipgloss.Color("#EAB308")),
			task.PriorityHigh:   badge.Background(lipgloss.Color("#EF4444")),
		},
	}
}

func (th theme) priorityBadge(p task.Priority) string {
	s, ok := th.priority[p]
	if !ok {
		return string(p)
	}
	return s.Render(string(p))
}

func (th theme) categoryBadge(c task.Category) string {
	color, ok := categoryColors[c]
	if !ok {
		return string(c)
	}
	return lipgloss.NewStyle().Foreground(color).Render("#" + string(c))
}
