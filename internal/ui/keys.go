package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"tasknest/internal/config"
)

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Toggle         key.Binding
	Edit           key.Binding
	Delete         key.Binding
	Detail         key.Binding
	Search         key.Binding
	FilterCategory key.Binding
	FilterPriority key.Binding
	ClearFilters   key.Binding
	DarkMode       key.Binding
	Help           key.Binding
	Quit           key.Binding
	Confirm        key.Binding
	Cancel         key.Binding
	NextField      key.Binding
	PrevField      key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Up:             key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up+"/↑", "up")),
		Down:           key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down+"/↓", "down")),
		Add:            key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Toggle:         key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(keyLabel(k.Toggle), "toggle")),
		Edit:           key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "edit")),
		Delete:         key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Detail:         key.NewBinding(key.WithKeys(k.Detail), key.WithHelp(k.Detail, "detail")),
		Search:         key.NewBinding(key.WithKeys(k.Search), key.WithHelp(k.Search, "search")),
		FilterCategory: key.NewBinding(key.WithKeys(k.FilterCategory), key.WithHelp(k.FilterCategory, "category")),
		FilterPriority: key.NewBinding(key.WithKeys(k.FilterPriority), key.WithHelp(k.FilterPriority, "priority")),
		ClearFilters:   key.NewBinding(key.WithKeys(k.ClearFilters), key.WithHelp(k.ClearFilters, "clear filters")),
		DarkMode:       key.NewBinding(key.WithKeys(k.DarkMode), key.WithHelp(k.DarkMode, "dark mode")),
		Help:           key.NewBinding(key.WithKeys(k.Help), key.WithHelp(k.Help, "help")),
		Quit:           key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Confirm:        key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "save")),
		Cancel:         key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		NextField:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail},
		{k.Add, k.Toggle, k.Edit, k.Delete},
		{k.Search, k.FilterCategory, k.FilterPriority, k.ClearFilters},
		{k.DarkMode, k.Help, k.Quit},
	}
}

// formKeys is shown while an input is focused.
type formKeys struct {
	keyMap
	fields bool
}

func (f formKeys) ShortHelp() []key.Binding {
	if f.fields {
		return []key.Binding{f.NextField, f.PrevField, f.Confirm, f.Cancel}
	}
	return []key.Binding{f.Confirm, f.Cancel}
}

func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
