package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"tasknest/internal/task"
)

const (
	DefaultConfigFileName = "config.toml"
	EnvConfigPath         = "TASKNEST_CONFIG"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrEmptyKey       = errors.New("key binding is empty")
)

// FieldError reports an invalid config field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Detail         string `toml:"detail"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Edit           string `toml:"edit"`
	Search         string `toml:"search"`
	FilterCategory string `toml:"filter_category"`
	FilterPriority string `toml:"filter_priority"`
	ClearFilters   string `toml:"clear_filters"`
	DarkMode       string `toml:"dark_mode"`
	Help           string `toml:"help"`
}

type Config struct {
	Backend         string `toml:"backend"`
	Seed            bool   `toml:"seed"`
	DarkMode        bool   `toml:"dark_mode"`
	LogFile         string `toml:"log_file"`
	DefaultCategory string `toml:"default_category"`
	DefaultPriority string `toml:"default_priority"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath returns $TASKNEST_CONFIG if set, otherwise
// tasknest/config.toml under the XDG config directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfigFileName
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "tasknest", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, cfg.Validate()
}

// Validate checks values the UI and storage layers rely on.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return &FieldError{Field: "backend", Err: fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)}
	}
	if _, err := task.ParseCategory(c.DefaultCategory); err != nil {
		return &FieldError{Field: "default_category", Err: err}
	}
	if _, err := task.ParsePriority(c.DefaultPriority); err != nil {
		return &FieldError{Field: "default_priority", Err: err}
	}
	for name, v := range c.Keys.bindings() {
		if v == "" {
			return &FieldError{Field: "keys." + name, Err: ErrEmptyKey}
		}
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = d.DefaultCategory
	}
	if c.DefaultPriority == "" {
		c.DefaultPriority = d.DefaultPriority
	}
	c.Backend = NormalizeBackend(c.Backend)
	c.Keys.fillFrom(d.Keys)
}

// NormalizeBackend folds a backend name from a file or flag into the
// form Validate accepts.
func NormalizeBackend(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (k Keymap) bindings() map[string]string {
	return map[string]string{
		"quit":            k.Quit,
		"add":             k.Add,
		"up":              k.Up,
		"down":            k.Down,
		"toggle":          k.Toggle,
		"delete":          k.Delete,
		"detail":          k.Detail,
		"confirm":         k.Confirm,
		"cancel":          k.Cancel,
		"edit":            k.Edit,
		"search":          k.Search,
		"filter_category": k.FilterCategory,
		"filter_priority": k.FilterPriority,
		"clear_filters":   k.ClearFilters,
		"dark_mode":       k.DarkMode,
		"help":            k.Help,
	}
}

// fillFrom copies defaults into keys left out of an older config file.
func (k *Keymap) fillFrom(d Keymap) {
	fields := []struct {
		dst *string
		src string
	}{
		{&k.Quit, d.Quit},
		{&k.Add, d.Add},
		{&k.Up, d.Up},
		{&k.Down, d.Down},
		{&k.Toggle, d.Toggle},
		{&k.Delete, d.Delete},
		{&k.Detail, d.Detail},
		{&k.Confirm, d.Confirm},
		{&k.Cancel, d.Cancel},
		{&k.Edit, d.Edit},
		{&k.Search, d.Search},
		{&k.FilterCategory, d.FilterCategory},
		{&k.FilterPriority, d.FilterPriority},
		{&k.ClearFilters, d.ClearFilters},
		{&k.DarkMode, d.DarkMode},
		{&k.Help, d.Help},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		Backend:         BackendMemory,
		Seed:            true,
		DarkMode:        false,
		DefaultCategory: string(task.CategoryPersonal),
		DefaultPriority: string(task.PriorityMedium),
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Detail:         "enter",
			Confirm:        "enter",
			Cancel:         "esc",
			Edit:           "e",
			Search:         "/",
			FilterCategory: "c",
			FilterPriority: "p",
			ClearFilters:   "x",
			DarkMode:       "t",
			Help:           "?",
		},
	}
}
