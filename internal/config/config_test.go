package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasknest/internal/task"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Expected memory backend, got %q", cfg.Backend)
	}
	if !cfg.Seed {
		t.Error("Expected seed enabled by default")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Config file was not written: %v", err)
	}
	if !strings.Contains(string(data), "backend = 'memory'") && !strings.Contains(string(data), `backend = "memory"`) {
		t.Errorf("Expected backend in written config, got:\n%s", data)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("Reloading written config failed: %v", err)
	}
	if again != cfg {
		t.Errorf("Round trip changed config: %+v vs %+v", again, cfg)
	}
}

func TestLoadOrCreateFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `dark_mode = true

[keys]
quit = "Q"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if !cfg.DarkMode {
		t.Error("Expected dark_mode from file")
	}
	if cfg.Keys.Quit != "Q" {
		t.Errorf("Expected custom quit key, got %q", cfg.Keys.Quit)
	}
	if cfg.Keys.Search != "/" {
		t.Errorf("Expected default search key, got %q", cfg.Keys.Search)
	}
	if cfg.Backend != BackendMemory {
		t.Errorf("Expected default backend, got %q", cfg.Backend)
	}
	if cfg.DefaultPriority != string(task.PriorityMedium) {
		t.Errorf("Expected default priority medium, got %q", cfg.DefaultPriority)
	}
}

func TestLoadOrCreateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
		target  error
	}{
		{
			name:    "unknown backend",
			content: `backend = "postgres"`,
			field:   "backend",
			target:  ErrUnknownBackend,
		},
		{
			name:    "unknown category",
			content: `default_category = "hobby"`,
			field:   "default_category",
			target:  task.ErrUnknownCategory,
		},
		{
			name:    "unknown priority",
			content: `default_priority = "urgent"`,
			field:   "default_priority",
			target:  task.ErrUnknownPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("Failed to create config: %v", err)
			}

			_, err := LoadOrCreate(path)
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Expected *FieldError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, fe.Field)
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected error wrapping %v, got %v", tt.target, err)
			}
		})
	}
}

func TestLoadOrCreateMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("backend = = nope"), 0o644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/tmp/custom.toml")
		if got := ResolveConfigPath(); got != "/tmp/custom.toml" {
			t.Errorf("Expected env path, got %q", got)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		want := filepath.Join("/xdg", "tasknest", DefaultConfigFileName)
		if got := ResolveConfigPath(); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	})
}

func TestNormalizeBackend(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"memory", BackendMemory},
		{"SQLite", BackendSQLite},
		{"  Memory ", BackendMemory},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeBackend(tt.in); got != tt.want {
			t.Errorf("NormalizeBackend(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	cfg := Default()
	cfg.Backend = NormalizeBackend("SQLite")
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected mixed-case backend to validate, got %v", err)
	}
}

func TestLoadOrCreateNormalizesBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`backend = " SQLite "`), 0o644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate failed: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Errorf("Expected sqlite backend, got %q", cfg.Backend)
	}
}

func TestValidateEmptyKey(t *testing.T) {
	cfg := Default()
	cfg.Keys.Add = ""
	err := cfg.Validate()
	if !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("Expected ErrEmptyKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "keys.add") {
		t.Errorf("Expected field name in error, got %q", err.Error())
	}
}
