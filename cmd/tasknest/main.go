package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"tasknest/internal/config"
	"tasknest/internal/storage"
	"tasknest/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("failed to load .env: %v\n", err)
		os.Exit(1)
	}

	configFlag := flag.String("config", "", "config file (default $TASKNEST_CONFIG or ~/.config/tasknest/config.toml)")
	darkFlag := flag.Bool("dark", false, "start in dark mode")
	backendFlag := flag.String("backend", "", "task store backend: memory or sqlite")
	flag.Parse()

	configPath := *configFlag
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *darkFlag {
		cfg.DarkMode = true
	}
	if *backendFlag != "" {
		cfg.Backend = config.NormalizeBackend(*backendFlag)
		if err := cfg.Validate(); err != nil {
			fmt.Printf("invalid flags: %v\n", err)
			os.Exit(1)
		}
	}

	log, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.New(cfg, log)
	if err != nil {
		fmt.Printf("failed to open task store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if cfg.Seed {
		storage.Seed(store)
	}
	log.Info("starting", "config", configPath, "backend", cfg.Backend, "dark_mode", cfg.DarkMode)

	if err := ui.Run(store, cfg, log); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to path through tea.LogToFile, since stdout belongs to
// the TUI. An empty path discards everything.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "tasknest")
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}
