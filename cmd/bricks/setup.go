package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/savefile"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

// loadConfig loads the game config and applies the global flags.
func loadConfig() (config.BricksConfig, error) {
	cfg, err := config.LoadBricks(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyBricksPreset(&cfg, preset)

	if flagRate > 0 {
		cfg.Engine.Rate = flagRate
	}
	return cfg, cfg.Validate()
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path, err := savefile.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// openSaves returns the save store named by the config's save section.
func openSaves(cfg config.SaveConfig, store *storage.Store, backend string) (bricks.SaveStore, error) {
	if backend == "" {
		backend = cfg.Backend
	}

	switch backend {
	case "file":
		return savefile.NewFileStore(cfg.Path)
	case "sqlite":
		if store == nil {
			return nil, fmt.Errorf("sqlite save backend needs the database")
		}
		return store.Slot(cfg.Slot), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown save backend %q (want file, sqlite or none)", backend)
}
