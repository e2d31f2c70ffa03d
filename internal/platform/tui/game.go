package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

// GameOptions describes one playable session.
type GameOptions struct {
	Config config.BricksConfig
	Seed   int64
	Saves  bricks.SaveStore  // Nil disables save and load
	Scores *storage.Store    // Nil disables score recording
	Player string            // Name recorded with scores
	Frames []bricks.FrameSink
	Logger *log.Logger
}

// NewGame builds a session and its runner, wiring score recording when a
// score store is configured.
func NewGame(opts GameOptions) *bricks.Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	session := bricks.NewSession(opts.Config, bricks.Options{Seed: opts.Seed, Logger: logger})
	if opts.Scores != nil {
		session.Subscribe(storage.NewRunRecorder(opts.Scores, opts.Player, logger))
	}

	return bricks.NewRunner(opts.Config, session, bricks.RunnerOptions{
		Store:  opts.Saves,
		Logger: logger,
		Frames: opts.Frames,
	})
}
