package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/platform/tui"
	"github.com/vovakirdan/tui-bricks/internal/savefile"
	"github.com/vovakirdan/tui-bricks/internal/spectate"
	"github.com/vovakirdan/tui-bricks/internal/storage"
)

var (
	flagSpectate    string
	flagSaveBackend string
	flagLogFile     string
	flagFPS         int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play bricks",
	Long: `Start a game in this terminal.

Controls:
  Left/A, Right/D  - Move paddle
  Space            - Launch the ball
  Up/X             - Special (spends a power-up)
  Enter            - New game
  S / O            - Save / load
  Esc/R            - Restart
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Examples:
  bricks play
  bricks play --difficulty hard
  bricks play --save-backend sqlite
  bricks play --spectate :8081`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address (e.g. :8081)")
	playCmd.Flags().StringVar(&flagSaveBackend, "save-backend", "", "Save backend: file, sqlite, none (default from config)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.bricks/bricks.log", "Log file (the terminal is taken by the game)")
	playCmd.Flags().IntVar(&flagFPS, "fps", 30, "Redraws per second")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	defer logFile.Close()
	logger, err := newLogger(logFile, "bricks")
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	rt.TickRate = cfg.Engine.Rate
	rt.Seed = flagSeed

	// Scores are best effort; the game works without the database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	saves, err := openSaves(cfg.Save, store, flagSaveBackend)
	if err != nil {
		return err
	}
	if fs, ok := saves.(*savefile.FileStore); ok {
		logger.Info("saves go to file", "path", fs.Path())
	}

	opts := tui.GameOptions{
		Config: cfg,
		Seed:   rt.Seed,
		Saves:  saves,
		Scores: store,
		Player: os.Getenv("USER"),
		Logger: logger,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if flagSpectate != "" {
		hub := spectate.NewHub(spectate.Config{Logger: logger.WithPrefix("spectate")})
		opts.Frames = []bricks.FrameSink{hub}
		go func() {
			if err := spectate.Serve(ctx, flagSpectate, hub); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
		logger.Info("spectator feed", "addr", flagSpectate, "path", "/ws")
	}

	logger.Info("starting", "rate", rt.TickRate, "seed", rt.Seed, "lives", cfg.Rules.Lives)
	runner := tui.NewGame(opts)
	if err := tui.Run(runner, tui.ModelOptions{
		FrameRate: flagFPS,
		Debug:     flagDebug,
		Width:     rt.ScreenW,
		Height:    rt.ScreenH,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
