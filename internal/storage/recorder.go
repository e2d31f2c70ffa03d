package storage

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-bricks/internal/engine"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

// RunRecorder is a session listener that writes a score row whenever a
// run ends. Each run gets its own ID, renewed when play restarts from
// level 1 or a save is loaded.
type RunRecorder struct {
	store  *Store
	player string
	logger *log.Logger

	mu    sync.Mutex
	runID string
	wg    sync.WaitGroup
}

// NewRunRecorder creates a recorder for the named player.
func NewRunRecorder(store *Store, player string, logger *log.Logger) *RunRecorder {
	if logger == nil {
		logger = log.Default()
	}
	return &RunRecorder{store: store, player: player, logger: logger, runID: uuid.NewString()}
}

// RunID returns the ID of the current run.
func (r *RunRecorder) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

// OnEvent implements bricks.Listener.
func (r *RunRecorder) OnEvent(e bricks.Event) {
	switch e.Kind {
	case bricks.EventLevelStarted:
		if e.Level == 1 && e.Score == 0 {
			r.renew()
		}
	case bricks.EventLoaded:
		r.renew()
	case bricks.EventGameOver:
		r.record(e, OutcomeGameOver)
	case bricks.EventWin:
		r.record(e, OutcomeWon)
	}
}

func (r *RunRecorder) renew() {
	r.mu.Lock()
	r.runID = uuid.NewString()
	r.mu.Unlock()
}

func (r *RunRecorder) record(e bricks.Event, outcome Outcome) {
	entry := ScoreEntry{
		RunID:   r.RunID(),
		Player:  r.player,
		Score:   e.Score,
		Level:   e.Level,
		Outcome: outcome,
	}

	r.wg.Add(1)
	engine.Go(r.logger, "score", func() {
		defer r.wg.Done()
		if _, err := r.store.SaveScore(entry); err != nil {
			r.logger.Error("cannot record score", "err", err)
			return
		}
		r.logger.Info("score recorded", "run", entry.RunID, "score", entry.Score, "level", entry.Level)
	}, nil)
}

// Wait blocks until pending score writes have finished.
func (r *RunRecorder) Wait() {
	r.wg.Wait()
}

var _ bricks.Listener = (*RunRecorder)(nil)
