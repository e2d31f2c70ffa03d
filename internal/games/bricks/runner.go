package bricks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/engine"
	"github.com/vovakirdan/tui-bricks/internal/savefile"
)

// SaveStore persists a single save.
type SaveStore interface {
	WriteSave(ctx context.Context, st savefile.State) error
	ReadSave(ctx context.Context) (savefile.State, error)
}

var errNoStore = errors.New("bricks: no save store configured")

// FrameSink receives a snapshot on every update tick.
type FrameSink interface {
	Publish(Snapshot)
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Store  SaveStore // Optional; saving and loading fail without one
	Logger *log.Logger
	Frames []FrameSink
}

// Runner drives a Session with an engine.Scheduler and routes player
// actions to it. It implements engine.Handler.
type Runner struct {
	session *Session
	sched   *engine.Scheduler
	mover   *PaddleMover
	store   SaveStore
	logger  *log.Logger
	frames  []FrameSink

	latest atomic.Pointer[Snapshot]

	ioCtx    context.Context
	ioCancel context.CancelFunc
	ioWG     sync.WaitGroup
	ioMu     sync.Mutex
	closed   bool
}

// NewRunner wires a session to a scheduler using the engine and paddle
// settings from cfg.
func NewRunner(cfg config.BricksConfig, session *Session, opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	r := &Runner{
		session:  session,
		store:    opts.Store,
		logger:   logger,
		frames:   opts.Frames,
		ioCtx:    ctx,
		ioCancel: cancel,
	}
	r.sched = engine.NewScheduler(r, engine.Options{
		StepPeriod:  cfg.Engine.StepPeriod(),
		ClockPeriod: cfg.Engine.ClockPeriod(),
		Logger:      logger,
	})
	r.mover = NewPaddleMover(session.NudgePaddle, MoverConfig{
		Steps:     cfg.Paddle.MoveSteps,
		Delay:     time.Duration(cfg.Paddle.StepDelay) * time.Millisecond,
		SlowAfter: cfg.Paddle.SlowAfter,
	}, logger)

	session.Subscribe(ListenerFunc(func(e Event) {
		if e.Kind == EventGameOver || e.Kind == EventWin {
			r.sched.Halt()
		}
	}))
	return r
}

// Session returns the driven session.
func (r *Runner) Session() *Session {
	return r.session
}

// Running reports whether the scheduler loops are live.
func (r *Runner) Running() bool {
	return r.sched.Running() && r.session.Phase() == PhaseRunning
}

// OnUpdate publishes a snapshot to the frame sinks.
func (r *Runner) OnUpdate() {
	snap := r.session.Snapshot()
	r.latest.Store(&snap)
	for _, f := range r.frames {
		f.Publish(snap)
	}
}

// OnPhysics runs one physics step.
func (r *Runner) OnPhysics() {
	if err := r.session.PhysicsTick(); err != nil {
		r.logger.Error("physics step left inconsistent state", "err", err)
	}
}

// OnTime advances the session clock.
func (r *Runner) OnTime(int64) {
	r.session.Tick()
}

// Latest returns the last published snapshot, or a fresh one before the
// first update tick.
func (r *Runner) Latest() Snapshot {
	if p := r.latest.Load(); p != nil {
		return *p
	}
	return r.session.Snapshot()
}

// Handle applies a player action. Actions after Close are ignored.
func (r *Runner) Handle(a core.Action) {
	if r.Closed() {
		return
	}
	switch a {
	case core.ActionLeft:
		r.mover.Press(-1)
	case core.ActionRight:
		r.mover.Press(1)
	case core.ActionLaunch:
		r.session.Launch()
	case core.ActionSpecial:
		r.session.Special()
	case core.ActionSave:
		r.Save()
	case core.ActionLoad:
		r.Load()
	case core.ActionRestart:
		r.Restart()
	case core.ActionNewGame:
		r.NewGame()
	case core.ActionNextLevel:
		r.session.DebugAdvance()
	}
}

// NewGame leaves the title screen and starts the scheduler.
func (r *Runner) NewGame() {
	if r.session.Begin() {
		r.resume()
	}
}

// Restart starts over from level 1.
func (r *Runner) Restart() {
	r.sched.Stop()
	r.session.Restart()
	r.resume()
}

// resume (re)starts the scheduler, reaping loops left halted by a game
// over or win first.
func (r *Runner) resume() {
	if r.Closed() {
		return
	}
	r.sched.Stop()
	r.latest.Store(nil)
	r.sched.Start()
}

// Save copies the session and writes it in the background. The outcome
// is reported as an EventSaved or EventSaveFailed.
func (r *Runner) Save() {
	st, err := r.session.Export()
	if err != nil {
		r.saveFailed(err)
		return
	}
	if r.store == nil {
		r.saveFailed(errNoStore)
		return
	}
	if !r.beginIO() {
		return
	}

	engine.Go(r.logger, "save", func() {
		defer r.ioWG.Done()
		if err := r.store.WriteSave(r.ioCtx, st); err != nil {
			r.saveFailed(err)
			return
		}
		r.logger.Info("game saved", "level", st.Level, "score", st.Score)
		r.session.Notify(Event{Kind: EventSaved, Level: int(st.Level), Score: int(st.Score)})
	}, nil)
}

func (r *Runner) saveFailed(err error) {
	r.logger.Error("save failed", "err", err)
	r.session.Notify(Event{Kind: EventSaveFailed, Err: err})
}

// Load reads the save in the background and, if it decodes and
// validates, replaces the session with it. A failed load leaves the
// session as it was and is reported as an EventLoadFailed.
func (r *Runner) Load() {
	if r.store == nil {
		r.loadFailed(errNoStore)
		return
	}
	if !r.beginIO() {
		return
	}

	engine.Go(r.logger, "load", func() {
		defer r.ioWG.Done()
		st, err := r.store.ReadSave(r.ioCtx)
		if err != nil {
			r.loadFailed(err)
			return
		}
		if err := r.LoadState(st); err != nil {
			r.loadFailed(err)
		}
	}, nil)
}

// LoadState imports st and (re)starts the scheduler. On error the
// session and scheduler are left as they were.
func (r *Runner) LoadState(st savefile.State) error {
	if err := r.session.Import(st); err != nil {
		return err
	}
	r.resume()
	return nil
}

func (r *Runner) loadFailed(err error) {
	r.logger.Error("load failed", "err", err)
	r.session.Notify(Event{Kind: EventLoadFailed, Err: err})
}

// beginIO registers a background save or load, or reports false once
// the runner is closed.
func (r *Runner) beginIO() bool {
	r.ioMu.Lock()
	defer r.ioMu.Unlock()
	if r.closed {
		return false
	}
	r.ioWG.Add(1)
	return true
}

// Closed reports whether Close has been called.
func (r *Runner) Closed() bool {
	r.ioMu.Lock()
	defer r.ioMu.Unlock()
	return r.closed
}

// Close stops the scheduler, the paddle mover and any pending save or load.
// Later saves, loads and actions are ignored.
func (r *Runner) Close() {
	r.ioMu.Lock()
	r.closed = true
	r.ioMu.Unlock()

	r.ioCancel()
	r.ioWG.Wait()
	r.mover.Stop()
	r.sched.Stop()
}
