package bricks

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/savefile"
)

// Phase is the coarse session state.
type Phase int

const (
	PhaseAwaitingInput Phase = iota // Board shown, waiting for new game or load
	PhaseRunning
	PhaseGameOver
	PhaseWon
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting-input"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game-over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, c := range []Phase{PhaseAwaitingInput, PhaseRunning, PhaseGameOver, PhaseWon} {
		if c.String() == string(text) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("bricks: unknown phase %q", text)
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// ErrInvariant marks a broken internal invariant. It points at a bug in
// the simulation, never at bad input.
var ErrInvariant = errors.New("bricks: state invariant violated")

// state is everything the simulation mutates.
type state struct {
	level     int
	score     int
	lives     int
	powerUps  int
	destroyed int
	total     int // Blocks on the board when the level started or was loaded

	ballX, ballY float64
	vX           float64
	down, right  bool
	stuck        bool

	paddleX, paddleY float64
	paddleCenterX    float64

	time     int64
	goldTime int64
	hitTime  int64

	gold        bool
	heartPlaced bool
	multiplier  int

	collision   Collision
	bounceRight bool

	blocks  []Block
	bonuses []*Bonus
}

// Options configures a Session.
type Options struct {
	Seed   int64 // Board RNG seed, 0 picks one from the clock
	Logger *log.Logger
}

// Session owns the simulation state. Every exported method is safe for
// concurrent use; events raised while the lock is held are delivered to
// listeners after it is released.
type Session struct {
	mu      sync.Mutex
	cfg     config.BricksConfig
	geo     Geometry
	rng     *SimpleRNG
	logger  *log.Logger
	phase   Phase
	st      state
	message string
	pending []Event

	listenMu  sync.RWMutex
	listeners []Listener
}

// NewSession creates a session showing the first level's board and
// waiting for Begin or Import.
func NewSession(cfg config.BricksConfig, opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Session{
		cfg:    cfg,
		geo:    GeometryFromConfig(cfg),
		rng:    NewSimpleRNG(seed),
		logger: logger,
	}
	s.resetGame()
	s.pending = nil
	return s
}

// Geometry returns the session's playfield geometry.
func (s *Session) Geometry() Geometry {
	return s.geo
}

// Subscribe registers a listener for future events.
func (s *Session) Subscribe(l Listener) {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Notify delivers an event that originated outside the simulation, such
// as a save confirmation, to the listeners.
func (s *Session) Notify(e Event) {
	s.dispatch([]Event{e})
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Begin starts play from the title screen.
func (s *Session) Begin() bool {
	s.mu.Lock()
	if s.phase != PhaseAwaitingInput {
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseRunning
	s.announceLevel()
	s.unlockAndDispatch()
	return true
}

// Launch releases a stuck ball downward with unit horizontal speed.
func (s *Session) Launch() bool {
	s.mu.Lock()
	defer s.unlockAndDispatch()
	st := &s.st
	if s.phase != PhaseRunning || !st.stuck {
		return false
	}
	st.stuck = false
	st.vX = 1
	st.down = true
	return true
}

// Special spends one power-up: the ball speeds up horizontally and
// reverses its vertical direction.
func (s *Session) Special() bool {
	s.mu.Lock()
	defer s.unlockAndDispatch()
	st := &s.st
	if s.phase != PhaseRunning || st.powerUps <= 0 {
		return false
	}
	st.vX = 2
	st.down = !st.down
	st.powerUps--
	return true
}

// NudgePaddle moves the paddle one unit left (dir < 0) or right (dir > 0).
// It returns false when the paddle is already at that edge or the
// session has ended.
func (s *Session) NudgePaddle(dir int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.st
	if s.phase.Terminal() || dir == 0 {
		return false
	}
	if dir > 0 && st.paddleX >= s.geo.FieldW-s.geo.PaddleW {
		return false
	}
	if dir < 0 && st.paddleX <= 0 {
		return false
	}
	if dir > 0 {
		st.paddleX++
	} else {
		st.paddleX--
	}
	st.paddleCenterX = st.paddleX + s.geo.PaddleW/2
	return true
}

// Restart returns to level 1 with full lives, zero score and a fresh board.
func (s *Session) Restart() {
	s.mu.Lock()
	s.resetGame()
	s.phase = PhaseRunning
	s.logger.Info("session restarted")
	s.unlockAndDispatch()
}

// DebugAdvance completes the current level immediately.
func (s *Session) DebugAdvance() bool {
	s.mu.Lock()
	defer s.unlockAndDispatch()
	if s.phase != PhaseRunning {
		return false
	}
	s.advanceLevel()
	return true
}

// Tick advances the simulation clock by one tick.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseRunning {
		s.st.time++
	}
}

// resetGame puts the session at the start of level 1. Caller holds mu.
func (s *Session) resetGame() {
	s.st = state{
		level:    1,
		lives:    s.cfg.Rules.Lives,
		powerUps: s.cfg.Rules.PowerUps,
		paddleX:  s.geo.PaddleX,
		paddleY:  s.geo.PaddleY,
	}
	s.st.paddleCenterX = s.st.paddleX + s.geo.PaddleW/2
	s.startLevel()
}

// startLevel clears per-level state and deals a new board. Caller holds mu.
func (s *Session) startLevel() {
	st := &s.st
	st.collision, st.bounceRight = CollisionNone, false
	st.gold = false
	st.heartPlaced = false
	st.multiplier = 1
	st.time, st.goldTime, st.hitTime = 0, 0, 0
	st.destroyed = 0
	st.bonuses = nil
	st.vX = 1
	st.down = true
	st.stuck = true
	s.clampToPaddle()

	st.blocks, st.heartPlaced = GenerateBoard(s.geo, st.level, s.rng, st.heartPlaced)
	st.total = len(st.blocks)
	s.announceLevel()
}

// announceLevel raises the level start events. Caller holds mu.
func (s *Session) announceLevel() {
	st := &s.st
	s.message = s.cfg.Message(st.level)
	s.emit(Event{Kind: EventLevelStarted, Level: st.level, Score: st.score})
	if s.message != "" {
		s.emit(Event{Kind: EventLevelMessage, Level: st.level, Text: s.message})
	}
}

// advanceLevel moves to the next level or ends the session on the
// victory level. Caller holds mu.
func (s *Session) advanceLevel() {
	st := &s.st
	st.level++
	s.logger.Info("level complete", "level", st.level-1, "score", st.score)

	if st.level >= s.cfg.Rules.VictoryLevel {
		s.message = s.cfg.Message(st.level)
		if s.message != "" {
			s.emit(Event{Kind: EventLevelMessage, Level: st.level, Text: s.message})
		}
		s.phase = PhaseWon
		s.logger.Info("session won", "score", st.score)
		s.emit(Event{Kind: EventWin, Level: st.level, Score: st.score})
		return
	}
	s.startLevel()
}

// clampToPaddle parks the ball on top of the paddle center. Caller holds mu.
func (s *Session) clampToPaddle() {
	s.st.ballX = s.st.paddleCenterX
	s.st.ballY = s.st.paddleY - s.geo.BallRadius
}

func (s *Session) emit(e Event) {
	s.pending = append(s.pending, e)
}

// unlockAndDispatch releases mu and then delivers pending events.
func (s *Session) unlockAndDispatch() {
	events := s.pending
	s.pending = nil
	s.mu.Unlock()
	s.dispatch(events)
}

func (s *Session) dispatch(events []Event) {
	if len(events) == 0 {
		return
	}
	s.listenMu.RLock()
	listeners := s.listeners
	s.listenMu.RUnlock()

	for _, e := range events {
		for _, l := range listeners {
			l.OnEvent(e)
		}
	}
}

// checkInvariants reports the first broken invariant. Caller holds mu.
func (s *Session) checkInvariants() error {
	st := &s.st
	switch {
	case st.lives < 0:
		return fmt.Errorf("%w: lives %d below zero", ErrInvariant, st.lives)
	case st.destroyed < 0 || st.destroyed > st.total:
		return fmt.Errorf("%w: destroyed %d of %d blocks", ErrInvariant, st.destroyed, st.total)
	case st.score < 0:
		return fmt.Errorf("%w: score %d below zero", ErrInvariant, st.score)
	case st.level < 1:
		return fmt.Errorf("%w: level %d below one", ErrInvariant, st.level)
	}

	flagged := 0
	for i := range st.blocks {
		if st.blocks[i].Destroyed {
			flagged++
		}
	}
	if carried := st.total - len(st.blocks); st.destroyed != carried+flagged {
		return fmt.Errorf("%w: destroyed count %d, board shows %d", ErrInvariant, st.destroyed, carried+flagged)
	}
	return nil
}

// Export copies the session into its persisted form.
func (s *Session) Export() (savefile.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &s.st

	var out savefile.State
	ints := []struct {
		dst *int32
		v   int
	}{
		{&out.Level, st.level},
		{&out.Score, st.score},
		{&out.Lives, st.lives},
		{&out.Destroyed, st.destroyed},
	}
	for _, f := range ints {
		v, err := safecast.Convert[int32](f.v)
		if err != nil {
			return savefile.State{}, fmt.Errorf("bricks: cannot export %d: %w", f.v, err)
		}
		*f.dst = v
	}

	out.BallX, out.BallY = st.ballX, st.ballY
	out.PaddleX, out.PaddleY, out.PaddleCenterX = st.paddleX, st.paddleY, st.paddleCenterX
	out.Time, out.GoldTime = st.time, st.goldTime
	out.VX = st.vX
	out.HeartPlaced, out.Gold = st.heartPlaced, st.gold
	out.Down, out.Right = st.down, st.right
	out.Flags = st.collision.Flags(st.bounceRight)

	for i := range st.blocks {
		b := &st.blocks[i]
		if b.Destroyed {
			continue
		}
		row, err := safecast.Convert[int32](b.Row)
		if err != nil {
			return savefile.State{}, fmt.Errorf("bricks: cannot export row %d: %w", b.Row, err)
		}
		col, err := safecast.Convert[int32](b.Col)
		if err != nil {
			return savefile.State{}, fmt.Errorf("bricks: cannot export column %d: %w", b.Col, err)
		}
		out.Blocks = append(out.Blocks, savefile.BlockRecord{Row: row, Col: col, Kind: int32(b.Kind)})
	}
	return out, nil
}

// Import replaces the session with a saved one. The save is validated in
// full first; on error the session is left untouched.
func (s *Session) Import(in savefile.State) error {
	if err := s.validate(in); err != nil {
		return err
	}
	collision, bounceRight, err := CollisionFromFlags(in.Flags)
	if err != nil {
		return fmt.Errorf("%w: %v", savefile.ErrCorrupt, err)
	}

	s.mu.Lock()
	next := state{
		level:         int(in.Level),
		score:         int(in.Score),
		lives:         int(in.Lives),
		powerUps:      s.st.powerUps,
		destroyed:     int(in.Destroyed),
		total:         int(in.Destroyed) + len(in.Blocks),
		ballX:         in.BallX,
		ballY:         in.BallY,
		vX:            in.VX,
		down:          in.Down,
		right:         in.Right,
		paddleX:       in.PaddleX,
		paddleY:       in.PaddleY,
		paddleCenterX: in.PaddleCenterX,
		time:          in.Time,
		goldTime:      in.GoldTime,
		gold:          in.Gold,
		heartPlaced:   in.HeartPlaced,
		multiplier:    1,
		collision:     collision,
		bounceRight:   bounceRight,
		blocks:        make([]Block, 0, len(in.Blocks)),
	}
	if next.gold {
		next.multiplier = s.cfg.Rules.GoldMultiplier
	}
	for _, rec := range in.Blocks {
		next.blocks = append(next.blocks, NewBlock(s.geo, int(rec.Row), int(rec.Col), Kind(rec.Kind), RandomColor(s.rng)))
	}

	s.st = next
	s.phase = PhaseRunning
	s.message = ""
	s.logger.Info("save loaded", "level", next.level, "score", next.score, "blocks", len(next.blocks))
	s.emit(Event{Kind: EventLoaded, Level: next.level, Score: next.score})
	s.unlockAndDispatch()
	return nil
}

// validate checks a save against the session's rules and geometry.
func (s *Session) validate(in savefile.State) error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", savefile.ErrCorrupt, fmt.Sprintf(format, args...))
	}

	switch {
	case in.Level < 1 || int(in.Level) >= s.cfg.Rules.VictoryLevel:
		return bad("level %d out of range", in.Level)
	case in.Lives < 1:
		return bad("lives %d", in.Lives)
	case in.Score < 0:
		return bad("score %d", in.Score)
	case in.Destroyed < 0:
		return bad("destroyed count %d", in.Destroyed)
	case in.Time < 0 || in.GoldTime < 0:
		return bad("clock %d/%d", in.Time, in.GoldTime)
	case in.GoldTime > in.Time:
		return bad("gold time %d after clock %d", in.GoldTime, in.Time)
	case in.VX < 0:
		return bad("horizontal speed %v", in.VX)
	}
	for _, f := range []float64{in.BallX, in.BallY, in.PaddleX, in.PaddleY, in.PaddleCenterX, in.VX} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return bad("non-finite coordinate %v", f)
		}
	}

	if in.PaddleX < 0 || in.PaddleX > s.geo.FieldW-s.geo.PaddleW {
		return bad("paddle x %v outside the field", in.PaddleX)
	}
	if math.Abs(in.PaddleCenterX-(in.PaddleX+s.geo.PaddleW/2)) > 1e-9 {
		return bad("paddle center %v does not match paddle x %v", in.PaddleCenterX, in.PaddleX)
	}

	rows := s.geo.Rows(int(in.Level))
	if int(in.Destroyed)+len(in.Blocks) > rows*s.geo.Columns {
		return bad("%d destroyed and %d remaining blocks exceed the board", in.Destroyed, len(in.Blocks))
	}
	seen := make(map[[2]int32]bool, len(in.Blocks))
	for _, rec := range in.Blocks {
		if !Kind(rec.Kind).Valid() {
			return bad("block kind %d", rec.Kind)
		}
		if rec.Row < 0 || int(rec.Row) >= rows || rec.Col < 0 || int(rec.Col) >= s.geo.Columns {
			return bad("block cell (%d, %d) off the board", rec.Row, rec.Col)
		}
		cell := [2]int32{rec.Row, rec.Col}
		if seen[cell] {
			return bad("duplicate block cell (%d, %d)", rec.Row, rec.Col)
		}
		seen[cell] = true
	}
	return nil
}
