package bricks

import (
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/config"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) count(k EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func (r *recorder) last(k EventKind) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == k {
			return r.events[i], true
		}
	}
	return Event{}, false
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// newRunningSession returns a started session with seed 42 and an event
// recorder attached.
func newRunningSession(t *testing.T) (*Session, *recorder) {
	t.Helper()
	return newRunningSessionWith(t, config.DefaultBricksConfig())
}

func newRunningSessionWith(t *testing.T, cfg config.BricksConfig) (*Session, *recorder) {
	t.Helper()
	s := NewSession(cfg, Options{Seed: 42, Logger: quietLogger()})
	rec := &recorder{}
	s.Subscribe(rec)
	if !s.Begin() {
		t.Fatal("Begin() should start a new session")
	}
	rec.reset()
	return s, rec
}

// placeBoard replaces the board with the given blocks, all intact.
func placeBoard(s *Session, blocks ...Block) {
	s.st.blocks = blocks
	s.st.total = len(blocks)
	s.st.destroyed = 0
}

// freeBall releases the ball at (x, y) moving in the given directions
// with horizontal speed vx.
func freeBall(s *Session, x, y, vx float64, down, right bool) {
	s.st.stuck = false
	s.st.ballX, s.st.ballY = x, y
	s.st.vX = vx
	s.st.down, s.st.right = down, right
}

func mustTick(t *testing.T, s *Session) {
	t.Helper()
	if err := s.PhysicsTick(); err != nil {
		t.Fatalf("PhysicsTick: %v", err)
	}
}
