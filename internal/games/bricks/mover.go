package bricks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/engine"
)

// MoverConfig describes one paddle move burst.
type MoverConfig struct {
	Steps     int           // Steps per press
	Delay     time.Duration // Delay between early steps
	SlowAfter int           // Steps after this one wait their index minus one, in milliseconds
}

// PaddleMover turns a direction press into a short burst of one-unit
// paddle steps. A new press cancels the burst in progress, and the next
// burst only starts once the previous one has returned.
type PaddleMover struct {
	nudge  func(dir int) bool
	cfg    MoverConfig
	logger *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPaddleMover creates a mover that calls nudge for every step.
func NewPaddleMover(nudge func(dir int) bool, cfg MoverConfig, logger *log.Logger) *PaddleMover {
	if logger == nil {
		logger = log.Default()
	}
	return &PaddleMover{nudge: nudge, cfg: cfg, logger: logger}
}

// Press starts a burst toward dir (-1 left, 1 right).
func (m *PaddleMover) Press(dir int) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	prev := m.done
	m.cancel, m.done = cancel, done
	m.mu.Unlock()

	engine.Go(m.logger, "paddle", func() {
		defer close(done)
		if prev != nil {
			<-prev
		}
		m.run(ctx, dir)
	}, nil)
}

// Stop cancels the burst in progress and waits for it to return.
func (m *PaddleMover) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *PaddleMover) run(ctx context.Context, dir int) {
	for i := 0; i < m.cfg.Steps; i++ {
		if ctx.Err() != nil || !m.nudge(dir) {
			return
		}

		t := time.NewTimer(m.stepDelay(i))
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

// stepDelay is the pause after step i. The delay switches after step
// SlowAfter, so step SlowAfter+1 is the first to wait SlowAfter ms.
func (m *PaddleMover) stepDelay(i int) time.Duration {
	if i > m.cfg.SlowAfter {
		return time.Duration(i-1) * time.Millisecond
	}
	return m.cfg.Delay
}
