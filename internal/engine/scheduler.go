// Package engine runs the three repeating activities that drive a session:
// presentation sync, physics and the simulation clock.
package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Handler receives the scheduler callbacks. Each method is called from its
// own goroutine, so implementations must guard shared state.
type Handler interface {
	OnUpdate()
	OnPhysics()
	OnTime(tick int64)
}

// Options configures a Scheduler.
type Options struct {
	StepPeriod  time.Duration // Update and physics period
	ClockPeriod time.Duration // Clock period
	Logger      *log.Logger
}

// Scheduler owns three independently timed loops. Start and Stop may be
// called any number of times; a stopped scheduler can be started again.
type Scheduler struct {
	handler Handler
	step    time.Duration
	clock   time.Duration
	logger  *log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	ticks atomic.Int64
}

// NewScheduler creates a scheduler for the handler. Zero periods fall back
// to 120 steps per second and a 1ms clock.
func NewScheduler(h Handler, opts Options) *Scheduler {
	if opts.StepPeriod <= 0 {
		opts.StepPeriod = time.Second / 120
	}
	if opts.ClockPeriod <= 0 {
		opts.ClockPeriod = time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Scheduler{
		handler: h,
		step:    opts.StepPeriod,
		clock:   opts.ClockPeriod,
		logger:  opts.Logger,
	}
}

// Start launches the update, physics and clock loops.
// It returns false without spawning anything if the loops already exist.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	s.cancel = cancel
	s.wg = wg

	s.spawn(ctx, wg, "update", s.step, s.handler.OnUpdate)
	s.spawn(ctx, wg, "physics", s.step, s.handler.OnPhysics)
	s.spawn(ctx, wg, "clock", s.clock, func() {
		s.handler.OnTime(s.ticks.Add(1))
	})
	return true
}

// Stop cancels all loops and waits for any callback in flight to return.
// No callback is invoked after Stop returns. Calling it on a stopped
// scheduler is a no-op. It must not be called from inside a Handler
// callback; use Halt there.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, wg := s.cancel, s.wg
	s.cancel, s.wg = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	wg.Wait()
}

// Halt cancels all loops without waiting. Loops stop before their next
// callback. A later Stop reaps them so the scheduler can be started again.
func (s *Scheduler) Halt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Running reports whether loops have been started and not yet stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Ticks returns the number of clock callbacks issued so far.
func (s *Scheduler) Ticks() int64 {
	return s.ticks.Load()
}

func (s *Scheduler) spawn(ctx context.Context, wg *sync.WaitGroup, name string, period time.Duration, fn func()) {
	wg.Add(1)
	Go(s.logger, name, func() {
		defer wg.Done()
		s.loop(ctx, period, fn)
	}, s.Halt)
}

// loop invokes fn once per period until ctx is cancelled. Deadlines advance
// by whole periods; when the loop falls more than one period behind it
// resynchronises to now instead of firing a burst.
func (s *Scheduler) loop(ctx context.Context, period time.Duration, fn func()) {
	timer := time.NewTimer(period)
	defer timer.Stop()
	next := time.Now().Add(period)

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if ctx.Err() != nil {
			return
		}
		fn()

		next = next.Add(period)
		now := time.Now()
		if now.Sub(next) > period {
			next = now.Add(period)
		}
		wait := next.Sub(now)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

// Go runs fn in a new goroutine with panic recovery. A panic is logged with
// its stack and onPanic is called, if set.
func Go(logger *log.Logger, name string, fn func(), onPanic func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("activity crashed", "activity", name, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
				if onPanic != nil {
					onPanic()
				}
			}
		}()
		fn()
	}()
}
