package bricks

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type nudgeCounter struct {
	mu       sync.Mutex
	calls    int
	limit    int
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (n *nudgeCounter) nudge(int) bool {
	if n.inFlight.Add(1) > 1 {
		n.overlap.Store(true)
	}
	defer n.inFlight.Add(-1)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.limit > 0 && n.calls >= n.limit {
		return false
	}
	n.calls++
	return true
}

func (n *nudgeCounter) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func TestPaddleMoverBurst(t *testing.T) {
	n := &nudgeCounter{}
	m := NewPaddleMover(n.nudge, MoverConfig{Steps: 5, Delay: time.Millisecond, SlowAfter: 100}, quietLogger())

	m.Press(1)
	time.Sleep(100 * time.Millisecond)
	m.Stop()

	if got := n.count(); got != 5 {
		t.Errorf("steps = %d, expected 5", got)
	}
}

func TestPaddleMoverStopsAtEdge(t *testing.T) {
	n := &nudgeCounter{limit: 2}
	m := NewPaddleMover(n.nudge, MoverConfig{Steps: 10, Delay: time.Millisecond, SlowAfter: 100}, quietLogger())

	m.Press(-1)
	time.Sleep(50 * time.Millisecond)
	m.Stop()

	if got := n.count(); got != 2 {
		t.Errorf("steps = %d, expected the burst to end at the edge after 2", got)
	}
}

func TestPaddleMoverPressCancelsPrevious(t *testing.T) {
	n := &nudgeCounter{}
	m := NewPaddleMover(n.nudge, MoverConfig{Steps: 1000, Delay: 5 * time.Millisecond, SlowAfter: 2000}, quietLogger())

	for i := 0; i < 20; i++ {
		m.Press(1)
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	m.Stop()

	if n.overlap.Load() {
		t.Error("two bursts ran at the same time")
	}
	if got := n.count(); got >= 1000 {
		t.Errorf("steps = %d, bursts were not cancelled", got)
	}
}

func TestPaddleMoverStopIdle(t *testing.T) {
	m := NewPaddleMover(func(int) bool { return true }, MoverConfig{Steps: 1}, quietLogger())
	m.Stop()
	m.Stop()
}

func TestPaddleMoverStepDelay(t *testing.T) {
	m := NewPaddleMover(func(int) bool { return true }, MoverConfig{Steps: 30, Delay: 4 * time.Millisecond, SlowAfter: 20}, quietLogger())

	tests := []struct {
		step int
		want time.Duration
	}{
		{0, 4 * time.Millisecond},
		{19, 4 * time.Millisecond},
		{20, 4 * time.Millisecond},
		{21, 20 * time.Millisecond},
		{22, 21 * time.Millisecond},
		{29, 28 * time.Millisecond},
	}
	for _, tc := range tests {
		if got := m.stepDelay(tc.step); got != tc.want {
			t.Errorf("stepDelay(%d) = %v, expected %v", tc.step, got, tc.want)
		}
	}
}
