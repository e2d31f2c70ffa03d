package bricks

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
)

func TestRenderRunning(t *testing.T) {
	s, _ := newRunningSession(t)
	r := NewRenderer(s.Geometry())
	scr := core.NewScreen(40, 30)

	r.Render(s.Snapshot(), scr)
	out := scr.String()

	if !strings.Contains(out, "Score: 0") || !strings.Contains(out, "Level: 1") {
		t.Errorf("HUD missing:\n%s", out)
	}
	if !strings.ContainsRune(out, BallChar) {
		t.Error("ball not drawn")
	}
	if !strings.ContainsRune(out, PaddleChar) {
		t.Error("paddle not drawn")
	}
	if !strings.Contains(out, "SPACE to launch") {
		t.Error("launch hint missing while the ball is stuck")
	}
}

func TestRenderPhases(t *testing.T) {
	s := NewSession(config.DefaultBricksConfig(), Options{Seed: 3, Logger: quietLogger()})
	r := NewRenderer(s.Geometry())
	scr := core.NewScreen(40, 30)

	snap := s.Snapshot()
	r.Render(snap, scr)
	if !strings.Contains(scr.String(), "new game") {
		t.Error("title prompt missing")
	}

	snap.Phase = PhaseGameOver
	r.Render(snap, scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over banner missing")
	}

	snap.Phase = PhaseWon
	r.Render(snap, scr)
	if !strings.Contains(scr.String(), "YOU WIN") {
		t.Error("win banner missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	r := NewRenderer(DefaultGeometry())
	scr := core.NewScreen(20, 8)

	r.Render(Snapshot{}, scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Errorf("expected size warning:\n%s", scr.String())
	}
}

func TestRenderGoldFrame(t *testing.T) {
	s, _ := newRunningSession(t)
	r := NewRenderer(s.Geometry())
	scr := core.NewScreen(40, 30)

	snap := s.Snapshot()
	snap.Gold = true
	r.Render(snap, scr)

	if got := scr.GetCell(0, hudRows).Color; got != core.ColorGold {
		t.Errorf("frame color = %v, expected gold", got)
	}
}
