package bricks

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar = '▀'
	BallChar   = '●'
	BonusChar  = '$'
)

// hudRows is the number of screen rows above the playfield frame.
const hudRows = 2

// MinScreenW and MinScreenH are the smallest screen the playfield fits.
const (
	MinScreenW = 24
	MinScreenH = 16
)

// Renderer draws snapshots into a screen, scaling the playfield to fit.
type Renderer struct {
	geo Geometry
}

// NewRenderer creates a renderer for the geometry.
func NewRenderer(geo Geometry) *Renderer {
	return &Renderer{geo: geo}
}

// viewport maps playfield units to screen cells inside the frame.
type viewport struct {
	x0, y0 int
	w, h   int
	sx, sy float64
}

func (r *Renderer) viewport(dst *core.Screen) viewport {
	w := dst.Width() - 2
	h := dst.Height() - hudRows - 2
	return viewport{
		x0: 1,
		y0: hudRows + 1,
		w:  w,
		h:  h,
		sx: float64(w) / r.geo.FieldW,
		sy: float64(h) / r.geo.FieldH,
	}
}

// cell converts a playfield point to a screen cell.
func (v viewport) cell(x, y float64) (int, int) {
	cx := safecast.MustRound[int](core.ClampF(x*v.sx, 0, float64(v.w-1)))
	cy := safecast.MustRound[int](core.ClampF(y*v.sy, 0, float64(v.h-1)))
	return v.x0 + cx, v.y0 + cy
}

// span converts a playfield box to a screen rectangle at least one cell
// in each direction.
func (v viewport) span(b core.Box) core.Rect {
	x1, y1 := v.cell(b.X, b.Y)
	x2, y2 := v.cell(b.Right(), b.Bottom())
	return core.NewRect(x1, y1, max(1, x2-x1), max(1, y2-y1))
}

// Render draws the snapshot.
func (r *Renderer) Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH), core.ColorGray)
		return
	}

	r.renderHUD(snap, dst)
	v := r.viewport(dst)

	frame := core.ColorGray
	if snap.Gold {
		frame = core.ColorGold
	}
	dst.DrawBox(core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows), frame)

	for _, b := range snap.Blocks {
		box := core.NewBox(b.X, b.Y, r.geo.CellW, r.geo.CellH)
		rect := v.span(box)
		// Leave a one-cell gap between neighbours when there is room.
		if rect.W > 2 {
			rect.W--
		}
		dst.DrawRect(rect, b.Kind.Glyph(), b.Color)
	}

	for _, bn := range snap.Bonuses {
		x, y := v.cell(bn.X+r.geo.BonusSize/2, bn.Y+r.geo.BonusSize/2)
		dst.SetColored(x, y, BonusChar, core.ColorBrightYellow)
	}

	paddle := v.span(r.geo.PaddleBox(snap.PaddleX, snap.PaddleY))
	paddle.H = 1
	dst.DrawRect(paddle, PaddleChar, core.ColorBrightCyan)

	ball := core.ColorBrightWhite
	if snap.Gold {
		ball = core.ColorGold
	}
	bx, by := v.cell(snap.BallX, snap.BallY)
	dst.SetColored(bx, by, BallChar, ball)

	r.renderOverlay(snap, dst)
}

func (r *Renderer) renderHUD(snap Snapshot, dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightWhite)
	dst.DrawTextCentered(0, fmt.Sprintf("Heart: %d", snap.Lives), core.ColorBrightRed)
	level := fmt.Sprintf("Level: %d", snap.Level)
	dst.DrawTextColored(dst.Width()-len(level)-1, 0, level, core.ColorBrightWhite)

	special := fmt.Sprintf("Special: %d", snap.PowerUps)
	dst.DrawTextColored(dst.Width()-len(special)-1, 1, special, core.ColorBrightMagenta)
	if snap.Gold {
		dst.DrawTextColored(1, 1, "GOLD x3", core.ColorGold)
	}
}

func (r *Renderer) renderOverlay(snap Snapshot, dst *core.Screen) {
	mid := dst.Height() / 2
	switch snap.Phase {
	case PhaseAwaitingInput:
		dst.DrawTextCentered(mid, "ENTER new game   O load", core.ColorBrightYellow)
	case PhaseGameOver:
		dst.DrawTextCentered(mid, "GAME OVER", core.ColorBrightRed)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite)
		dst.DrawTextCentered(mid+2, "ESC restart   Q quit", core.ColorGray)
	case PhaseWon:
		dst.DrawTextCentered(mid, "YOU WIN", core.ColorBrightGreen)
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Score: %d", snap.Score), core.ColorWhite)
		dst.DrawTextCentered(mid+2, "ESC restart   Q quit", core.ColorGray)
	case PhaseRunning:
		if snap.Stuck {
			dst.DrawTextCentered(mid, "SPACE to launch", core.ColorGray)
		}
	}
}
