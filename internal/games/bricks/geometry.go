// Package bricks implements the brick-breaking simulation: board geometry,
// per-tick physics and collision resolution, the level state machine and
// the runner that binds a session to the engine scheduler.
package bricks

import (
	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Geometry holds the fixed dimensions of the playfield and its objects.
// All values are in playfield units.
type Geometry struct {
	FieldW, FieldH float64

	Columns  int // Board columns
	BaseRows int // Board rows on level n = BaseRows + n
	CellW    float64
	CellH    float64
	PadLeft  float64
	PadTop   float64 // Always twice the cell height

	PaddleW, PaddleH float64
	PaddleX, PaddleY float64 // Initial paddle position

	BallRadius float64
	VY         float64 // Fixed vertical step per physics tick

	BonusSize float64
}

// GeometryFromConfig derives the geometry from a loaded configuration.
func GeometryFromConfig(cfg config.BricksConfig) Geometry {
	return Geometry{
		FieldW:     cfg.Playfield.Width,
		FieldH:     cfg.Playfield.Height,
		Columns:    cfg.Board.Columns,
		BaseRows:   cfg.Board.BaseRows,
		CellW:      cfg.Board.CellWidth,
		CellH:      cfg.Board.CellHeight,
		PadLeft:    cfg.Board.PaddingLeft,
		PadTop:     2 * cfg.Board.CellHeight,
		PaddleW:    cfg.Paddle.Width,
		PaddleH:    cfg.Paddle.Height,
		PaddleX:    cfg.Paddle.X,
		PaddleY:    cfg.Paddle.Y,
		BallRadius: cfg.Ball.Radius,
		VY:         cfg.Ball.VY,
		BonusSize:  cfg.Rules.BonusSize,
	}
}

// DefaultGeometry returns the geometry of the built-in configuration.
func DefaultGeometry() Geometry {
	return GeometryFromConfig(config.DefaultBricksConfig())
}

// Rows returns the number of board rows on a level.
func (g Geometry) Rows(level int) int {
	return g.BaseRows + level
}

// CellOrigin returns the top-left corner of a grid cell.
func (g Geometry) CellOrigin(row, col int) (x, y float64) {
	return float64(col)*g.CellW + g.PadLeft, float64(row)*g.CellH + g.PadTop
}

// BoardSpan returns the vertical extent scanned for block hits on a level.
func (g Geometry) BoardSpan(level int) (top, bottom float64) {
	return g.PadTop, g.PadTop + g.CellH*float64(g.Rows(level))
}

// PaddleBox returns the paddle's bounding box for a left edge and top.
func (g Geometry) PaddleBox(x, y float64) core.Box {
	return core.NewBox(x, y, g.PaddleW, g.PaddleH)
}
