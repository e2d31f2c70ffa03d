package bricks

import "github.com/vovakirdan/tui-bricks/internal/core"

// Bonus is a collectible dropped by a destroyed Choco block.
// (X, Y) is the top-left corner of its square box.
type Bonus struct {
	X, Y    float64
	Created int64 // Simulation tick at spawn
	Taken   bool
}

// NewBonus spawns a bonus centered on the cell (row, col).
func NewBonus(g Geometry, row, col int, now int64) *Bonus {
	x, y := g.CellOrigin(row, col)
	return &Bonus{
		X:       x + g.CellW/2 - g.BonusSize/2,
		Y:       y + g.CellH/2 - g.BonusSize/2,
		Created: now,
	}
}

// Acceleration is the extra fall distance per tick gained since spawn.
// It is zero at the spawn tick and grows by one unit every 1000 ticks.
func (b *Bonus) Acceleration(now int64) float64 {
	return float64(now-b.Created) / 1000
}

// FallStep is the distance the bonus drops on a physics tick.
func (b *Bonus) FallStep(now int64) float64 {
	return b.Acceleration(now) + 1
}

// Box returns the bonus bounding box.
func (b *Bonus) Box(size float64) core.Box {
	return core.NewBox(b.X, b.Y, size, size)
}

// Live reports whether the bonus still takes part in the simulation.
func (b *Bonus) Live(fieldH float64) bool {
	return !b.Taken && b.Y <= fieldH
}
