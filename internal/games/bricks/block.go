package bricks

import (
	"github.com/vovakirdan/tui-bricks/internal/core"
)

// Kind is the type of a block. The numeric values are the save-file codes.
type Kind int32

const (
	KindNormal Kind = 99 + iota
	KindChoco       // Drops a bonus when destroyed
	KindStar        // Grants gold status
	KindHeart       // Grants a life, at most one per level
)

// Valid reports whether k is a known block kind.
func (k Kind) Valid() bool {
	return k >= KindNormal && k <= KindHeart
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindChoco:
		return "choco"
	case KindStar:
		return "star"
	case KindHeart:
		return "heart"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for the kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindChoco:
		return '▒'
	case KindStar:
		return '*'
	case KindHeart:
		return '♥'
	default:
		return '█'
	}
}

// HitFace is the block face a ball touched.
type HitFace int

const (
	HitNone HitFace = iota
	HitTop
	HitBottom
	HitLeft
	HitRight
)

// String returns the name of the face.
func (h HitFace) String() string {
	switch h {
	case HitTop:
		return "top"
	case HitBottom:
		return "bottom"
	case HitLeft:
		return "left"
	case HitRight:
		return "right"
	default:
		return "none"
	}
}

// Block is one cell of the board. Only Destroyed changes after creation.
type Block struct {
	Row, Col  int
	Kind      Kind
	Color     core.Color
	Destroyed bool

	X, Y, W, H float64
}

// NewBlock places a block on the grid cell (row, col).
func NewBlock(g Geometry, row, col int, kind Kind, color core.Color) Block {
	x, y := g.CellOrigin(row, col)
	return Block{
		Row:   row,
		Col:   col,
		Kind:  kind,
		Color: color,
		X:     x,
		Y:     y,
		W:     g.CellW,
		H:     g.CellH,
	}
}

// Box returns the block's bounding box.
func (b *Block) Box() core.Box {
	return core.NewBox(b.X, b.Y, b.W, b.H)
}

// Center returns the block's center point.
func (b *Block) Center() (float64, float64) {
	return b.Box().Center()
}

// CheckHit tests the ball center against each face of the block.
// Faces are matched by exact equality with the edge coordinate and tried
// in the order bottom, top, right, left; the first match wins.
func (b *Block) CheckHit(x, y float64) HitFace {
	if b.Destroyed {
		return HitNone
	}
	right, bottom := b.X+b.W, b.Y+b.H
	inSpanX := x >= b.X && x <= right
	inSpanY := y >= b.Y && y <= bottom

	switch {
	case inSpanX && y == bottom:
		return HitBottom
	case inSpanX && y == b.Y:
		return HitTop
	case inSpanY && x == right:
		return HitRight
	case inSpanY && x == b.X:
		return HitLeft
	}
	return HitNone
}

// Palette is the set of colors blocks are painted with.
var Palette = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorYellow,
	core.ColorBlue,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorBrightRed,
	core.ColorBrightGreen,
	core.ColorBrightYellow,
	core.ColorBrightBlue,
	core.ColorBrightMagenta,
	core.ColorOrange,
	core.ColorPink,
}

// RandomColor picks a palette color.
func RandomColor(rng *SimpleRNG) core.Color {
	return Palette[rng.Intn(len(Palette))]
}

// GenerateBoard builds the board for a level. Each cell is kept with
// probability 4/5; a kept cell is Choco, Heart or Star with probability
// 1/10 each, otherwise Normal. Once a Heart exists (heartPlaced true on
// entry or a Heart generated here) further Heart rolls become Normal.
// The returned flag reports whether the level now holds a Heart.
func GenerateBoard(g Geometry, level int, rng *SimpleRNG, heartPlaced bool) ([]Block, bool) {
	rows := g.Rows(level)
	blocks := make([]Block, 0, rows*g.Columns)

	for col := 0; col < g.Columns; col++ {
		for row := 0; row < rows; row++ {
			r := rng.Intn(500)
			if r%5 == 0 {
				continue
			}

			kind := KindNormal
			switch r % 10 {
			case 1:
				kind = KindChoco
			case 2:
				if !heartPlaced {
					kind = KindHeart
					heartPlaced = true
				}
			case 3:
				kind = KindStar
			}
			blocks = append(blocks, NewBlock(g, row, col, kind, RandomColor(rng)))
		}
	}
	return blocks, heartPlaced
}
