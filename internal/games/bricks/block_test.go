package bricks

import (
	"testing"

	"github.com/vovakirdan/tui-bricks/internal/core"
)

func TestBlockPosition(t *testing.T) {
	g := DefaultGeometry()
	b := NewBlock(g, 2, 3, KindNormal, core.ColorRed)

	if b.X != 350 || b.Y != 120 {
		t.Errorf("block (2,3) at (%v, %v), expected (350, 120)", b.X, b.Y)
	}
	if b.W != 100 || b.H != 30 {
		t.Errorf("block size %vx%v, expected 100x30", b.W, b.H)
	}
}

func TestCheckHit(t *testing.T) {
	g := DefaultGeometry()
	b := NewBlock(g, 0, 0, KindNormal, core.ColorRed) // (50,60)-(150,90)

	tests := []struct {
		name string
		x, y float64
		want HitFace
	}{
		{"top edge", 70, 60, HitTop},
		{"bottom edge", 70, 90, HitBottom},
		{"right edge", 150, 70, HitRight},
		{"left edge", 50, 70, HitLeft},
		{"top-left corner prefers top", 50, 60, HitTop},
		{"bottom-right corner prefers bottom", 150, 90, HitBottom},
		{"just below top edge", 70, 60.5, HitNone},
		{"inside", 100, 75, HitNone},
		{"outside span on top line", 151, 60, HitNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.CheckHit(tc.x, tc.y); got != tc.want {
				t.Errorf("CheckHit(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}

	b.Destroyed = true
	if got := b.CheckHit(70, 60); got != HitNone {
		t.Errorf("destroyed block CheckHit = %v, expected none", got)
	}
}

func TestKindCodes(t *testing.T) {
	codes := map[Kind]int32{KindNormal: 99, KindChoco: 100, KindStar: 101, KindHeart: 102}
	for k, code := range codes {
		if int32(k) != code {
			t.Errorf("%v code = %d, expected %d", k, int32(k), code)
		}
		if !k.Valid() {
			t.Errorf("%v should be valid", k)
		}
	}
	if Kind(98).Valid() || Kind(103).Valid() {
		t.Error("codes outside 99..102 should be invalid")
	}
}

func TestGenerateBoard(t *testing.T) {
	g := DefaultGeometry()

	for level := 1; level <= 5; level++ {
		blocks, _ := GenerateBoard(g, level, NewSimpleRNG(int64(level)), false)
		rows := level + 4

		if len(blocks) > rows*4 {
			t.Errorf("level %d: %d blocks exceed %d cells", level, len(blocks), rows*4)
		}

		hearts := 0
		seen := map[[2]int]bool{}
		for _, b := range blocks {
			if b.Row < 0 || b.Row >= rows || b.Col < 0 || b.Col >= 4 {
				t.Errorf("level %d: block off grid at (%d, %d)", level, b.Row, b.Col)
			}
			if seen[[2]int{b.Row, b.Col}] {
				t.Errorf("level %d: duplicate cell (%d, %d)", level, b.Row, b.Col)
			}
			seen[[2]int{b.Row, b.Col}] = true
			if b.Kind == KindHeart {
				hearts++
			}
			if x, y := g.CellOrigin(b.Row, b.Col); b.X != x || b.Y != y {
				t.Errorf("block (%d, %d) misplaced", b.Row, b.Col)
			}
		}
		if hearts > 1 {
			t.Errorf("level %d: %d hearts, expected at most one", level, hearts)
		}
	}
}

func TestGenerateBoardHeartAlreadyPlaced(t *testing.T) {
	g := DefaultGeometry()
	for seed := int64(1); seed < 20; seed++ {
		blocks, placed := GenerateBoard(g, 10, NewSimpleRNG(seed), true)
		if !placed {
			t.Fatal("placed flag must stay set")
		}
		for _, b := range blocks {
			if b.Kind == KindHeart {
				t.Fatalf("seed %d: heart generated although one was already placed", seed)
			}
		}
	}
}

func TestGenerateBoardFillRate(t *testing.T) {
	g := DefaultGeometry()
	rng := NewSimpleRNG(7)

	cells, kept := 0, 0
	kinds := map[Kind]int{}
	for i := 0; i < 200; i++ {
		blocks, _ := GenerateBoard(g, 6, rng, true)
		cells += g.Rows(6) * g.Columns
		kept += len(blocks)
		for _, b := range blocks {
			kinds[b.Kind]++
		}
	}

	ratio := float64(kept) / float64(cells)
	if ratio < 0.75 || ratio > 0.85 {
		t.Errorf("fill ratio %.3f, expected about 0.8", ratio)
	}
	if kinds[KindChoco] == 0 || kinds[KindStar] == 0 {
		t.Errorf("expected choco and star blocks, got %v", kinds)
	}
}

func TestGenerateBoardDeterministic(t *testing.T) {
	g := DefaultGeometry()
	a, _ := GenerateBoard(g, 3, NewSimpleRNG(99), false)
	b, _ := GenerateBoard(g, 3, NewSimpleRNG(99), false)

	if len(a) != len(b) {
		t.Fatalf("board sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("block %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
