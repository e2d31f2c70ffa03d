package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", NewBox(0, 0, 10, 10), NewBox(5, 5, 10, 10), true},
		{"disjoint horizontal", NewBox(0, 0, 10, 10), NewBox(15, 0, 10, 10), false},
		{"disjoint vertical", NewBox(0, 0, 10, 10), NewBox(0, 15, 10, 10), false},
		{"touching edge", NewBox(0, 0, 10, 10), NewBox(10, 0, 10, 10), false},
		{"contained", NewBox(0, 0, 130, 30), NewBox(50, 5, 30, 30), true},
		{"fractional overlap", NewBox(0, 0, 10, 10), NewBox(9.5, 9.5, 1, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(50, 60, 100, 30)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 70, 70, true},
		{"top-left corner", 50, 60, true},
		{"bottom-right corner", 150, 90, true},
		{"left of box", 49.9, 70, false},
		{"below box", 70, 90.1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(0, 640, 130, 30)

	if b.Right() != 130 {
		t.Errorf("Right() = %v, expected 130", b.Right())
	}
	if b.Bottom() != 670 {
		t.Errorf("Bottom() = %v, expected 670", b.Bottom())
	}
	cx, cy := b.Center()
	if cx != 65 || cy != 655 {
		t.Errorf("Center() = (%v, %v), expected (65, 655)", cx, cy)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
