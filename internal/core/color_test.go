package core

import (
	"encoding/json"
	"testing"
)

func TestColorNames(t *testing.T) {
	seen := make(map[string]Color)
	for _, c := range Colors() {
		name := c.String()
		if prev, dup := seen[name]; dup {
			t.Errorf("%d and %d share the name %q", prev, c, name)
		}
		seen[name] = c

		var back Color
		if err := back.UnmarshalText([]byte(name)); err != nil || back != c {
			t.Errorf("UnmarshalText(%q) = %d, %v; expected %d", name, back, err, c)
		}
	}
}

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		ansi string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorOrange, "208"},
		{ColorGold, "220"},
		{Color(200), ""},
	}
	for _, tc := range tests {
		if got := tc.c.ANSI(); got != tc.ansi {
			t.Errorf("%v.ANSI() = %q, expected %q", tc.c, got, tc.ansi)
		}
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Color `json:"c"`
	}{ColorPink})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"c":"pink"}` {
		t.Errorf("unexpected encoding %s", data)
	}

	if _, err := json.Marshal(Color(99)); err == nil {
		t.Error("undefined colors should not encode")
	}
	var c Color
	if err := c.UnmarshalText([]byte("mauve")); err == nil {
		t.Error("unknown names should not decode")
	}
}
