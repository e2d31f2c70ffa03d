package savefile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func sampleState() State {
	return State{
		Level:         7,
		Score:         42,
		Lives:         2,
		Destroyed:     9,
		BallX:         123.5,
		BallY:         401,
		PaddleX:       200,
		PaddleY:       640,
		PaddleCenterX: 265,
		Time:          12345,
		GoldTime:      10000,
		VX:            2.75,
		HeartPlaced:   true,
		Gold:          true,
		Down:          false,
		Right:         true,
		Flags:         [8]bool{false, true, false, false, false, false, false, true},
		Blocks: []BlockRecord{
			{Row: 0, Col: 0, Kind: 99},
			{Row: 3, Col: 2, Kind: 101},
			{Row: 10, Col: 3, Kind: 102},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	in := sampleState()

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in  %+v\n out %+v", in, out)
	}
}

func TestRoundTripEmptyBoard(t *testing.T) {
	in := sampleState()
	in.Blocks = nil

	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(out.Blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(out.Blocks))
	}
	if out.Level != in.Level || out.VX != in.VX {
		t.Errorf("fields lost: %+v", out)
	}
}

func TestLayout(t *testing.T) {
	data, err := Marshal(sampleState())
	if err != nil {
		t.Fatal(err)
	}

	if data[0] != Version {
		t.Errorf("version byte = %d, expected %d", data[0], Version)
	}
	// level is a big-endian int32 right after the version
	if !bytes.Equal(data[1:5], []byte{0, 0, 0, 7}) {
		t.Errorf("level bytes = %v", data[1:5])
	}
	// 97 byte header plus 12 bytes per block
	if len(data) != 97+3*12 {
		t.Errorf("len = %d, expected %d", len(data), 97+3*12)
	}
	// last record kind is 102
	if !bytes.Equal(data[len(data)-4:], []byte{0, 0, 0, 102}) {
		t.Errorf("last kind bytes = %v", data[len(data)-4:])
	}
}

func TestUnmarshalErrors(t *testing.T) {
	good, err := Marshal(sampleState())
	if err != nil {
		t.Fatal(err)
	}

	mutate := func(f func([]byte) []byte) []byte {
		c := append([]byte(nil), good...)
		return f(c)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncated},
		{"header cut", good[:40], ErrTruncated},
		{"record cut", good[:len(good)-5], ErrTruncated},
		{"trailing", append(append([]byte(nil), good...), 0), ErrCorrupt},
		{"bad version", mutate(func(b []byte) []byte { b[0] = 9; return b }), ErrUnsupportedVersion},
		{"bad bool", mutate(func(b []byte) []byte { b[81] = 2; return b }), ErrCorrupt},
		{"negative count", mutate(func(b []byte) []byte { b[93] = 0xff; return b }), ErrCorrupt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Unmarshal(tc.data)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, expected %v", err, tc.want)
			}
			if !reflect.DeepEqual(st, State{}) {
				t.Errorf("failed decode should return zero State, got %+v", st)
			}
		})
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "save.mdds")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.ReadSave(ctx); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing save err = %v, expected not-exist", err)
	}

	in := sampleState()
	if err := store.WriteSave(ctx, in); err != nil {
		t.Fatalf("WriteSave: %v", err)
	}
	out, err := store.ReadSave(ctx)
	if err != nil {
		t.Fatalf("ReadSave: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("file round trip mismatch")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}

	if err := os.WriteFile(path, []byte{Version, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.ReadSave(ctx); !errors.Is(err, ErrTruncated) {
		t.Errorf("truncated file err = %v, expected ErrTruncated", err)
	}
}
