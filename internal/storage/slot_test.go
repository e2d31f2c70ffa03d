package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-bricks/internal/savefile"
)

func TestSlotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	slot := store.Slot("default")
	ctx := context.Background()

	in := savefile.State{
		Level:     2,
		Score:     17,
		Lives:     3,
		Destroyed: 1,
		BallX:     120.5,
		BallY:     300,
		VX:        1,
		Down:      true,
		Blocks: []savefile.BlockRecord{
			{Row: 0, Col: 1, Kind: 99},
			{Row: 3, Col: 2, Kind: 101},
		},
	}
	if err := slot.WriteSave(ctx, in); err != nil {
		t.Fatalf("WriteSave() failed: %v", err)
	}

	out, err := slot.ReadSave(ctx)
	if err != nil {
		t.Fatalf("ReadSave() failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("Round trip mismatch:\n%+v\n%+v", in, out)
	}

	saves, _ := store.ListSaves(ctx)
	if len(saves) != 1 || saves[0].Level != 2 || saves[0].Score != 17 {
		t.Errorf("Unexpected slot listing %+v", saves)
	}
}

func TestSlotEmpty(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Slot("nothing").ReadSave(context.Background()); !errors.Is(err, ErrNoSave) {
		t.Errorf("Expected ErrNoSave, got %v", err)
	}
}

func TestSlotCorrupt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	if err := store.PutSave(ctx, "bad", []byte{1, 0, 0}, 1, 0); err != nil {
		t.Fatal(err)
	}

	_, err := store.Slot("bad").ReadSave(ctx)
	if !errors.Is(err, savefile.ErrTruncated) {
		t.Errorf("Expected ErrTruncated, got %v", err)
	}
}
