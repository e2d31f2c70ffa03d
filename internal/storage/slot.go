package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-bricks/internal/savefile"
)

// Slot is a named save slot in the database. It holds the same bytes the
// file backend writes.
type Slot struct {
	store *Store
	name  string
}

// Slot returns the save slot with the given name.
func (s *Store) Slot(name string) *Slot {
	return &Slot{store: s, name: name}
}

// Name returns the slot name.
func (sl *Slot) Name() string {
	return sl.name
}

// WriteSave encodes st and stores it in the slot.
func (sl *Slot) WriteSave(ctx context.Context, st savefile.State) error {
	data, err := savefile.Marshal(st)
	if err != nil {
		return fmt.Errorf("storage: cannot encode save: %w", err)
	}
	return sl.store.PutSave(ctx, sl.name, data, int(st.Level), int(st.Score))
}

// ReadSave loads and decodes the slot.
func (sl *Slot) ReadSave(ctx context.Context) (savefile.State, error) {
	data, err := sl.store.GetSave(ctx, sl.name)
	if err != nil {
		return savefile.State{}, err
	}
	st, err := savefile.Unmarshal(data)
	if err != nil {
		return savefile.State{}, fmt.Errorf("storage: slot %q: %w", sl.name, err)
	}
	return st, nil
}
