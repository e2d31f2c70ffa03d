package savefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps a single save in a file.
type FileStore struct {
	path string
}

// NewFileStore creates a store for path. A leading ~ expands to the home
// directory.
func NewFileStore(path string) (*FileStore, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the expanded file path.
func (f *FileStore) Path() string {
	return f.path
}

// WriteSave encodes st and replaces the file atomically.
func (f *FileStore) WriteSave(ctx context.Context, st State) error {
	data, err := Marshal(st)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("savefile: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("savefile: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("savefile: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("savefile: cannot sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("savefile: cannot close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("savefile: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// ReadSave reads and decodes the file.
func (f *FileStore) ReadSave(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return State{}, fmt.Errorf("savefile: cannot read %s: %w", f.path, err)
	}
	st, err := Unmarshal(data)
	if err != nil {
		return State{}, fmt.Errorf("savefile: %s: %w", f.path, err)
	}
	return st, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("savefile: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
