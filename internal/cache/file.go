package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps each entry as <dir>/<name>.json.
type FileStore struct {
	dir string
}

// NewFileStore returns a Store rooted at dir. The directory is created on first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file backing the named entry.
func (f *FileStore) Path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

// Load reads and decodes the named entry.
func (f *FileStore) Load(name string, v any) (bool, error) {
	payload, err := os.ReadFile(f.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: read %s: %w", name, err)
	}
	if err := decode(name, payload, v); err != nil {
		return true, err
	}
	return true, nil
}

// Save writes the entry to a temp file in dir and renames it into place.
func (f *FileStore) Save(name string, v any) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", f.dir, err)
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create %s: %w", name, err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), f.Path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cache: rename %s: %w", name, err)
	}
	return nil
}
