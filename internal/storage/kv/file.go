package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File stores each key as a JSON file under a base directory.
type File struct {
	basePath string
	mu       sync.RWMutex
}

// NewFile creates a file-backed store rooted at basePath.
func NewFile(basePath string) (*File, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &File{basePath: basePath}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.basePath, key+".json")
}

func (f *File) Get(key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (f *File) Put(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Write to a temp file and rename so readers never observe a
	// partially written value.
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (f *File) Close() error { return nil }
