package kv

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, store Store) {
	t.Helper()

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v; want ErrNotFound", err)
	}

	if err := store.Put("lessons", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get("lessons")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[{"id":"a"}]` {
		t.Errorf("Get() = %q; want %q", got, `[{"id":"a"}]`)
	}

	// Put replaces
	if err := store.Put("lessons", []byte(`[]`)); err != nil {
		t.Fatalf("Put(replace) error = %v", err)
	}
	got, err = store.Get("lessons")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get() after replace = %q; want []", got)
	}

	if err := store.Delete("lessons"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get("lessons"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v; want ErrNotFound", err)
	}

	// Deleting a missing key is not an error
	if err := store.Delete("missing"); err != nil {
		t.Errorf("Delete(missing) error = %v; want nil", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	store, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	testStore(t, store)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFile(dir); err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "lectern.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	defer store.Close()
	testStore(t, store)
}
