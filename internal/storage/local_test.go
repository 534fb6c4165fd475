package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	st, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func writeObject(t *testing.T, st *LocalStorage, objectPath string, data []byte) {
	t.Helper()
	full := st.fullPath(objectPath)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalStorage_Fetch(t *testing.T) {
	st := newTestStorage(t)
	writeObject(t, st, "datasets/laptops.csv", []byte("Brand,Price\n"))

	data, err := st.Fetch(context.Background(), "datasets/laptops.csv")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Brand,Price\n" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestLocalStorage_Fetch_NotFound(t *testing.T) {
	st := newTestStorage(t)

	_, err := st.Fetch(context.Background(), "missing.csv")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestLocalStorage_Materialize(t *testing.T) {
	st := newTestStorage(t)
	writeObject(t, st, "laptops.db", []byte{0x53, 0x51})

	path, err := st.Materialize(context.Background(), "laptops.db", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("materialized path not readable: %v", err)
	}
}

func TestLocalStorage_Materialize_NotFound(t *testing.T) {
	st := newTestStorage(t)

	_, err := st.Materialize(context.Background(), "missing.db", t.TempDir())
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestLocalStorage_Exists(t *testing.T) {
	st := newTestStorage(t)
	writeObject(t, st, "a.csv", []byte("x"))

	exists, err := st.Exists(context.Background(), "a.csv")
	if err != nil || !exists {
		t.Errorf("Exists(a.csv) = %v, %v; want true, nil", exists, err)
	}

	exists, err = st.Exists(context.Background(), "b.csv")
	if err != nil || exists {
		t.Errorf("Exists(b.csv) = %v, %v; want false, nil", exists, err)
	}
}

func TestLocalStorage_List(t *testing.T) {
	st := newTestStorage(t)
	writeObject(t, st, "datasets/a.csv", []byte("x"))
	writeObject(t, st, "datasets/b.csv", []byte("y"))
	writeObject(t, st, "other/c.csv", []byte("z"))

	objects, err := st.List(context.Background(), "datasets")
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 2 {
		t.Errorf("expected 2 objects, got %d: %v", len(objects), objects)
	}
}

func TestLocalStorage_List_MissingPrefix(t *testing.T) {
	st := newTestStorage(t)

	objects, err := st.List(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(objects) != 0 {
		t.Errorf("expected empty list, got %v", objects)
	}
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	st := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := st.Fetch(ctx, "a.csv"); err == nil {
		t.Error("expected context error")
	}
}
