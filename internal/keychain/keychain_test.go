package keychain

import (
	"errors"
	"testing"
)

// Unit tests use MemoryStore; no macOS Keychain interaction needed.

func testStore() *MemoryStore {
	return NewMemoryStore()
}

func TestSetAndGet(t *testing.T) {
	s := testStore()

	if err := s.Set("wallet/set-get", []byte("blob")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, err := s.Get("wallet/set-get")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(val) != "blob" {
		t.Errorf("expected 'blob', got %q", val)
	}
}

func TestGetNotFound(t *testing.T) {
	s := testStore()

	_, err := s.Get("wallet/nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := testStore()

	s.Set("wallet/overwrite", []byte("first"))
	s.Set("wallet/overwrite", []byte("second"))

	val, err := s.Get("wallet/overwrite")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(val) != "second" {
		t.Errorf("expected 'second', got %q", val)
	}
}

func TestDeleteNonexistent(t *testing.T) {
	s := testStore()

	if err := s.Delete("wallet/never-existed"); err != nil {
		t.Errorf("Delete nonexistent: %v", err)
	}
}

func TestList(t *testing.T) {
	s := testStore()

	s.Set("wallet/c", []byte("val"))
	s.Set("wallet/a", []byte("val"))
	s.Set("wallet/b", []byte("val"))

	listed, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"wallet/a", "wallet/b", "wallet/c"}
	if len(listed) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(listed))
	}
	for i, k := range want {
		if listed[i] != k {
			t.Errorf("listed[%d] = %q, want %q", i, listed[i], k)
		}
	}
}

func TestLockedStore(t *testing.T) {
	s := testStore()
	s.Set("wallet/locked", []byte("val"))
	s.SetLocked(true)

	if _, err := s.Get("wallet/locked"); !errors.Is(err, ErrLocked) {
		t.Errorf("Get: expected ErrLocked, got %v", err)
	}
	if err := s.Set("wallet/locked", []byte("other")); !errors.Is(err, ErrLocked) {
		t.Errorf("Set: expected ErrLocked, got %v", err)
	}
	if err := s.Delete("wallet/locked"); !errors.Is(err, ErrLocked) {
		t.Errorf("Delete: expected ErrLocked, got %v", err)
	}

	s.SetLocked(false)
	val, err := s.Get("wallet/locked")
	if err != nil {
		t.Fatalf("Get after unlock: %v", err)
	}
	if string(val) != "val" {
		t.Errorf("expected value preserved across lock, got %q", val)
	}
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	s := testStore()

	value := []byte("blob")
	s.Set("wallet/copies", value)
	clear(value)

	got, err := s.Get("wallet/copies")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	clear(got)

	again, err := s.Get("wallet/copies")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(again) != "blob" {
		t.Errorf("wiping a caller's copy must not touch the store, got %q", again)
	}
}
