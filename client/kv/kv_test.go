package kv

import (
	"testing"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SetGet(t *testing.T) {
	store := setupStore(t)

	if err := store.Set(KeyTheme, []byte("ocean")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, found, err := store.Get(KeyTheme)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() found = false, want true")
	}
	if string(value) != "ocean" {
		t.Errorf("Get() = %q, want %q", value, "ocean")
	}
}

func TestStore_GetMissing(t *testing.T) {
	store := setupStore(t)

	value, found, err := store.Get("no-such-key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() found = true, want false")
	}
	if value != nil {
		t.Errorf("Get() = %v, want nil", value)
	}
}

func TestStore_Overwrite(t *testing.T) {
	store := setupStore(t)

	if err := store.Set(KeyToken, []byte("first")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(KeyToken, []byte("second")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, _, err := store.Get(KeyToken)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(value) != "second" {
		t.Errorf("Get() = %q, want %q", value, "second")
	}
}

func TestStore_Delete(t *testing.T) {
	store := setupStore(t)

	if err := store.Set(KeyCurrentUser, []byte(`{"id":"u1"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(KeyCurrentUser); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, found, err := store.Get(KeyCurrentUser)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("key still present after Delete()")
	}
}

func TestStore_DeleteMissing(t *testing.T) {
	store := setupStore(t)

	if err := store.Delete("never-set"); err != nil {
		t.Errorf("Delete() of absent key error = %v, want nil", err)
	}
}
