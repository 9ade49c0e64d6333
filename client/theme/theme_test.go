package theme

import (
	"testing"

	"github.com/example/taskflow/client/kv"
)

func setupStore(t *testing.T) *kv.Store {
	t.Helper()

	store, err := kv.OpenInMemory()
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestLoadDefault(t *testing.T) {
	store := setupStore(t)

	if got := Load(store); got != Default {
		t.Errorf("Load() = %q, want %q", got, Default)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := setupStore(t)

	for _, name := range Known {
		if err := Save(store, name); err != nil {
			t.Fatalf("Save(%q) error = %v", name, err)
		}
		if got := Load(store); got != name {
			t.Errorf("Load() = %q, want %q", got, name)
		}
	}
}
