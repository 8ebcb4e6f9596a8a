package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Общий контракт ObjectStore, прогоняемый для обоих локальных backend'ов.
func runStoreContract(t *testing.T, store ObjectStore) {
	ctx := context.Background()

	t.Run("PutGet", func(t *testing.T) {
		if err := store.Put(ctx, "runs/run-1/status.json", []byte(`{"a":1}`), "application/json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := store.Get(ctx, "runs/run-1/status.json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("unexpected data: %s", data)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		store.Put(ctx, "key", []byte("v1"), "text/plain")
		store.Put(ctx, "key", []byte("v2"), "text/plain")

		data, err := store.Get(ctx, "key")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "v2" {
			t.Errorf("expected v2, got %s", data)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "no/such/key")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListPrefix", func(t *testing.T) {
		store.Put(ctx, "result_1/a.json", []byte("a"), "application/json")
		store.Put(ctx, "result_1/b.csv", []byte("bb"), "text/csv")
		store.Put(ctx, "result_2/c.json", []byte("c"), "application/json")

		objects, err := store.List(ctx, "result_1/")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(objects) != 2 {
			t.Fatalf("expected 2 objects, got %d", len(objects))
		}
		// Sorted by key
		if objects[0].Key != "result_1/a.json" || objects[1].Key != "result_1/b.csv" {
			t.Errorf("unexpected keys: %v", objects)
		}
		if objects[1].Size != 2 {
			t.Errorf("expected size 2, got %d", objects[1].Size)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store.Put(ctx, "doomed", []byte("x"), "text/plain")

		if err := store.Delete(ctx, "doomed"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Get(ctx, "doomed"); !errors.Is(err, ErrNotFound) {
			t.Error("object should be gone")
		}

		// Deleting a missing key is a no-op
		if err := store.Delete(ctx, "doomed"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestFSStore(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runStoreContract(t, store)
}

func TestFSStore_ContainsEscapingKeys(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "store")

	store, err := NewFSStore(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Traversal segments are resolved against the store root,
	// never against the parent directory
	if err := store.Put(context.Background(), "../outside", []byte("x"), "text/plain"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "outside")); err == nil {
		t.Error("key must not escape the store root")
	}
	if _, err := os.Stat(filepath.Join(root, "outside")); err != nil {
		t.Errorf("key should be contained under the root: %v", err)
	}
}

func TestFSStore_RejectsEmptyKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Put(context.Background(), "", []byte("x"), "text/plain"); err == nil {
		t.Error("empty key must be rejected")
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Put(ctx, "key", []byte("abc"), "text/plain")

	data, _ := store.Get(ctx, "key")
	data[0] = 'x'

	again, _ := store.Get(ctx, "key")
	if string(again) != "abc" {
		t.Error("Get must return a copy")
	}
}
