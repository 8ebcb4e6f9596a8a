package statusstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shaiso/Rota/internal/domain"
	"github.com/shaiso/Rota/internal/storage"
)

func testStore() (*Store, *storage.MemoryStore) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	objects := storage.NewMemoryStore()
	return New(objects, logger), objects
}

func TestStore_WriteRead(t *testing.T) {
	store, _ := testStore()
	ctx := context.Background()

	run := domain.NewRun("run-1")
	run.Apply(domain.RunStatusRunning, 30, "Solving")

	if err := store.Write(ctx, run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Read(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.RunStatusRunning {
		t.Errorf("expected running, got %s", got.Status)
	}
	if got.Progress != 30 {
		t.Errorf("expected progress 30, got %d", got.Progress)
	}
}

func TestStore_ReadUnknown(t *testing.T) {
	store, _ := testStore()

	_, err := store.Read(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_CacheFallback(t *testing.T) {
	store, _ := testStore()

	// Submit seeds the cache before the durable write lands
	run := domain.NewRun("run-1")
	store.Seed(run)

	got, err := store.Read(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.RunStatusQueued {
		t.Errorf("expected queued, got %s", got.Status)
	}
}

func TestStore_DurableWinsOverCache(t *testing.T) {
	store, _ := testStore()
	ctx := context.Background()

	run := domain.NewRun("run-1")
	store.Seed(run)

	updated := domain.NewRun("run-1")
	updated.Apply(domain.RunStatusRunning, 50, "Solving")
	if err := store.Write(ctx, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Read(ctx, "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.RunStatusRunning {
		t.Errorf("durable record should win, got %s", got.Status)
	}
}

func TestLocalCache_Eviction(t *testing.T) {
	cache := newLocalCache(2)

	cache.put(domain.NewRun("run-1"))
	cache.put(domain.NewRun("run-2"))
	cache.put(domain.NewRun("run-3"))

	if _, ok := cache.get("run-1"); ok {
		t.Error("oldest entry should be evicted")
	}
	if _, ok := cache.get("run-2"); !ok {
		t.Error("run-2 should still be cached")
	}
	if _, ok := cache.get("run-3"); !ok {
		t.Error("run-3 should still be cached")
	}
}

func TestLocalCache_ReturnsCopy(t *testing.T) {
	cache := newLocalCache(10)

	run := domain.NewRun("run-1")
	cache.put(run)

	got, _ := cache.get("run-1")
	got.Progress = 99

	again, _ := cache.get("run-1")
	if again.Progress == 99 {
		t.Error("cache must return copies, not shared pointers")
	}
}
